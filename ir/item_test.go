package ir

import (
	"testing"
	"time"
)

func sample() *Item {
	return FromKeyVals([]Pair{
		{Key: "PayloadContent", Value: FromSlice([]*Item{
			FromKeyVals([]Pair{
				{Key: "PayloadType", Value: FromString("com.apple.wifi.managed")},
				{Key: "AutoJoin", Value: FromBool(true)},
			}),
			FromString("second"),
		})},
		{Key: "PayloadVersion", Value: FromInt(1)},
	})
}

func TestItemAt(t *testing.T) {
	doc := sample()
	if got := doc.Item([]int{0, 0, 1}); !got.Equal(FromBool(true)) {
		t.Errorf("got %v", got)
	}
	if got := doc.Item(nil); got != doc {
		t.Error("empty path should return the root")
	}
	mustPanic(t, func() { doc.Item([]int{1, 0}) })
	mustPanic(t, func() { doc.Item([]int{0, 5}) })
}

func TestSettingSharesSiblings(t *testing.T) {
	doc := sample()
	res := doc.Setting(FromString("x"), []int{0, 1})
	if !res.Item([]int{0, 1}).Equal(FromString("x")) {
		t.Fatalf("value not replaced")
	}
	if !doc.Item([]int{0, 1}).Equal(FromString("second")) {
		t.Fatalf("original modified")
	}
	if res.Item([]int{0, 0}) != doc.Item([]int{0, 0}) {
		t.Error("sibling should be shared")
	}
	if res.Item([]int{1}) != doc.Item([]int{1}) {
		t.Error("sibling should be shared")
	}
	if res == doc || res.Item([]int{0}) == doc.Item([]int{0}) {
		t.Error("ancestors should be copied")
	}
	if got := doc.Setting(FromInt(3), nil); !got.Equal(FromInt(3)) {
		t.Errorf("empty path: got %v", got)
	}
}

func TestInsertRemoveMove(t *testing.T) {
	arr := FromSlice([]*Item{FromInt(0), FromInt(1)})
	arr2 := arr.Inserting(1, "", FromInt(5))
	if arr2.ChildCount() != 3 || arr.ChildCount() != 2 {
		t.Fatalf("counts %d %d", arr2.ChildCount(), arr.ChildCount())
	}
	if !arr2.Child(1).Equal(FromInt(5)) {
		t.Errorf("got %v", arr2.Child(1))
	}
	arr3 := arr2.Removing(0)
	if !arr3.Equal(FromSlice([]*Item{FromInt(5), FromInt(1)})) {
		t.Errorf("got %v", arr3)
	}
	dict := sample()
	moved := dict.Moving(1, 0)
	if moved.Key(0) != "PayloadVersion" || dict.Key(0) != "PayloadContent" {
		t.Errorf("move: %v", moved.Dict.Keys())
	}
	renamed := dict.RenamingKey(1, "Version")
	if renamed.Key(1) != "Version" || dict.Key(1) != "PayloadVersion" {
		t.Errorf("rename: %v", renamed.Dict.Keys())
	}
	mustPanic(t, func() { dict.Inserting(0, "PayloadVersion", FromInt(2)) })
	mustPanic(t, func() { FromInt(1).Removing(0) })
}

func TestEqualHash(t *testing.T) {
	a, b := sample(), sample()
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Fatal("identical trees differ")
	}
	if !FromInt(2).Equal(FromFloat(2)) || FromInt(2).Hash() != FromFloat(2).Hash() {
		t.Error("integer and whole real should be equal")
	}
	if FromInt(2).Equal(FromFloat(2.5)) {
		t.Error("2 != 2.5")
	}
	big, near := FromInt(1<<53+1), FromFloat(1<<53)
	if big.Equal(near) || near.Equal(big) {
		t.Error("2^53+1 must not equal the real 2^53")
	}
	if !FromInt(1<<53).Equal(near) || FromInt(1<<53).Hash() != near.Hash() {
		t.Error("2^53 and the real 2^53 should be equal with equal hashes")
	}
	swapped := a.Moving(1, 0)
	if a.Equal(swapped) {
		t.Error("dict comparison must be order sensitive")
	}
	now := time.Now()
	if !FromDate(now).Equal(FromDate(now.In(time.FixedZone("x", 3600)))) {
		t.Error("dates compare as instants")
	}
	if FromData([]byte{1}).Equal(FromString("\x01")) {
		t.Error("types differ")
	}
}

func TestCloneDeep(t *testing.T) {
	a := sample()
	c := a.Clone()
	if !a.Equal(c) {
		t.Fatal("clone differs")
	}
	c.Dict.At(0).Value.Array[1] = FromString("changed")
	if a.Item([]int{0, 1}).String != "second" {
		t.Error("clone shares arrays with original")
	}
}

func TestWalk(t *testing.T) {
	var keys []string
	err := sample().Walk(func(path []int, key string, it *Item) (bool, error) {
		keys = append(keys, key)
		return it.Type != ArrayType, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"", "PayloadContent", "PayloadVersion"}
	if len(keys) != len(want) {
		t.Fatalf("got %q want %q", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %q want %q", keys, want)
		}
	}
}

package tree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/schema"
)

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	f()
}

func sample() *ir.Item {
	return ir.FromKeyVals([]ir.Pair{
		{Key: "PayloadDisplayName", Value: ir.FromString("Wi-Fi")},
		{Key: "PayloadContent", Value: ir.FromSlice([]*ir.Item{
			ir.FromKeyVals([]ir.Pair{{Key: "SSID", Value: ir.FromString("a")}}),
			ir.FromKeyVals([]ir.Pair{{Key: "SSID", Value: ir.FromString("b")}}),
			ir.FromKeyVals([]ir.Pair{{Key: "SSID", Value: ir.FromString("c")}}),
		})},
		{Key: "PayloadVersion", Value: ir.FromInt(1)},
	})
}

func TestNodeMirrorsItem(t *testing.T) {
	tr := New(sample())
	root := tr.Root()
	if root.NumberOfChildren() != 3 {
		t.Fatalf("got %d children", root.NumberOfChildren())
	}
	content := root.Child(1)
	if k, ok := content.Key(); !ok || k != "PayloadContent" {
		t.Errorf("got key %q %t", k, ok)
	}
	second := content.Child(1)
	if diff := cmp.Diff([]int{1, 1}, second.IndexPath()); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
	if got := second.KeyPath(); got != "$.PayloadContent[1]" {
		t.Errorf("got key path %s", got)
	}
	if second.Item().Dict.Get("SSID").String != "b" {
		t.Errorf("wrong item")
	}
	if _, ok := second.Key(); ok {
		t.Errorf("array element should have no key")
	}
}

func TestRemoveChildReindexes(t *testing.T) {
	tr := New(sample())
	content := tr.NodeAt([]int{1})
	third := content.Child(2)
	grand := third.Child(0)
	if diff := cmp.Diff([]int{1, 2, 0}, grand.IndexPath()); diff != "" {
		t.Fatalf("path (-want +got):\n%s", diff)
	}

	old := tr.SetItem(content.Item().Removing(0), []int{1})
	removed := content.RemoveChild(0)

	if old.ChildCount() != 3 || content.NumberOfChildren() != 2 {
		t.Fatalf("counts: old %d node %d", old.ChildCount(), content.NumberOfChildren())
	}
	if third.Index() != 1 {
		t.Errorf("retained sibling index %d", third.Index())
	}
	if diff := cmp.Diff([]int{1, 1}, third.IndexPath()); diff != "" {
		t.Errorf("sibling path (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 1, 0}, grand.IndexPath()); diff != "" {
		t.Errorf("descendant path (-want +got):\n%s", diff)
	}
	if third.Item().Dict.Get("SSID").String != "c" {
		t.Errorf("sibling reads the wrong item")
	}
	if removed.Tree() != nil || removed.Parent() != nil {
		t.Errorf("removed node still attached")
	}
	mustPanic(t, func() { removed.Item() })
}

func TestOutOfSyncPanics(t *testing.T) {
	tr := New(sample())
	content := tr.NodeAt([]int{1})
	content.NumberOfChildren()
	// node insert without the value insert
	mustPanic(t, func() { content.InsertChild(0) })

	tr = New(sample())
	content = tr.NodeAt([]int{1})
	content.NumberOfChildren()
	tr.SetItem(content.Item().Inserting(0, "", ir.FromInt(0)), []int{1})
	mustPanic(t, func() { content.RemoveChild(0) })

	tr = New(sample())
	root := tr.Root()
	root.NumberOfChildren()
	tr.SetItem(ir.FromString("x"), []int{1})
	mustPanic(t, func() { root.Child(1).InsertChild(0) })
}

func TestUnbuiltChildEdits(t *testing.T) {
	tr := New(ir.FromSlice([]*ir.Item{ir.FromInt(1)}))
	tr.SetItem(tr.Item().Inserting(1, "", ir.FromInt(2)), nil)
	c := tr.Root().InsertChild(1)
	if tr.Root().NumberOfChildren() != 2 || c.Index() != 1 {
		t.Fatalf("got %d children, index %d", tr.Root().NumberOfChildren(), c.Index())
	}
	if !c.Item().Equal(ir.FromInt(2)) {
		t.Errorf("inserted node reads %v", c.Item())
	}

	tr = New(ir.FromSlice([]*ir.Item{ir.FromInt(1)}))
	tr.SetItem(tr.Item().Removing(0), nil)
	removed := tr.Root().RemoveChild(0)
	if tr.Root().NumberOfChildren() != 0 {
		t.Errorf("got %d children", tr.Root().NumberOfChildren())
	}
	if removed.Tree() != nil || removed.Parent() != nil {
		t.Errorf("removed node still attached")
	}
}

func TestSetItemUndo(t *testing.T) {
	orig := sample()
	tr := New(orig)
	old := tr.SetItem(ir.FromString("Ethernet"), []int{0})
	if old.String != "Wi-Fi" {
		t.Errorf("got old %q", old.String)
	}
	tr.SetItem(old, []int{0})
	if !tr.Item().Equal(orig) {
		t.Errorf("undo did not restore the document")
	}
	if orig.Dict.Get("PayloadDisplayName").String != "Wi-Fi" {
		t.Errorf("original was modified")
	}
}

func TestInsert(t *testing.T) {
	tr := New(sample())
	tr.Root().NumberOfChildren()
	n, err := tr.Insert(nil, 1, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if k, _ := n.Key(); k != "New Item 1" {
		t.Errorf("got key %q", k)
	}
	if n.Item().String != ir.NewValueString {
		t.Errorf("got value %q", n.Item().String)
	}
	if tr.Root().NumberOfChildren() != 4 || tr.Root().Child(2).Index() != 2 {
		t.Errorf("nodes not updated")
	}
	if _, err := tr.Insert(nil, 0, "PayloadVersion", ir.FromInt(2)); !errors.Is(err, ErrEdit) {
		t.Errorf("expected ErrEdit for duplicate key, got %v", err)
	}
	if _, err := tr.Insert([]int{0}, 0, "", nil); !errors.Is(err, ErrEdit) {
		t.Errorf("expected ErrEdit for scalar parent, got %v", err)
	}
	if _, err := tr.Insert([]int{2}, 9, "", nil); !errors.Is(err, ErrEdit) {
		t.Errorf("expected ErrEdit for bad index, got %v", err)
	}
	n, err = tr.Insert([]int{2}, -1, "", ir.FromBool(true))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{2, 3}, n.IndexPath()); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
}

func TestRemoveReplaceMove(t *testing.T) {
	tr := New(sample())
	content := tr.NodeAt([]int{1})
	last := content.Child(2)

	removed, err := tr.Remove([]int{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if removed.Dict.Get("SSID").String != "a" {
		t.Errorf("removed the wrong item")
	}
	if diff := cmp.Diff([]int{1, 1}, last.IndexPath()); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
	if _, err := tr.Remove(nil); !errors.Is(err, ErrEdit) {
		t.Errorf("expected ErrEdit removing root, got %v", err)
	}

	if err := tr.Move([]int{1, 1}, 0); err != nil {
		t.Fatal(err)
	}
	if last.Index() != 0 || last.Item().Dict.Get("SSID").String != "c" {
		t.Errorf("moved node out of step")
	}

	if _, err := tr.Replace([]int{1}, ir.FromSlice(nil)); err != nil {
		t.Fatal(err)
	}
	if content.NumberOfChildren() != 0 {
		t.Errorf("replace did not regenerate")
	}
	if last.Tree() != nil {
		t.Errorf("old child still attached after regenerate")
	}
}

func TestChangeTypeAndRename(t *testing.T) {
	tr := New(sample())
	content := tr.NodeAt([]int{1})
	content.NumberOfChildren()
	if _, err := tr.ChangeType([]int{1}, ir.DictType); err != nil {
		t.Fatal(err)
	}
	if got := tr.ItemAt([]int{1}).Dict.Keys(); len(got) != 3 || got[0] != "New Item 1" {
		t.Errorf("got keys %v", got)
	}
	if k, _ := content.Child(2).Key(); k != "New Item 3" {
		t.Errorf("got key %q", k)
	}
	if _, err := tr.ChangeType([]int{1}, ir.StringType); err != nil {
		t.Fatal(err)
	}
	if content.NumberOfChildren() != 0 {
		t.Errorf("collection to scalar kept children")
	}

	if err := tr.RenameKey([]int{2}, "PayloadDisplayName"); !errors.Is(err, ErrEdit) {
		t.Errorf("expected ErrEdit, got %v", err)
	}
	if err := tr.RenameKey([]int{2}, "Version"); err != nil {
		t.Fatal(err)
	}
	if tr.Item().Dict.IndexOf("Version") != 2 {
		t.Errorf("rename moved the key")
	}
}

type fakeSource map[string]*schema.Constraint

func (f fakeSource) Lookup(domain string, keyPath []string) (*schema.Constraint, bool) {
	c, ok := f[domain+":"+schema.JoinKeyPath(keyPath)]
	return c, ok
}

func TestDefaultsAndObserve(t *testing.T) {
	src := fakeSource{
		"wifi:Ports":    {Type: ir.ArrayType, Default: ir.FromSlice([]*ir.Item{ir.FromInt(80)})},
		"wifi:Ports.[]": {Type: ir.NumberType, Default: ir.FromInt(443)},
	}
	tr := New(ir.FromKeyVals([]ir.Pair{{Key: "Ports", Value: ir.FromString("x")}}), WithDefaults(src, "wifi"))
	var changes []Change
	tr.Observe(func(c Change) { changes = append(changes, c) })

	if _, err := tr.ChangeType([]int{0}, ir.ArrayType); err != nil {
		t.Fatal(err)
	}
	if !tr.ItemAt([]int{0}).Equal(ir.FromSlice([]*ir.Item{ir.FromInt(80)})) {
		t.Errorf("manifest default not used on type change")
	}
	n, err := tr.Insert([]int{0}, -1, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !n.Item().Equal(ir.FromInt(443)) {
		t.Errorf("manifest default not used on insert")
	}
	if len(changes) != 2 || changes[0].Kind != TypeChange || changes[1].Kind != InsertChange || changes[1].Index != 1 {
		t.Fatalf("got changes %+v", changes)
	}
	if err := tr.Revert(changes[1]); err != nil {
		t.Fatal(err)
	}
	if tr.ItemAt([]int{0}).ChildCount() != 1 {
		t.Errorf("revert did not restore")
	}
}

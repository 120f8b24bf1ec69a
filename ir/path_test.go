package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type pathTest struct {
	Path  string
	Doc   *Item
	Want  [][]int
	NoGet bool
}

func pathDoc() *Item {
	return FromKeyVals([]Pair{
		{Key: "a", Value: FromString("b")},
		{Key: "c", Value: FromKeyVals([]Pair{
			{Key: "d", Value: FromInt(2)},
			{Key: "a", Value: FromInt(3)},
		})},
		{Key: "f[3]", Value: FromSlice([]*Item{FromInt(0), FromInt(1), FromInt(2)})},
		{Key: "$f['3]", Value: FromSlice([]*Item{FromString("x"), FromString("y")})},
	})
}

var pathTests = []pathTest{
	{Path: "$", Doc: FromInt(1), Want: [][]int{{}}},
	{Path: "$.a", Doc: pathDoc(), Want: [][]int{{0}}},
	{Path: "$.c.a", Doc: pathDoc(), Want: [][]int{{1, 1}}},
	{Path: "$.'f[3]'[2]", Doc: pathDoc(), Want: [][]int{{2, 2}}},
	{Path: "$.'$f[\\'3]'[1]", Doc: pathDoc(), Want: [][]int{{3, 1}}},
	{Path: "$.'f[3]'[*]", Doc: pathDoc(), Want: [][]int{{2, 0}, {2, 1}, {2, 2}}, NoGet: true},
	{Path: "$.x[*]", Doc: pathDoc(), Want: nil, NoGet: true},
	{Path: "$...a", Doc: pathDoc(), Want: [][]int{{0}, {1, 1}}, NoGet: true},
	{Path: "$.c...a", Doc: pathDoc(), Want: [][]int{{1, 1}}, NoGet: true},
	{Path: "$.c...x", Doc: pathDoc(), Want: nil, NoGet: true},
}

func TestPathResolve(t *testing.T) {
	for i := range pathTests {
		pt := &pathTests[i]
		if pt.NoGet {
			continue
		}
		ip, err := pt.Doc.Resolve(pt.Path)
		if err != nil {
			t.Errorf("%s: %v", pt.Path, err)
			continue
		}
		if diff := cmp.Diff(pt.Want[0], ip); diff != "" {
			t.Errorf("%s (-want +got):\n%s", pt.Path, diff)
		}
		got, err := pt.Doc.GetPath(pt.Path)
		if err != nil {
			t.Error(err)
			continue
		}
		if got != pt.Doc.Item(ip) {
			t.Errorf("%s: GetPath and Resolve disagree", pt.Path)
		}
		if s := pt.Doc.PathString(ip); s != pt.Path {
			pp, _ := ParsePath(pt.Path)
			if s != pp.String() {
				t.Errorf("PathString gave %q for %q", s, pt.Path)
			}
		}
	}
}

func TestPathList(t *testing.T) {
	for i := range pathTests {
		pt := &pathTests[i]
		got, err := pt.Doc.ListIndexPaths(pt.Path)
		if err != nil {
			t.Errorf("%s: %v", pt.Path, err)
			continue
		}
		if diff := cmp.Diff(pt.Want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", pt.Path, diff)
		}
	}
}

func TestPathErrors(t *testing.T) {
	doc := pathDoc()
	for _, p := range []string{"a", "$.a[0]", "$.c[0]", "$.'f[3]'[9]", "$.nope", "$[*]", "$.'open"} {
		if _, err := doc.Resolve(p); !errors.Is(err, ErrPath) {
			t.Errorf("%s: expected ErrPath, got %v", p, err)
		}
	}
	got, err := doc.GetPath("$.nope")
	if err != nil || got != nil {
		t.Errorf("missing key: got %v, %v", got, err)
	}
}

func TestPathStringQuotes(t *testing.T) {
	doc := pathDoc()
	if s := doc.PathString([]int{2, 0}); s != "$.'f[3]'[0]" {
		t.Errorf("got %s", s)
	}
	mustPanic(t, func() { doc.PathString([]int{0, 0}) })
}

func TestPathStringResolve(t *testing.T) {
	doc := FromKeyVals([]Pair{
		{Key: `C:\dir.name`, Value: FromInt(0)},
		{Key: `a\'b.c`, Value: FromInt(1)},
		{Key: `tail\`, Value: FromKeyVals([]Pair{{Key: `x\y`, Value: FromInt(2)}})},
	})
	for _, ip := range [][]int{{0}, {1}, {2}, {2, 0}} {
		s := doc.PathString(ip)
		got, err := doc.Resolve(s)
		if err != nil {
			t.Errorf("%s: %v", s, err)
			continue
		}
		if diff := cmp.Diff(ip, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", s, diff)
		}
	}
	if s := doc.PathString([]int{0}); s != `$.'C:\\dir.name'` {
		t.Errorf("got %s", s)
	}
	if _, err := ParsePath(`$.'a\`); err == nil {
		t.Error("expected error for trailing escape")
	}
}

package plistkit

import (
	"testing"

	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/parse"
)

type pathTest struct {
	Path  string
	Doc   string
	Res   string
	NoGet bool
}

var pathTests = []pathTest{
	{
		Path: "$",
		Doc:  `"x"`,
		Res:  `"x"`,
	},
	{
		Path: "$.f",
		Doc:  `{"f": 1}`,
		Res:  "1",
	},
	{
		Path: "$[0]",
		Doc:  "[1,2,3]",
		Res:  "1",
	},
	{
		Path: "$",
		Doc:  "[1,2,3]",
		Res:  "[1,2,3]",
	},
	{
		Path: "$[1].f",
		Doc:  `[0, {"f": 2, "g": 3}]`,
		Res:  "2",
	},
	{
		Path: "$.f[3]",
		Doc:  `{"a": [1,2], "f": [0,1,2,"three"]}`,
		Res:  `"three"`,
	},
	{
		Path: "$.'f[3]'[2]",
		Doc:  `{"a": [1,2], "f[3]": [0,1,2,"three"]}`,
		Res:  "2",
	},
	{
		Path: "$.'$f[\\'3]'[2]",
		Doc:  `{"a": [1,2], "$f['3]": [0,1,2,"three"]}`,
		Res:  "2",
	},
	{
		NoGet: true,
		Path:  "$[*]",
		Doc:   "[1,2,3]",
		Res:   "[1,2,3]",
	},
	{
		NoGet: true,
		Path:  "$.a[*]",
		Doc:   `{"b": [1,2,3]}`,
		Res:   "[]",
	},
	{
		NoGet: true,
		Path:  "$.b[*]",
		Doc:   `{"b": [1,2,3]}`,
		Res:   "[1,2,3]",
	},
	{
		NoGet: true,
		Path:  "$.c.d.a",
		Doc:   `{"a": "b", "c": {"d": 2, "a": 3}}`,
		Res:   "[]",
	},
	{
		NoGet: true,
		Path:  "$...a",
		Doc:   `{"a": "b", "c": {"d": 2, "a": 3}}`,
		Res:   `["b", 3]`,
	},
	{
		NoGet: true,
		Path:  "$.c...a",
		Doc:   `{"a": "b", "c": {"d": 2, "a": 3}}`,
		Res:   "[3]",
	},
	{
		NoGet: true,
		Path:  "$.c...x",
		Doc:   `{"a": "b", "c": {"d": 2, "a": 3}}`,
		Res:   "[]",
	},
}

func mustJSON(t *testing.T, s string) *ir.Item {
	t.Helper()
	it, err := parse.Parse([]byte(s), parse.ParseJSON())
	if err != nil {
		t.Fatalf("# doc\n%s\n---\n# %v\n", s, err)
	}
	return it
}

func TestPathGet(t *testing.T) {
	for i := range pathTests {
		pathTest := &pathTests[i]
		if pathTest.NoGet {
			continue
		}
		node := mustJSON(t, pathTest.Doc)
		res, err := node.GetPath(pathTest.Path)
		if err != nil {
			t.Error(err)
			continue
		}
		if res == nil {
			t.Errorf("%s: no result", pathTest.Path)
			continue
		}
		want := mustJSON(t, pathTest.Res)
		if !res.Equal(want) {
			t.Errorf("%s: got %s want %s", pathTest.Path,
				encode.MustString(res, encode.EncodeJSON()), pathTest.Res)
		}
	}
}

func TestPathList(t *testing.T) {
	for i := range pathTests {
		pathTest := &pathTests[i]
		in := mustJSON(t, pathTest.Doc)
		lst, err := in.ListPath(nil, pathTest.Path)
		if err != nil {
			t.Error(err)
			continue
		}
		if !pathTest.NoGet {
			get, err := in.GetPath(pathTest.Path)
			if err != nil {
				t.Error(err)
				continue
			}
			if len(lst) != 1 || !lst[0].Equal(get) {
				t.Errorf("%s: list and get disagree on %q", pathTest.Path, pathTest.Doc)
			}
			continue
		}
		got := ir.FromSlice(lst)
		if !got.Equal(mustJSON(t, pathTest.Res)) {
			t.Errorf("%s: list gave %s want %s", pathTest.Path,
				encode.MustString(got, encode.EncodeJSON()), pathTest.Res)
		}
	}
}

func TestReadWriteOpen(t *testing.T) {
	doc := mustJSON(t, `{"b": 1, "a": [true, "x"]}`)
	d, err := Write(doc)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Read(d)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(doc) {
		t.Errorf("round trip changed the document:\n%s", d)
	}
	tr, err := Open(d)
	if err != nil {
		t.Fatal(err)
	}
	if k, _ := tr.Root().Child(0).Key(); k != "b" {
		t.Errorf("got first key %q", k)
	}
	if _, err := Open([]byte("<plist>")); err == nil {
		t.Errorf("expected error opening a truncated document")
	}
}

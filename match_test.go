package plistkit

import (
	"testing"

	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/parse"
)

type matchTest struct {
	in    string
	match string
	opts  []MatchOpt
	res   bool
}

var matchTests = []matchTest{
	{
		in:    `1`,
		match: `1`,
		res:   true,
	},
	{
		in:    `0`,
		match: `1`,
		res:   false,
	},
	{
		in:    `1`,
		match: `1.0`,
		res:   true,
	},
	{
		in:    `[1]`,
		match: `[1]`,
		res:   true,
	},
	{
		in:    `[]`,
		match: `[]`,
		res:   true,
	},
	{
		in:    `[1]`,
		match: `[2]`,
		res:   false,
	},
	{
		in:    `[1, 2]`,
		match: `[1]`,
		res:   false,
	},
	{
		in:    `[1]`,
		match: `hello`,
		res:   false,
	},
	{
		in:    "a: b\nc: d",
		match: "a: b",
		res:   true,
	},
	{
		in:    "a: b\nc: d",
		match: "c: d\na: b",
		res:   true,
	},
	{
		in:    "a: b",
		match: "a: b\nc: d",
		res:   false,
	},
	{
		in:    "a: b",
		match: "{}",
		res:   true,
	},
	{
		in:    "hello",
		match: "h*o",
		res:   false,
	},
	{
		in:    "hello",
		match: "h*o",
		opts:  []MatchOpt{MatchGlob(true)},
		res:   true,
	},
	{
		in:    "a: b\nc:\n- d:\n    x-foo: 1",
		match: "x-foo: 1",
		res:   false,
	},
	{
		in:    "a: b\nc:\n- d:\n    x-foo: 1",
		match: "x-foo: 1",
		opts:  []MatchOpt{MatchSubtree(true)},
		res:   true,
	},
	{
		in:    "a: b\nc: d\ne:\n- 1\n- true\n- 42",
		match: "42",
		opts:  []MatchOpt{MatchSubtree(true)},
		res:   true,
	},
	{
		in:    "a: b\nc: d\ne:\n- 1\n- true\n- 42",
		match: "43",
		opts:  []MatchOpt{MatchSubtree(true)},
		res:   false,
	},
	{
		in:    "PayloadContent:\n- PayloadType: com.apple.wifi.managed\n  SSID_STR: office",
		match: "PayloadType: com.apple.*",
		opts:  []MatchOpt{MatchSubtree(true), MatchGlob(true)},
		res:   true,
	},
}

func TestMatch(t *testing.T) {
	for i := range matchTests {
		mt := &matchTests[i]
		doc, err := parse.Parse([]byte(mt.in), parse.ParseYAML())
		if err != nil {
			t.Errorf("# could not decode\n%s\n# error %v\n", mt.in, err)
			continue
		}
		m, err := parse.Parse([]byte(mt.match), parse.ParseYAML())
		if err != nil {
			t.Errorf("# could not decode\n%s\n# error %v\n", mt.match, err)
			continue
		}
		res, err := Match(doc, m, mt.opts...)
		if err != nil {
			t.Error(err)
			continue
		}
		if res != mt.res {
			t.Errorf("match %q on %q: got %t want %t", mt.match, mt.in, res, mt.res)
		}
	}
}

func TestMatchScalarTypes(t *testing.T) {
	d := ir.FromData([]byte{1, 2})
	if ok, _ := Match(d, ir.FromData([]byte{1, 2})); !ok {
		t.Errorf("equal data did not match")
	}
	if ok, _ := Match(d, ir.FromString("AQI=")); ok {
		t.Errorf("data matched a string")
	}
	if _, err := Match(ir.FromString("x"), ir.FromString("["), MatchGlob(true)); err == nil {
		t.Errorf("expected bad glob error")
	}
}

type trimTest struct {
	doc    string
	match  string
	result string
}

var trimTests = []trimTest{
	{
		doc:    "a: b\nc: d\ne: f",
		match:  "a: b\nc: d",
		result: "a: b\nc: d",
	},
	{
		doc:    "a: b\nc: d",
		match:  "c: d",
		result: "c: d",
	},
	{
		doc:    "a: b\nc: d\ne: f",
		match:  "e: f\na: b",
		result: "a: b\ne: f",
	},
	{
		doc:    "a:\n  x: 1\n  y: 2\nb: 3",
		match:  "a:\n  x: 1\nb: 3",
		result: "a:\n  x: 1\nb: 3",
	},
	{
		doc:    "- a: 1\n- b: 2\n- c: 3",
		match:  "- a: 1\n- c: 3",
		result: "- a: 1\n- c: 3",
	},
	{
		doc:    "a: b",
		match:  "a: b\nc: 1",
		result: "a: b",
	},
	{
		doc:    "hello",
		match:  "hello",
		result: "hello",
	},
}

func TestTrim(t *testing.T) {
	for i, tt := range trimTests {
		doc, err := parse.Parse([]byte(tt.doc), parse.ParseYAML())
		if err != nil {
			t.Errorf("test %d: could not parse doc: %v\n%s", i, err, tt.doc)
			continue
		}
		match, err := parse.Parse([]byte(tt.match), parse.ParseYAML())
		if err != nil {
			t.Errorf("test %d: could not parse match: %v\n%s", i, err, tt.match)
			continue
		}
		expected, err := parse.Parse([]byte(tt.result), parse.ParseYAML())
		if err != nil {
			t.Errorf("test %d: could not parse expected result: %v\n%s", i, err, tt.result)
			continue
		}

		result := Trim(match, doc)
		if !result.Equal(expected) {
			t.Errorf("test %d: trim mismatch\nDoc: %s\nMatch: %s\nGot: %s\nWant: %s",
				i, tt.doc, tt.match, encode.MustString(result), encode.MustString(expected))
		}
	}
}

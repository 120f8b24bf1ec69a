package parse

import (
	"errors"
	"testing"
	"time"

	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/format"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/token"
)

func TestParseOrder(t *testing.T) {
	in := `<plist><dict><key>a</key><integer>1</integer><key>b</key><string>x</string></dict></plist>`
	it, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	expected := ir.FromKeyVals([]ir.Pair{
		{Key: "a", Value: ir.FromInt(1)},
		{Key: "b", Value: ir.FromString("x")},
	})
	if !it.Equal(expected) {
		t.Fatalf("got %s", encode.MustString(it, encode.EncodeJSON()))
	}
	out := encode.MustString(it)
	back, err := Parse([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if got := back.Dict.Keys(); got[0] != "a" || got[1] != "b" {
		t.Errorf("key order lost: %v", got)
	}
}

func TestParseValues(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<!-- leading comment -->
<array>
	<true/>
	<false></false>
	<integer>0x1F</integer>
	<integer>-12</integer>
	<integer>18446744073709551615</integer>
	<real>2.5</real>
	<string>  padded &amp; escaped  </string>
	<string></string>
	<data>
		aGVs
		bG8=
	</data>
	<date>2020-02-03T04:05:06Z</date>
	<dict/>
	<array/>
</array>
</plist>
`
	it, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	expected := ir.FromSlice([]*ir.Item{
		ir.FromBool(true),
		ir.FromBool(false),
		ir.FromInt(31),
		ir.FromInt(-12),
		ir.FromFloat(18446744073709551615),
		ir.FromFloat(2.5),
		ir.FromString("  padded & escaped  "),
		ir.FromString(""),
		ir.FromData([]byte("hello")),
		ir.FromDate(time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC)),
		ir.FromDict(nil),
		ir.FromSlice(nil),
	})
	if !it.Equal(expected) {
		t.Fatalf("got %s", encode.MustString(it, encode.EncodeYAML()))
	}
	if it.Array[2].Int64 == nil || it.Array[4].Int64 != nil {
		t.Errorf("integer/real distinction lost")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"empty":         ``,
		"blank":         "  \n",
		"wrong root":    `<array/>`,
		"no value":      `<plist></plist>`,
		"two values":    `<plist><true/><true/></plist>`,
		"trailing":      `<plist><true/></plist><plist/>`,
		"unclosed":      `<plist><array><true/></plist>`,
		"unknown":       `<plist><set/></plist>`,
		"odd dict":      `<plist><dict><key>a</key></dict></plist>`,
		"non key":       `<plist><dict><string>a</string><true/></dict></plist>`,
		"dup key":       `<plist><dict><key>a</key><true/><key>a</key><false/></dict></plist>`,
		"bad int":       `<plist><integer>1.5</integer></plist>`,
		"bad real":      `<plist><real>x</real></plist>`,
		"bad date":      `<plist><date>yesterday</date></plist>`,
		"bad data":      `<plist><data>!!</data></plist>`,
		"nonempty bool": `<plist><true>yes</true></plist>`,
		"text in array": `<plist><array>x</array></plist>`,
		"nested string": `<plist><string><true/></string></plist>`,
		"not xml":       `<plist><dict>`,
	}
	for name, in := range tests {
		_, err := Parse([]byte(in))
		if !errors.Is(err, ErrInvalidXML) {
			t.Errorf("%s: expected ErrInvalidXML, got %v", name, err)
		}
	}
}

func TestParsePositions(t *testing.T) {
	in := "<plist>\n<dict>\n\t<key>a</key>\n\t<string>x</string>\n</dict>\n</plist>\n"
	m := map[*ir.Item]*token.Pos{}
	it, err := Parse([]byte(in), ParsePositions(m))
	if err != nil {
		t.Fatal(err)
	}
	pos := m[it.Dict.Get("a")]
	if pos == nil {
		t.Fatal("no position for a")
	}
	if l, c := pos.LineCol(); l != 3 || c != 1 {
		t.Errorf("got line %d col %d", l, c)
	}
	if pos := m[it]; pos == nil || pos.Line() != 1 {
		t.Errorf("bad root position %v", pos)
	}
}

func TestParseEnds(t *testing.T) {
	in := "<plist>\n<dict>\n\t<key>a</key>\n\t<true/>\n</dict>\n</plist>\n"
	ends := map[*ir.Item]*token.Pos{}
	it, err := Parse([]byte(in), ParseEnds(ends))
	if err != nil {
		t.Fatal(err)
	}
	if end := ends[it.Dict.Get("a")]; end == nil || in[end.I-len("<true/>"):end.I] != "<true/>" {
		t.Errorf("bad end for a: %v", end)
	}
	if end := ends[it]; end == nil || in[:end.I] != "<plist>\n<dict>\n\t<key>a</key>\n\t<true/>\n</dict>" {
		t.Errorf("bad end for root: %v", end)
	}
}

func TestRoundTrip(t *testing.T) {
	it := ir.FromKeyVals([]ir.Pair{
		{Key: "z", Value: ir.FromString("line\r\nbreak")},
		{Key: "y", Value: ir.FromSlice([]*ir.Item{ir.FromFloat(-0.125), ir.FromInt(1 << 40)})},
		{Key: "x", Value: ir.FromKeyVals([]ir.Pair{{Key: "<k>", Value: ir.FromData([]byte{0, 1, 2})}})},
		{Key: "w", Value: ir.FromDate(time.Unix(1700000000, 0))},
	})
	out := encode.MustString(it)
	back, err := Parse([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(it) {
		t.Errorf("round trip mismatch:\n%s", encode.MustString(back))
	}
}

func TestParseJSON(t *testing.T) {
	it, err := Parse([]byte(`{"b": [1, 2.5, true, "s"], "a": {}}`), ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	if keys := it.Dict.Keys(); keys[0] != "b" || keys[1] != "a" {
		t.Errorf("order lost: %v", keys)
	}
	arr := it.Dict.Get("b")
	if !arr.Array[0].IsInt() || arr.Array[1].IsInt() {
		t.Errorf("number kinds wrong")
	}
	for _, in := range []string{`null`, `{"a": null}`, `[1] 2`, `{"a":1,"a":2}`, `[`} {
		if _, err := Parse([]byte(in), ParseJSON()); !errors.Is(err, ErrParse) {
			t.Errorf("%s: expected ErrParse, got %v", in, err)
		}
	}
}

func TestParseYAML(t *testing.T) {
	in := "b: 1\na:\n  - x\n  - 2.5\n  - true\n"
	it, err := Parse([]byte(in), ParseFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	expected := ir.FromKeyVals([]ir.Pair{
		{Key: "b", Value: ir.FromInt(1)},
		{Key: "a", Value: ir.FromSlice([]*ir.Item{ir.FromString("x"), ir.FromFloat(2.5), ir.FromBool(true)})},
	})
	if !it.Equal(expected) {
		t.Errorf("got %s", encode.MustString(it, encode.EncodeYAML()))
	}
	if _, err := Parse([]byte("a: null\n"), ParseYAML()); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for null, got %v", err)
	}
}

func TestGetPositions(t *testing.T) {
	m := map[*ir.Item]*token.Pos{}
	if got := GetPositions(ParseXML(), ParsePositions(m)); got == nil {
		t.Error("positions not extracted")
	}
}

func TestParseDropNull(t *testing.T) {
	in := `{"a": null, "b": [1, null, 2]}`
	if _, err := Parse([]byte(in), ParseJSON()); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for null, got %v", err)
	}
	want := ir.FromKeyVals([]ir.Pair{
		{Key: "b", Value: ir.FromSlice([]*ir.Item{ir.FromInt(1), ir.FromInt(2)})},
	})
	got, err := Parse([]byte(in), ParseJSON(), ParseDropNull(true))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("json: got %s", encode.MustString(got, encode.EncodeJSON()))
	}
	got, err = Parse([]byte("a: null\nb: [1, null, 2]\n"), ParseYAML(), ParseDropNull(true))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("yaml: got %s", encode.MustString(got, encode.EncodeJSON()))
	}
	if _, err := Parse([]byte("null"), ParseJSON(), ParseDropNull(true)); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for null document, got %v", err)
	}
}

func TestPosError(t *testing.T) {
	in := "<plist>\n<dict>\n<key>a</key>\n<set/>\n</dict>\n</plist>\n"
	_, err := Parse([]byte(in))
	var pe *PosError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PosError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidXML) {
		t.Errorf("expected ErrInvalidXML, got %v", err)
	}
	if line, col := pe.Pos.LineCol(); line != 3 || col != 0 {
		t.Errorf("got line %d col %d", line, col)
	}
}

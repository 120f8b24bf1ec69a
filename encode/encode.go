package encode

import (
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/plistkit/format"
	"github.com/signadot/plistkit/ir"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`
	docType   = `<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">`
)

type EncState struct {
	depth  int
	indent *string

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

func (es *EncState) indentString(def string) string {
	if es.indent == nil {
		return def
	}
	return *es.indent
}

// Encode writes it to w in the configured format, XML by default. The
// output ends with a newline.
func Encode(it *ir.Item, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.XMLFormat:
		return encodeXML(it, w, es)
	case format.JSONFormat:
		return encodeJSON(it, w, es)
	case format.YAMLFormat:
		return encodeYAML(it, w)
	default:
		return fmt.Errorf("%w: %s", format.ErrBadFormat, es.format)
	}
}

func encodeXML(it *ir.Item, w io.Writer, es *EncState) error {
	if err := writeString(w, es.color(ir.StringType, HeaderColor, xmlHeader+"\n"+docType)+"\n"); err != nil {
		return err
	}
	if err := writeString(w, es.tag(ir.DictType, `<plist version="1.0">`)+"\n"); err != nil {
		return err
	}
	if err := encodeValue(it, w, es); err != nil {
		return err
	}
	return writeString(w, es.tag(ir.DictType, "</plist>")+"\n")
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) tag(t ir.Type, s string) string {
	return es.color(t, TagColor, s)
}

func (es *EncState) pad() string {
	return strings.Repeat(es.indentString("\t"), es.depth)
}

// writeElement writes <name>text</name> on its own line.
func writeElement(w io.Writer, es *EncState, t ir.Type, a ColorAttr, name, text string) error {
	esc, err := escapeText(text)
	if err != nil {
		return err
	}
	line := es.pad() + es.tag(t, "<"+name+">") + es.color(t, a, esc) + es.tag(t, "</"+name+">") + "\n"
	return writeString(w, line)
}

func encodeValue(it *ir.Item, w io.Writer, es *EncState) error {
	switch it.Type {
	case ir.ArrayType:
		if len(it.Array) == 0 {
			return writeString(w, es.pad()+es.tag(it.Type, "<array/>")+"\n")
		}
		if err := writeString(w, es.pad()+es.tag(it.Type, "<array>")+"\n"); err != nil {
			return err
		}
		es.depth++
		for _, v := range it.Array {
			if err := encodeValue(v, w, es); err != nil {
				return err
			}
		}
		es.depth--
		return writeString(w, es.pad()+es.tag(it.Type, "</array>")+"\n")

	case ir.DictType:
		if it.Dict.Len() == 0 {
			return writeString(w, es.pad()+es.tag(it.Type, "<dict/>")+"\n")
		}
		if err := writeString(w, es.pad()+es.tag(it.Type, "<dict>")+"\n"); err != nil {
			return err
		}
		es.depth++
		for k, v := range it.Dict.All() {
			if err := writeElement(w, es, ir.DictType, FieldColor, "key", k); err != nil {
				return err
			}
			if err := encodeValue(v, w, es); err != nil {
				return err
			}
		}
		es.depth--
		return writeString(w, es.pad()+es.tag(it.Type, "</dict>")+"\n")

	case ir.BoolType:
		return writeString(w, es.pad()+es.tag(it.Type, "<"+strconv.FormatBool(it.Bool)+"/>")+"\n")
	case ir.DataType:
		return writeElement(w, es, it.Type, ValueColor, "data", base64.StdEncoding.EncodeToString(it.Data))
	case ir.DateType:
		if !ir.DateInRange(it.Date) {
			return fmt.Errorf("%w: date %v outside years 0000-9999", ErrEncoding, it.Date)
		}
		return writeElement(w, es, it.Type, ValueColor, "date", ir.FormatDate(it.Date))
	case ir.NumberType:
		name, text := numberText(it)
		return writeElement(w, es, it.Type, ValueColor, name, text)
	case ir.StringType:
		return writeElement(w, es, it.Type, ValueColor, "string", it.String)
	default:
		panic("type")
	}
}

// numberText returns the element name and text of a number: integer when
// the value is whole and fits an int64, real otherwise.
func numberText(it *ir.Item) (string, string) {
	if i, ok := ir.WholeInt(it); ok {
		return "integer", strconv.FormatInt(i, 10)
	}
	f := it.Float()
	switch {
	case math.IsNaN(f):
		return "real", "nan"
	case math.IsInf(f, 1):
		return "real", "+infinity"
	case math.IsInf(f, -1):
		return "real", "-infinity"
	}
	return "real", strconv.FormatFloat(f, 'g', -1, 64)
}

// escapeText escapes markup characters and carriage returns, which XML
// readers would otherwise normalize away. Text that XML 1.0 cannot carry
// is an error.
func escapeText(s string) (string, error) {
	if !needsEscape(s) {
		return s, nil
	}
	buf := &strings.Builder{}
	for i, r := range s {
		switch {
		case r == utf8.RuneError && !validRuneAt(s, i):
			return "", fmt.Errorf("%w: invalid utf-8 in %q", ErrEncoding, s)
		case !isXMLChar(r):
			return "", fmt.Errorf("%w: character %U cannot be represented in xml", ErrEncoding, r)
		case r == '&':
			buf.WriteString("&amp;")
		case r == '<':
			buf.WriteString("&lt;")
		case r == '>':
			buf.WriteString("&gt;")
		case r == '\r':
			buf.WriteString("&#xD;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String(), nil
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c >= utf8.RuneSelf || c == '&' || c == '<' || c == '>' {
			return true
		}
	}
	return false
}

func validRuneAt(s string, i int) bool {
	_, n := utf8.DecodeRuneInString(s[i:])
	return n == 3
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

package parse

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/token"
)

type xmlReader struct {
	dec  *xml.Decoder
	doc  *token.PosDoc
	opts *parseOpts
	// offset of the start of the last token returned by next
	off int
}

func parseXML(d []byte, opts *parseOpts) (*ir.Item, error) {
	r := &xmlReader{
		dec:  xml.NewDecoder(bytes.NewReader(d)),
		doc:  token.NewPosDoc(d),
		opts: opts,
	}
	r.dec.Strict = true

	tok, err := r.next()
	if err != nil {
		return nil, eofErr(err)
	}
	root, ok := tok.(xml.StartElement)
	if !ok || root.Name.Local != "plist" {
		return nil, r.errorf("expected <plist> root element")
	}
	tok, err = r.next()
	if err != nil {
		return nil, eofErr(err)
	}
	start, ok := tok.(xml.StartElement)
	if !ok {
		return nil, r.errorf("expected a value in <plist>")
	}
	res, err := r.value(start)
	if err != nil {
		return nil, err
	}
	tok, err = r.next()
	if err != nil {
		return nil, eofErr(err)
	}
	if _, ok := tok.(xml.EndElement); !ok {
		return nil, r.errorf("expected a single value in <plist>")
	}
	if _, err := r.next(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, r.errorf("unexpected content after </plist>")
	}
	return res, nil
}

// next returns the next element boundary or non-blank character data,
// skipping comments, processing instructions and directives. Character data
// is copied.
func (r *xmlReader) next() (xml.Token, error) {
	for {
		off := int(r.dec.InputOffset())
		tok, err := r.dec.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, &PosError{Pos: r.doc.Pos(int(r.dec.InputOffset())), Msg: err.Error()}
		}
		switch x := tok.(type) {
		case xml.Comment, xml.ProcInst, xml.Directive:
			continue
		case xml.CharData:
			if len(bytes.TrimSpace(x)) == 0 {
				continue
			}
			r.off = off
			return x.Copy(), nil
		default:
			r.off = off
			return tok, nil
		}
	}
}

func (r *xmlReader) errorf(msg string, args ...any) error {
	return &PosError{Pos: r.doc.Pos(r.off), Msg: fmt.Sprintf(msg, args...)}
}

func (r *xmlReader) value(start xml.StartElement) (*ir.Item, error) {
	pos := r.doc.Pos(r.off)
	res, err := r.element(start)
	if err != nil {
		return nil, err
	}
	trackPos(res, pos, r.opts)
	trackEnd(res, r.doc.Pos(int(r.dec.InputOffset())), r.opts)
	return res, nil
}

func (r *xmlReader) element(start xml.StartElement) (*ir.Item, error) {
	switch start.Name.Local {
	case "array":
		return r.array()
	case "dict":
		return r.dict()
	case "string":
		s, err := r.text()
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	case "data":
		s, err := r.text()
		if err != nil {
			return nil, err
		}
		d, err := base64.StdEncoding.DecodeString(stripSpace(s))
		if err != nil {
			return nil, r.errorf("bad <data>: %v", err)
		}
		return ir.FromData(d), nil
	case "date":
		s, err := r.text()
		if err != nil {
			return nil, err
		}
		t, err := ir.ParseDate(strings.TrimSpace(s))
		if err != nil {
			return nil, r.errorf("bad <date> %q", s)
		}
		return ir.FromDate(t), nil
	case "integer":
		s, err := r.text()
		if err != nil {
			return nil, err
		}
		res := parseInteger(strings.TrimSpace(s))
		if res == nil {
			return nil, r.errorf("bad <integer> %q", s)
		}
		return res, nil
	case "real":
		s, err := r.text()
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, r.errorf("bad <real> %q", s)
		}
		return ir.FromFloat(f), nil
	case "true", "false":
		s, err := r.text()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(s) != "" {
			return nil, r.errorf("<%s> must be empty", start.Name.Local)
		}
		return ir.FromBool(start.Name.Local == "true"), nil
	default:
		return nil, r.errorf("unknown element <%s>", start.Name.Local)
	}
}

func (r *xmlReader) array() (*ir.Item, error) {
	vals := []*ir.Item{}
	for {
		tok, err := r.next()
		if err != nil {
			return nil, eofErr(err)
		}
		switch x := tok.(type) {
		case xml.EndElement:
			return ir.FromSlice(vals), nil
		case xml.StartElement:
			v, err := r.value(x)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		default:
			return nil, r.errorf("unexpected text in <array>")
		}
	}
}

func (r *xmlReader) dict() (*ir.Item, error) {
	d := ir.NewDict()
	for {
		tok, err := r.next()
		if err != nil {
			return nil, eofErr(err)
		}
		var key string
		switch x := tok.(type) {
		case xml.EndElement:
			return ir.FromDict(d), nil
		case xml.StartElement:
			if x.Name.Local != "key" {
				return nil, r.errorf("expected <key> in <dict>, got <%s>", x.Name.Local)
			}
			key, err = r.text()
			if err != nil {
				return nil, err
			}
		default:
			return nil, r.errorf("unexpected text in <dict>")
		}
		tok, err = r.next()
		if err != nil {
			return nil, eofErr(err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			return nil, r.errorf("missing value for key %q", key)
		}
		if d.ContainsKey(key) {
			return nil, r.errorf("duplicate key %q", key)
		}
		v, err := r.value(start)
		if err != nil {
			return nil, err
		}
		d.Append(key, v)
	}
}

// text reads the character content of the current element up to its end
// tag. Whitespace is preserved.
func (r *xmlReader) text() (string, error) {
	buf := &strings.Builder{}
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidXML, eofErr(err))
		}
		switch x := tok.(type) {
		case xml.CharData:
			buf.Write(x)
		case xml.EndElement:
			return buf.String(), nil
		case xml.StartElement:
			return "", r.errorf("unexpected element <%s> in text", x.Name.Local)
		}
	}
}

func eofErr(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected end of document", ErrInvalidXML)
	}
	return err
}

// parseInteger reads decimal or 0x-prefixed hexadecimal integers. Values
// beyond int64 that fit uint64 are kept as reals.
func parseInteger(s string) *ir.Item {
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
		digits = digits[2:]
	}
	if digits == "" {
		return nil
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil
	}
	switch {
	case neg && u <= 1<<63:
		return ir.FromInt(int64(-u))
	case neg:
		return nil
	case u <= 1<<63-1:
		return ir.FromInt(int64(u))
	default:
		return ir.FromFloat(float64(u))
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

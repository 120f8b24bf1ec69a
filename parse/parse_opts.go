package parse

import (
	"github.com/signadot/plistkit/format"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/token"
)

type parseOpts struct {
	format    format.Format
	positions map[*ir.Item]*token.Pos
	ends      map[*ir.Item]*token.Pos
	dropNull  bool
}

type ParseOption func(*parseOpts)

func ParseXML() ParseOption {
	return ParseFormat(format.XMLFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParsePositions records the start of the element of each parsed item in m.
// Only the XML reader tracks positions.
func ParsePositions(m map[*ir.Item]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}

// ParseEnds records the offset just past the end tag of each parsed item
// in m. Like ParsePositions it only applies to XML.
func ParseEnds(m map[*ir.Item]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.ends = m
	}
}

// ParseDropNull makes the JSON and YAML readers omit null array elements
// and dict pairs with null values instead of failing. A null document is
// still an error.
func ParseDropNull(v bool) ParseOption {
	return func(o *parseOpts) { o.dropNull = v }
}

// GetPositions extracts the positions map from the provided options.
func GetPositions(opts ...ParseOption) map[*ir.Item]*token.Pos {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts.positions
}

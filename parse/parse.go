package parse

import (
	"fmt"

	"github.com/signadot/plistkit/debug"
	"github.com/signadot/plistkit/format"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/token"
)

// Parse reads a single property list document in the configured format
// (XML by default).
func Parse(d []byte, opts ...ParseOption) (*ir.Item, error) {
	pOpts := &parseOpts{format: format.XMLFormat}
	for _, f := range opts {
		f(pOpts)
	}
	var (
		res *ir.Item
		err error
	)
	switch pOpts.format {
	case format.XMLFormat:
		res, err = parseXML(d, pOpts)
	case format.JSONFormat:
		res, err = parseJSON(d, pOpts)
	case format.YAMLFormat:
		res, err = parseYAML(d, pOpts)
	default:
		return nil, fmt.Errorf("%w: %s", format.ErrBadFormat, pOpts.format)
	}
	if err != nil {
		if debug.Parse() {
			debug.Logf("parse %s failed: %v\n", pOpts.format, err)
		}
		return nil, err
	}
	return res, nil
}

func trackPos(it *ir.Item, pos *token.Pos, opts *parseOpts) {
	if opts.positions != nil && pos != nil {
		opts.positions[it] = pos
	}
}

func trackEnd(it *ir.Item, pos *token.Pos, opts *parseOpts) {
	if opts.ends != nil && pos != nil {
		opts.ends[it] = pos
	}
}

// Package gomap decodes property lists into Go values and encodes Go values
// as property list items, through the JSON projection and encoding/json
// struct tags.
package gomap

import (
	"bytes"
	"encoding/json"

	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/format"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/parse"
)

type fromOpts struct {
	format format.Format
}

type FromOption func(*fromOpts)

func LoadFormat(f format.Format) FromOption { return func(o *fromOpts) { o.format = f } }

// IRFromer is implemented by types that decode themselves from items.
type IRFromer interface {
	FromIR(*ir.Item) error
}

// Load parses d and decodes it into p.
func Load(d []byte, p any, opts ...FromOption) error {
	do := &fromOpts{}
	for _, f := range opts {
		f(do)
	}
	it, err := parse.Parse(d, parse.ParseFormat(do.format))
	if err != nil {
		return err
	}
	return FromIR(it, p)
}

// FromIR decodes it into p as encoding/json would decode its JSON
// projection. Dates decode into time.Time and data into []byte.
func FromIR(it *ir.Item, p any) error {
	if x, ok := p.(IRFromer); ok {
		return x.FromIR(it)
	}
	b := bytes.NewBuffer(nil)
	if err := encode.Encode(it, b, encode.EncodeJSON(), encode.EncodeIndent("")); err != nil {
		return err
	}
	return json.Unmarshal(b.Bytes(), p)
}

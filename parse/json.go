package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/plistkit/ir"
)

// parseJSON reads the JSON projection of a property list. Object key order
// is kept. JSON has no dates or data so those come back as strings.
func parseJSON(d []byte, opts *parseOpts) (*ir.Item, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := jsonValue(dec, opts)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%w: null document", ErrParse)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after json value at offset %d", ErrParse, dec.InputOffset())
	}
	return res, nil
}

// jsonValue returns a nil item for null when opts.dropNull is set.
func jsonValue(dec *json.Decoder, opts *parseOpts) (*ir.Item, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '[':
			vals := []*ir.Item{}
			for dec.More() {
				v, err := jsonValue(dec, opts)
				if err != nil {
					return nil, err
				}
				if v != nil {
					vals = append(vals, v)
				}
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParse, err)
			}
			return ir.FromSlice(vals), nil
		case '{':
			dict := ir.NewDict()
			for dec.More() {
				ktok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrParse, err)
				}
				key := ktok.(string)
				if dict.ContainsKey(key) {
					return nil, fmt.Errorf("%w: duplicate key %q at offset %d", ErrParse, key, dec.InputOffset())
				}
				v, err := jsonValue(dec, opts)
				if err != nil {
					return nil, err
				}
				if v != nil {
					dict.Append(key, v)
				}
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParse, err)
			}
			return ir.FromDict(dict), nil
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrParse, x, dec.InputOffset())
		}
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case json.Number:
		res := ir.ParseNumber(x.String())
		if res == nil {
			return nil, fmt.Errorf("%w: bad number %s", ErrParse, x)
		}
		return res, nil
	case nil:
		if opts.dropNull {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: null has no plist equivalent (offset %d)", ErrParse, dec.InputOffset())
	default:
		panic("json token")
	}
}

package gomap

import (
	"encoding/json"
	"reflect"

	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/parse"
)

// IRToer is implemented by types that encode themselves as items.
type IRToer interface {
	ToIR() (*ir.Item, error)
}

// ToIR encodes v as encoding/json would and reads the result back as an
// item, so struct fields keep their declaration order. Values typed
// time.Time and []byte become dates and data. Nil pointers, slices and
// maps are left out.
func ToIR(v any) (*ir.Item, error) {
	if x, ok := v.(IRToer); ok {
		return x.ToIR()
	}
	d, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	it, err := parse.Parse(d, parse.ParseJSON(), parse.ParseDropNull(true))
	if err != nil {
		return nil, err
	}
	return restoreTypes(it, reflect.ValueOf(v)), nil
}

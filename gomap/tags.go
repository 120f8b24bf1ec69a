package gomap

import (
	"encoding/base64"
	"reflect"
	"strings"
	"time"

	"github.com/signadot/plistkit/ir"
)

var timeType = reflect.TypeFor[time.Time]()

// restoreTypes walks it alongside the Go value it was marshaled from and
// turns the strings encoding/json produced for time.Time and []byte back
// into dates and data.
func restoreTypes(it *ir.Item, v reflect.Value) *ir.Item {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return it
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return it
	}
	switch {
	case v.Type() == timeType:
		if it.Type != ir.StringType {
			return it
		}
		t, err := time.Parse(time.RFC3339Nano, it.String)
		if err != nil {
			return it
		}
		return ir.FromDate(t.UTC().Truncate(time.Second))
	case v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8:
		if it.Type != ir.StringType {
			return it
		}
		d, err := base64.StdEncoding.DecodeString(it.String)
		if err != nil {
			return it
		}
		return ir.FromData(d)
	}
	switch it.Type {
	case ir.ArrayType:
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return it
		}
		for i := range min(len(it.Array), v.Len()) {
			it.Array[i] = restoreTypes(it.Array[i], v.Index(i))
		}
	case ir.DictType:
		for i := range it.Dict.Len() {
			p := it.Dict.At(i)
			fv := fieldFor(v, p.Key)
			if !fv.IsValid() {
				continue
			}
			p.Value = restoreTypes(p.Value, fv)
			it.Dict.Set(i, p)
		}
	}
	return it
}

// fieldFor finds the value encoding/json marshaled under key in v, a
// struct or a string-keyed map.
func fieldFor(v reflect.Value, key string) reflect.Value {
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}
		}
		return v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
	case reflect.Struct:
		ty := v.Type()
		for i := range ty.NumField() {
			f := ty.Field(i)
			if !f.IsExported() && !f.Anonymous {
				continue
			}
			name, ok := jsonName(f)
			if !ok {
				continue
			}
			if f.Anonymous && name == "" {
				fv := v.Field(i)
				for fv.Kind() == reflect.Pointer {
					if fv.IsNil() {
						fv = reflect.Value{}
						break
					}
					fv = fv.Elem()
				}
				if fv.IsValid() && fv.Kind() == reflect.Struct {
					if res := fieldFor(fv, key); res.IsValid() {
						return res
					}
				}
				continue
			}
			if name == "" {
				name = f.Name
			}
			if name == key {
				return v.Field(i)
			}
		}
	}
	return reflect.Value{}
}

// jsonName returns the json tag name of f, "" when it has none, and false
// when the field is skipped.
func jsonName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, true
}

package main

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/parse"
)

// parseValue reads a value given on the command line: type:value, a plist
// fragment starting with <, json, or else a plain string.
func parseValue(s string) (*ir.Item, error) {
	if strings.HasPrefix(s, "<") {
		return parsePlistFragment(s)
	}
	if typ, v, ok := strings.Cut(s, ":"); ok {
		if res, known, err := typedValue(typ, v); known {
			if err != nil {
				return nil, fmt.Errorf("bad %s value %q: %w", typ, v, err)
			}
			return res, nil
		}
	}
	if res, err := parse.Parse([]byte(s), parse.ParseJSON()); err == nil {
		return res, nil
	}
	return ir.FromString(s), nil
}

func typedValue(typ, v string) (*ir.Item, bool, error) {
	switch typ {
	case "int", "integer":
		n, err := strconv.ParseInt(v, 0, 64)
		if err != nil {
			return nil, true, err
		}
		return ir.FromInt(n), true, nil
	case "real", "float":
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, true, err
		}
		return ir.FromFloat(f), true, nil
	case "string", "str":
		return ir.FromString(v), true, nil
	case "bool":
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, true, err
		}
		return ir.FromBool(b), true, nil
	case "date":
		t, err := ir.ParseDate(v)
		if err != nil {
			return nil, true, err
		}
		return ir.FromDate(t), true, nil
	case "data":
		d, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, true, err
		}
		return ir.FromData(d), true, nil
	case "json":
		res, err := parse.Parse([]byte(v), parse.ParseJSON())
		return res, true, err
	default:
		return nil, false, nil
	}
}

func parsePlistFragment(s string) (*ir.Item, error) {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "<?xml") && !strings.HasPrefix(t, "<plist") {
		t = "<plist>" + t + "</plist>"
	}
	return parse.Parse([]byte(t))
}

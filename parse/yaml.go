package parse

import (
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/signadot/plistkit/ir"
)

// parseYAML reads the YAML projection of a property list. Mapping order is
// kept. Timestamps become dates and !!binary values become data.
func parseYAML(d []byte, opts *parseOpts) (*ir.Item, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	res, err := fromYAML(v, opts)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%w: null document", ErrParse)
	}
	return res, nil
}

func fromYAML(v any, opts *parseOpts) (*ir.Item, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		dict := ir.NewDict()
		for _, mi := range x {
			key, ok := mi.Key.(string)
			if !ok {
				key = fmt.Sprint(mi.Key)
			}
			if dict.ContainsKey(key) {
				return nil, fmt.Errorf("%w: duplicate key %q", ErrParse, key)
			}
			val, err := fromYAML(mi.Value, opts)
			if err != nil {
				return nil, err
			}
			if val != nil {
				dict.Append(key, val)
			}
		}
		return ir.FromDict(dict), nil
	case []any:
		vals := make([]*ir.Item, 0, len(x))
		for _, e := range x {
			val, err := fromYAML(e, opts)
			if err != nil {
				return nil, err
			}
			if val != nil {
				vals = append(vals, val)
			}
		}
		return ir.FromSlice(vals), nil
	case string:
		return ir.FromString(x), nil
	case bool:
		return ir.FromBool(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return ir.FromFloat(float64(x)), nil
		}
		return ir.FromInt(int64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case time.Time:
		return ir.FromDate(x), nil
	case []byte:
		return ir.FromData(x), nil
	case nil:
		if opts.dropNull {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: null has no plist equivalent", ErrParse)
	default:
		return nil, fmt.Errorf("%w: unsupported yaml value %T", ErrParse, v)
	}
}

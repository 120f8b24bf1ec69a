package eval

import (
	"encoding/base64"

	"github.com/signadot/plistkit/ir"
)

// ToValue converts it to plain Go values for expression environments:
// dicts become map[string]any, arrays []any, integers int, reals float64,
// dates time.Time and data a base64 string.
func ToValue(it *ir.Item) any {
	switch it.Type {
	case ir.ArrayType:
		res := make([]any, len(it.Array))
		for i, v := range it.Array {
			res[i] = ToValue(v)
		}
		return res
	case ir.DictType:
		res := make(map[string]any, it.Dict.Len())
		for k, v := range it.Dict.All() {
			res[k] = ToValue(v)
		}
		return res
	case ir.BoolType:
		return it.Bool
	case ir.DataType:
		return base64.StdEncoding.EncodeToString(it.Data)
	case ir.DateType:
		return it.Date
	case ir.NumberType:
		if it.Int64 != nil {
			return int(*it.Int64)
		}
		return it.Float()
	case ir.StringType:
		return it.String
	default:
		panic("type")
	}
}

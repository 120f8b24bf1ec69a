package encode

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/signadot/plistkit/ir"
)

func encodeYAML(it *ir.Item, w io.Writer) error {
	d, err := yaml.Marshal(ToYAML(it))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// ToYAML converts it to values goccy/go-yaml marshals with dict order
// intact: dicts become yaml.MapSlice.
func ToYAML(it *ir.Item) any {
	switch it.Type {
	case ir.ArrayType:
		res := make([]any, len(it.Array))
		for i, v := range it.Array {
			res[i] = ToYAML(v)
		}
		return res
	case ir.DictType:
		res := make(yaml.MapSlice, 0, it.Dict.Len())
		for k, v := range it.Dict.All() {
			res = append(res, yaml.MapItem{Key: k, Value: ToYAML(v)})
		}
		return res
	case ir.BoolType:
		return it.Bool
	case ir.DataType:
		return base64.StdEncoding.EncodeToString(it.Data)
	case ir.DateType:
		return ir.FormatDate(it.Date)
	case ir.NumberType:
		if i, ok := ir.WholeInt(it); ok {
			return i
		}
		return it.Float()
	case ir.StringType:
		return it.String
	default:
		panic("type")
	}
}

package encode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/signadot/plistkit/ir"
)

// encodeJSON writes the JSON projection of it. Dict order is kept, which
// rules out marshaling through Go maps. Non-finite reals have no JSON form.
// An empty indent gives compact single line output.
func encodeJSON(it *ir.Item, w io.Writer, es *EncState) error {
	compact := bytes.NewBuffer(nil)
	if err := jsonValue(it, compact); err != nil {
		return err
	}
	if es.indent != nil && *es.indent == "" {
		compact.WriteByte('\n')
		_, err := w.Write(compact.Bytes())
		return err
	}
	out := bytes.NewBuffer(nil)
	if err := json.Indent(out, compact.Bytes(), "", es.indentString("  ")); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

func jsonValue(it *ir.Item, buf *bytes.Buffer) error {
	switch it.Type {
	case ir.ArrayType:
		buf.WriteByte('[')
		for i, v := range it.Array {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := jsonValue(v, buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ir.DictType:
		buf.WriteByte('{')
		i := 0
		for k, v := range it.Dict.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			jsonString(k, buf)
			buf.WriteByte(':')
			if err := jsonValue(v, buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case ir.BoolType:
		buf.WriteString(strconv.FormatBool(it.Bool))
	case ir.DataType:
		jsonString(base64.StdEncoding.EncodeToString(it.Data), buf)
	case ir.DateType:
		jsonString(ir.FormatDate(it.Date), buf)
	case ir.NumberType:
		if i, ok := ir.WholeInt(it); ok {
			buf.WriteString(strconv.FormatInt(i, 10))
			break
		}
		f := it.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %v has no json representation", ErrEncoding, f)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case ir.StringType:
		jsonString(it.String, buf)
	default:
		panic("type")
	}
	return nil
}

func jsonString(s string, buf *bytes.Buffer) {
	d, _ := json.Marshal(s)
	buf.Write(d)
}

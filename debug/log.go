package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/ir"
)

// Logf writes to stderr. Items are rendered as YAML, JSON-ish values as
// indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Item:
			buf := bytes.NewBuffer(nil)
			if err := encode.Encode(x, buf, encode.EncodeYAML()); err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Item] %v", x)
				continue
			}
			args[i] = buf.String()
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

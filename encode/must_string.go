package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/plistkit/ir"
)

func MustString(it *ir.Item, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(it, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

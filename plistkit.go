package plistkit

import (
	"bytes"
	"os"

	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/parse"
	"github.com/signadot/plistkit/tree"
)

// Read parses a property list document, XML unless an option says
// otherwise.
func Read(d []byte, opts ...parse.ParseOption) (*ir.Item, error) {
	return parse.Parse(d, opts...)
}

// Write encodes it, as an XML property list by default.
func Write(it *ir.Item, opts ...encode.EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(it, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Open parses d and returns an editable tree over it.
func Open(d []byte, opts ...tree.Option) (*tree.Tree, error) {
	it, err := parse.Parse(d)
	if err != nil {
		return nil, err
	}
	return tree.New(it, opts...), nil
}

func ReadFile(name string, opts ...parse.ParseOption) (*ir.Item, error) {
	d, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Read(d, opts...)
}

// WriteFile encodes it to name, replacing the file.
func WriteFile(name string, it *ir.Item, opts ...encode.EncodeOption) error {
	d, err := Write(it, opts...)
	if err != nil {
		return err
	}
	return os.WriteFile(name, d, 0644)
}

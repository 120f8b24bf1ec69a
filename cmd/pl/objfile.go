package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/parse"

	"github.com/scott-cotton/cli"
)

func readInput(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Item, error) {
	d, err := readInput(cc, path)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, opts...)
}

// keyPath accepts key paths with or without the leading $.
func keyPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: invalid key path \"\"", cli.ErrUsage)
	}
	if p[0] != '$' {
		if p[0] != '.' && p[0] != '[' {
			p = "." + p
		}
		p = "$" + p
	}
	return p, nil
}

package main

import (
	"fmt"

	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/eval"

	"github.com/scott-cotton/cli"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: find requires an expression", cli.ErrUsage)
	}
	expr := args[0]
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	w := cc.Out
	for _, file := range files {
		doc, err := getObjFile(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		matches, err := eval.Find(doc, expr)
		if err != nil {
			return err
		}
		for _, m := range matches {
			prefix := ""
			if len(files) > 1 {
				prefix = file + ": "
			}
			if _, err := fmt.Fprintf(w, "%s%s\n", prefix, m.KeyPath); err != nil {
				return err
			}
			if !cfg.Values {
				continue
			}
			if err := encode.Encode(m.Item, w, cfg.encOpts(w)...); err != nil {
				return fmt.Errorf("error encoding result: %w", err)
			}
		}
	}
	return nil
}

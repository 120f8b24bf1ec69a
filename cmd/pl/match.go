package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/plistkit"
	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/format"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/parse"

	"github.com/scott-cotton/cli"
)

func match(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: match requires 1 argument, a match document", cli.ErrUsage)
	}
	pf := format.YAMLFormat
	if cfg.PFormat != "" {
		pf, err = format.ParseFormat(cfg.PFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	m, err := getish(cfg.String, cfg.File, cc, args[0], []parse.ParseOption{parse.ParseFormat(pf)})
	if err != nil {
		return err
	}
	opts := []plistkit.MatchOpt{plistkit.MatchGlob(cfg.Glob), plistkit.MatchSubtree(cfg.Subtree)}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	n := 0
	for _, file := range files {
		doc, err := getObjFile(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		ok, err := plistkit.Match(doc, m, opts...)
		if err != nil {
			return fmt.Errorf("error matching %s: %w", file, err)
		}
		if !ok {
			continue
		}
		if cfg.Trim {
			doc = plistkit.Trim(m, doc, opts...)
		}
		if n > 0 {
			if err := writeSep(cc.Out); err != nil {
				return err
			}
		}
		n++
		if err := encode.Encode(doc, cc.Out, cfg.MainConfig.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding output: %w", err)
		}
	}
	return nil
}

// getish reads a document given on the command line, as a string with -s,
// from a file with -f, and as a string otherwise.
func getish(s, f bool, cc *cli.Context, arg string, opts []parse.ParseOption) (*ir.Item, error) {
	if s == f && s {
		return nil, fmt.Errorf("%w: only one of -s, -f may be specified", cli.ErrUsage)
	}
	var r io.Reader
	if f {
		switch arg {
		case "-":
			r = cc.In
		default:
			f, err := os.Open(arg)
			if err != nil {
				return nil, fmt.Errorf("error opening %s: %w", arg, err)
			}
			defer f.Close()
			r = f
		}
	} else {
		r = strings.NewReader(arg)
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading: %w", err)
	}
	res, err := parse.Parse(d, opts...)
	if err != nil {
		return nil, fmt.Errorf("error decoding: %w", err)
	}
	return res, nil
}

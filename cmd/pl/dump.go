package main

import (
	"fmt"
	"io"

	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/format"
	"github.com/signadot/plistkit/parse"

	"github.com/scott-cotton/cli"
)

// dump writes documents in a projection, json unless -O or -y says
// otherwise.
func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	out := cfg.outFormat()
	if out.IsXML() {
		out = format.JSONFormat
	}
	return convertFiles(cc, args, cfg.parseOpts(), func(w io.Writer) []encode.EncodeOption {
		return append(cfg.encOpts(w), encode.EncodeFormat(out))
	})
}

// load reads documents in a projection, json unless -I or -y says
// otherwise, and writes them as property lists.
func load(cfg *LoadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Load.Parse(cc, args)
	if err != nil {
		return err
	}
	in := cfg.inFormat()
	if in.IsXML() {
		in = format.JSONFormat
	}
	return convertFiles(cc, args, []parse.ParseOption{parse.ParseFormat(in)}, func(w io.Writer) []encode.EncodeOption {
		return append(cfg.encOpts(w), encode.EncodeFormat(cfg.outFormatOr(format.XMLFormat)))
	})
}

func convertFiles(cc *cli.Context, files []string, pOpts []parse.ParseOption, eOpts func(io.Writer) []encode.EncodeOption) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	w := cc.Out
	for i, file := range files {
		if i > 0 {
			if err := writeSep(w); err != nil {
				return err
			}
		}
		doc, err := getObjFile(cc, file, pOpts...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if err := encode.Encode(doc, w, eOpts(w)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}

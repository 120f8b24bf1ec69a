package main

import (
	"fmt"

	"github.com/signadot/plistkit/dirbuild"
	"github.com/signadot/plistkit/encode"

	"github.com/scott-cotton/cli"
)

func build(cfg *BuildConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Build.Parse(cc, args)
	if err != nil {
		return err
	}
	path := "."
	switch len(args) {
	case 0:
	case 1:
		path = args[0]
	default:
		return fmt.Errorf("%w: build takes at most one directory", cli.ErrUsage)
	}
	env, err := dirbuild.LoadEnv()
	if err != nil {
		return err
	}
	dir, err := dirbuild.OpenDir(path, env)
	if err != nil {
		return err
	}
	outs, err := dir.Build()
	if err != nil {
		return err
	}
	if cfg.Write {
		return dir.Write(outs)
	}
	w := cc.Out
	for i, out := range outs {
		if i > 0 {
			if err := writeSep(w); err != nil {
				return err
			}
		}
		if err := encode.Encode(out.Item, w, cfg.encOpts(w)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", out.Name, err)
		}
	}
	return nil
}

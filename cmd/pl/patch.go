package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/plistkit"
	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/patch"

	"github.com/scott-cotton/cli"
)

func patchCmd(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a patch document and a file to which to apply it", cli.ErrUsage)
	}
	p, err := getPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	file := args[1]
	target, err := getObjFile(cc, file, cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	res, err := patch.Apply(target, p)
	if err != nil {
		return fmt.Errorf("error patching %s: %w", file, err)
	}
	if cfg.Write && file != "-" {
		return plistkit.WriteFile(file, res, cfg.fileEncOpts()...)
	}
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// getPatch reads the patch document, from a file unless -s is given.
func getPatch(cfg *PatchConfig, cc *cli.Context, arg string) ([]byte, error) {
	if cfg.String && cfg.File {
		return nil, fmt.Errorf("%w: only one of -s, -f may be specified", cli.ErrUsage)
	}
	if cfg.String {
		return []byte(arg), nil
	}
	var r io.Reader
	if arg == "-" {
		r = cc.In
	} else {
		f, err := os.Open(arg)
		if err != nil {
			if strings.HasPrefix(strings.TrimSpace(arg), "[") && !cfg.File {
				return []byte(arg), nil
			}
			return nil, fmt.Errorf("%w: error opening %s: %w", cli.ErrUsage, arg, err)
		}
		defer f.Close()
		r = f
	}
	return io.ReadAll(r)
}

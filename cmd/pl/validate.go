package main

import (
	"fmt"

	"github.com/signadot/plistkit/schema"

	"github.com/scott-cotton/cli"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Manifest == "" {
		return fmt.Errorf("%w: validate requires a manifest (-m)", cli.ErrUsage)
	}
	m, err := loadManifest(cc, cfg.Manifest)
	if err != nil {
		return err
	}
	if err := schema.Register(m); err != nil {
		return err
	}
	domain := domainOr(cfg.Domain, m)
	if len(args) == 0 {
		args = []string{"-"}
	}
	bad := 0
	for _, file := range args {
		doc, err := getObjFile(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		for _, v := range schema.Validate(schema.Global(), domain, doc) {
			bad++
			if _, err := fmt.Fprintf(cc.Out, "%s: %s: %v\n", file, doc.PathString(v.Path), v.Err); err != nil {
				return err
			}
		}
	}
	if bad > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

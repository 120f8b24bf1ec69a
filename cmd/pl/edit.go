package main

import (
	"fmt"
	"strconv"

	"github.com/signadot/plistkit"
	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/schema"
	"github.com/signadot/plistkit/tree"

	"github.com/scott-cotton/cli"
)

// editFile loads file into a tree, runs f on it and writes the result to
// the output, or back to file with -w.
func editFile(cfg *EditConfig, cc *cli.Context, file string, f func(*tree.Tree) error) error {
	doc, err := getObjFile(cc, file, cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	var opts []tree.Option
	if cfg.Manifest != "" {
		m, err := loadManifest(cc, cfg.Manifest)
		if err != nil {
			return err
		}
		reg := schema.NewRegistry()
		if err := reg.Register(m); err != nil {
			return err
		}
		opts = append(opts, tree.WithDefaults(reg, domainOr(cfg.Domain, m)))
	}
	tr := tree.New(doc, opts...)
	if err := f(tr); err != nil {
		return err
	}
	if cfg.Write && file != "-" {
		return plistkit.WriteFile(file, tr.Item(), cfg.fileEncOpts()...)
	}
	if err := encode.Encode(tr.Item(), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func loadManifest(cc *cli.Context, file string) (*schema.Manifest, error) {
	it, err := getObjFile(cc, file)
	if err != nil {
		return nil, fmt.Errorf("error decoding manifest %s: %w", file, err)
	}
	m, err := schema.ParseManifest(it)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest %s: %w", file, err)
	}
	return m, nil
}

func domainOr(domain string, m *schema.Manifest) string {
	if domain != "" {
		return domain
	}
	return m.Domain
}

func resolve(tr *tree.Tree, arg string) ([]int, error) {
	p, err := keyPath(arg)
	if err != nil {
		return nil, err
	}
	return tr.Item().Resolve(p)
}

func set(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires a key path, a value and a file", cli.ErrUsage)
	}
	v, err := parseValue(args[1])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return editFile(cfg, cc, args[2], func(tr *tree.Tree) error {
		path, err := resolve(tr, args[0])
		if err != nil {
			return err
		}
		_, err = tr.Replace(path, v)
		return err
	})
}

func insert(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		return err
	}
	var v *ir.Item
	switch len(args) {
	case 3:
	case 4:
		v, err = parseValue(args[2])
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		args = []string{args[0], args[1], args[3]}
	default:
		return fmt.Errorf("%w: insert requires a key path, an index or key, an optional value and a file", cli.ErrUsage)
	}
	return editFile(cfg, cc, args[2], func(tr *tree.Tree) error {
		path, err := resolve(tr, args[0])
		if err != nil {
			return err
		}
		index, key := -1, ""
		switch parent := tr.ItemAt(path); parent.Type {
		case ir.DictType:
			key = args[1]
		case ir.ArrayType:
			if args[1] != "-" {
				index, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("%w: bad index %q", cli.ErrUsage, args[1])
				}
			}
		}
		_, err = tr.Insert(path, index, key, v)
		return err
	})
}

func remove(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: remove requires a key path and a file", cli.ErrUsage)
	}
	return editFile(cfg, cc, args[1], func(tr *tree.Tree) error {
		path, err := resolve(tr, args[0])
		if err != nil {
			return err
		}
		_, err = tr.Remove(path)
		return err
	})
}

func convert(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: convert requires a key path, a type and a file", cli.ErrUsage)
	}
	to, err := ir.ParseType(args[1])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return editFile(cfg, cc, args[2], func(tr *tree.Tree) error {
		path, err := resolve(tr, args[0])
		if err != nil {
			return err
		}
		_, err = tr.ChangeType(path, to)
		return err
	})
}

func rename(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: rename requires a key path, a key and a file", cli.ErrUsage)
	}
	return editFile(cfg, cc, args[2], func(tr *tree.Tree) error {
		path, err := resolve(tr, args[0])
		if err != nil {
			return err
		}
		return tr.RenameKey(path, args[1])
	})
}

func move(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: move requires a key path, an index and a file", cli.ErrUsage)
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: bad index %q", cli.ErrUsage, args[1])
	}
	return editFile(cfg, cc, args[2], func(tr *tree.Tree) error {
		path, err := resolve(tr, args[0])
		if err != nil {
			return err
		}
		return tr.Move(path, to)
	})
}

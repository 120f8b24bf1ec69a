package plistkit

import (
	"bytes"
	"path"

	"github.com/signadot/plistkit/debug"
	"github.com/signadot/plistkit/ir"
)

type MatchConfig struct {
	// Glob matches string patterns as path.Match globs.
	Glob bool
	// Subtree reports a match if the pattern matches any item of doc.
	Subtree bool
}

type MatchOpt func(*MatchConfig)

func MatchGlob(v bool) MatchOpt {
	return func(c *MatchConfig) { c.Glob = v }
}

func MatchSubtree(v bool) MatchOpt {
	return func(c *MatchConfig) { c.Subtree = v }
}

// Match reports whether doc is matched by pattern. A dict pattern matches a
// dict holding every key of the pattern with matching values, in any order.
// An array pattern matches an array of the same length elementwise. Scalars
// match by equality, numbers compared by value.
func Match(doc, pattern *ir.Item, opts ...MatchOpt) (bool, error) {
	cfg := &MatchConfig{}
	for _, o := range opts {
		o(cfg)
	}
	if !cfg.Subtree {
		return match(doc, pattern, cfg)
	}
	found := false
	err := doc.Walk(func(p []int, _ string, it *ir.Item) (bool, error) {
		if found {
			return false, nil
		}
		ok, err := match(it, pattern, cfg)
		if err != nil {
			return false, err
		}
		found = ok
		return !ok, nil
	})
	return found, err
}

func match(doc, pattern *ir.Item, cfg *MatchConfig) (bool, error) {
	if debug.Match() {
		debug.Logf("match %s against %s\n", pattern.Type, doc.Type)
	}
	if doc.Type != pattern.Type {
		return false, nil
	}
	switch pattern.Type {
	case ir.DictType:
		return matchDict(doc, pattern, cfg)
	case ir.ArrayType:
		return matchArray(doc, pattern, cfg)
	case ir.StringType:
		if cfg.Glob {
			return path.Match(pattern.String, doc.String)
		}
		return doc.String == pattern.String, nil
	case ir.BoolType:
		return doc.Bool == pattern.Bool, nil
	case ir.NumberType:
		return doc.Float() == pattern.Float(), nil
	case ir.DateType:
		return doc.Date.Equal(pattern.Date), nil
	case ir.DataType:
		return bytes.Equal(doc.Data, pattern.Data), nil
	}
	return false, nil
}

func matchDict(doc, pattern *ir.Item, cfg *MatchConfig) (bool, error) {
	for k, pv := range pattern.Dict.All() {
		dv := doc.Dict.Get(k)
		if dv == nil {
			return false, nil
		}
		subMatch, err := match(dv, pv, cfg)
		if err != nil {
			return false, err
		}
		if !subMatch {
			return false, nil
		}
	}
	return true, nil
}

func matchArray(doc, pattern *ir.Item, cfg *MatchConfig) (bool, error) {
	if len(doc.Array) != len(pattern.Array) {
		return false, nil
	}
	for i := range doc.Array {
		subMatch, err := match(doc.Array[i], pattern.Array[i], cfg)
		if err != nil {
			return false, err
		}
		if !subMatch {
			return false, nil
		}
	}
	return true, nil
}

// Trim filters doc down to the dict keys and array elements mentioned in
// pattern. Dict keys keep the order of doc. For arrays, each pattern element
// keeps the first unused doc element it matches.
func Trim(pattern, doc *ir.Item, opts ...MatchOpt) *ir.Item {
	cfg := &MatchConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return trim(pattern, doc, cfg)
}

func trim(pattern, doc *ir.Item, cfg *MatchConfig) *ir.Item {
	if pattern.Type != doc.Type {
		return doc.Clone()
	}
	switch pattern.Type {
	case ir.DictType:
		res := ir.NewDict()
		for k, dv := range doc.Dict.All() {
			pv := pattern.Dict.Get(k)
			if pv == nil {
				continue
			}
			res.Append(k, trim(pv, dv, cfg))
		}
		return ir.FromDict(res)
	case ir.ArrayType:
		res := []*ir.Item{}
		used := make([]bool, len(doc.Array))
		for _, pe := range pattern.Array {
			for i, de := range doc.Array {
				if used[i] {
					continue
				}
				matched, err := match(de, pe, cfg)
				if err != nil || !matched {
					continue
				}
				res = append(res, trim(pe, de, cfg))
				used[i] = true
				break
			}
		}
		return ir.FromSlice(res)
	default:
		return doc.Clone()
	}
}

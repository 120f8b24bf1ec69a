// Package dirbuild interprets a property list build directory: a build
// file naming source documents and the JSON patches to apply to them.
package dirbuild

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/plistkit"
	"github.com/signadot/plistkit/debug"
	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/eval"
	"github.com/signadot/plistkit/format"
	"github.com/signadot/plistkit/gomap"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/parse"
	"github.com/signadot/plistkit/patch"
)

const (
	DefaultSuffix = ".plist"
)

var ErrBuild = errors.New("build error")

type Dir struct {
	Root    string         `json:"-"`
	Suffix  string         `json:"suffix,omitempty"`
	DestDir string         `json:"destDir,omitempty"`
	Sources []DirSource    `json:"sources"`
	Patches []DirPatch     `json:"patches,omitempty"`
	Env     map[string]any `json:"env,omitempty"`

	nameCache map[string]int
}

// DirSource names either a single file or a directory whose .plist,
// .json and .yaml files are all sources.
type DirSource struct {
	File string `json:"file,omitempty"`
	Dir  string `json:"dir,omitempty"`
}

// DirPatch is an RFC 6902 patch applied to the sources matching Match (a
// pattern as in plistkit.Match) and satisfying Where (a boolean
// expression over doc). $NAME and ${NAME} in the patch file are replaced
// by the env value of NAME.
type DirPatch struct {
	File  string          `json:"file"`
	Match json.RawMessage `json:"match,omitempty"`
	Where string          `json:"where,omitempty"`

	match *ir.Item
	ops   string
}

func (p *DirPatch) String() string {
	return fmt.Sprintf("patch %s (match=%s where=%q)", p.File, string(p.Match), p.Where)
}

// Output is one built document. Name is relative to the destination.
type Output struct {
	Name   string
	Source string
	Item   *ir.Item
}

// OpenDir reads build.{plist,yaml,json} in path. env is merged over the
// build file's env.
func OpenDir(path string, env map[string]any) (*Dir, error) {
	var (
		buildPath string
		d         []byte
		f         format.Format
		found     bool
	)
	for _, f = range format.AllFormats() {
		candidatePath := filepath.Join(path, "build"+f.Suffix())
		var err error
		d, err = os.ReadFile(candidatePath)
		if err == nil {
			buildPath = candidatePath
			found = true
			break
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read %q: %w", candidatePath, err)
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: could not find build.{plist,yaml,json} in %q", ErrBuild, path)
	}
	it, err := parse.Parse(d, parse.ParseFormat(f))
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", buildPath, err)
	}
	return newDir(it, path, env)
}

func newDir(it *ir.Item, path string, env map[string]any) (*Dir, error) {
	dir := &Dir{
		Root:   path,
		Suffix: DefaultSuffix,
	}
	return initDir(dir, it, env)
}

func initDir(dir *Dir, it *ir.Item, env map[string]any) (*Dir, error) {
	if it.Type == ir.DictType && it.Dict.Len() == 1 {
		if b := it.Dict.Get("build"); b != nil {
			it = b
		}
	}
	if it.Type != ir.DictType {
		return nil, fmt.Errorf("%w: build should be a dict, got %s", ErrBuild, it.Type)
	}
	if err := gomap.FromIR(it, dir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	if env != nil {
		merged, err := mergeEnv(dir.Env, env)
		if err != nil {
			return nil, err
		}
		dir.Env = merged
	}
	if debug.Build() {
		debug.Logf("loaded env %s\n", dir.Env)
	}
	for i := range dir.Patches {
		p := &dir.Patches[i]
		if err := dir.loadPatch(p); err != nil {
			return nil, err
		}
		if debug.Build() {
			debug.Logf("loaded %s\n", p)
		}
	}
	dir.nameCache = map[string]int{}
	return dir, nil
}

func (dir *Dir) loadPatch(p *DirPatch) error {
	if p.File == "" {
		return fmt.Errorf("%w: patch without file", ErrBuild)
	}
	d, err := os.ReadFile(dir.path(p.File))
	if err != nil {
		return err
	}
	p.ops = os.Expand(string(d), dir.envString)
	if len(p.Match) != 0 && string(p.Match) != "null" {
		p.match, err = parse.Parse(p.Match, parse.ParseJSON())
		if err != nil {
			return fmt.Errorf("%w: match of %s: %w", ErrBuild, p.File, err)
		}
	}
	return nil
}

func (dir *Dir) envString(name string) string {
	v, ok := dir.Env[name]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	d, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(d)
}

// mergeEnv applies p to dst as a JSON merge patch.
func mergeEnv(dst, p map[string]any) (map[string]any, error) {
	if dst == nil {
		dst = map[string]any{}
	}
	doc, err := json.Marshal(dst)
	if err != nil {
		return nil, err
	}
	patch, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: merging env: %w", ErrBuild, err)
	}
	res := map[string]any{}
	if err := json.Unmarshal(merged, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (dir *Dir) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir.Root, p)
}

// SourceFiles lists the source files in build order.
func (dir *Dir) SourceFiles() ([]string, error) {
	var res []string
	for _, src := range dir.Sources {
		switch {
		case src.File != "" && src.Dir != "":
			return nil, fmt.Errorf("%w: source with both file and dir", ErrBuild)
		case src.File != "":
			res = append(res, dir.path(src.File))
		case src.Dir != "":
			ents, err := os.ReadDir(dir.path(src.Dir))
			if err != nil {
				return nil, err
			}
			for _, ent := range ents {
				if ent.IsDir() {
					continue
				}
				if _, ok := formatOf(ent.Name()); ok {
					res = append(res, filepath.Join(dir.path(src.Dir), ent.Name()))
				}
			}
		default:
			return nil, fmt.Errorf("%w: empty source", ErrBuild)
		}
	}
	return res, nil
}

func formatOf(name string) (format.Format, bool) {
	ext := filepath.Ext(name)
	for _, f := range format.AllFormats() {
		if f.Suffix() == ext {
			return f, true
		}
	}
	return 0, false
}

// Build reads every source and applies each patch whose conditions hold,
// in order.
func (dir *Dir) Build() ([]Output, error) {
	files, err := dir.SourceFiles()
	if err != nil {
		return nil, err
	}
	res := make([]Output, 0, len(files))
	for _, file := range files {
		f, ok := formatOf(file)
		if !ok {
			f = format.XMLFormat
		}
		doc, err := plistkit.ReadFile(file, parse.ParseFormat(f))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		for i := range dir.Patches {
			doc, err = dir.apply(&dir.Patches[i], doc)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}
		res = append(res, Output{Name: dir.outName(file), Source: file, Item: doc})
	}
	return res, nil
}

func (dir *Dir) apply(p *DirPatch, doc *ir.Item) (*ir.Item, error) {
	if p.match != nil {
		ok, err := plistkit.Match(doc, p.match)
		if err != nil {
			return nil, err
		}
		if !ok {
			return doc, nil
		}
	}
	if p.Where != "" {
		v, err := eval.Eval(doc, p.Where)
		if err != nil {
			return nil, err
		}
		ok, isBool := v.(bool)
		if !isBool {
			return nil, fmt.Errorf("%w: where %q gave %T, want bool", ErrBuild, p.Where, v)
		}
		if !ok {
			return doc, nil
		}
	}
	if debug.Build() {
		debug.Logf("applying %s\n", p)
	}
	return patch.Apply(doc, []byte(p.ops))
}

// outName gives each source a distinct name with the output suffix.
func (dir *Dir) outName(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	n := dir.nameCache[base]
	dir.nameCache[base] = n + 1
	if n > 0 {
		base = fmt.Sprintf("%s-%d", base, n)
	}
	return base + dir.Suffix
}

// Write writes outs under DestDir in the format of the suffix.
func (dir *Dir) Write(outs []Output) error {
	if dir.DestDir == "" {
		return fmt.Errorf("%w: no destDir", ErrBuild)
	}
	dest := dir.path(dir.DestDir)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	f, ok := formatOf(dir.Suffix)
	if !ok {
		f = format.XMLFormat
	}
	for _, out := range outs {
		if err := plistkit.WriteFile(filepath.Join(dest, out.Name), out.Item, encode.EncodeFormat(f)); err != nil {
			return err
		}
	}
	return nil
}

package libdiff

import (
	"fmt"
	"slices"
	"strconv"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/plistkit/ir"
)

type Op int

const (
	Added Op = iota
	Removed
	Changed
)

func (o Op) String() string {
	switch o {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	default:
		return "<unknown op>"
	}
}

// Change is one step turning a document into another. Changes are applied
// in sequence and Path addresses the document as left by the previous
// changes. Key is the dict key of added and removed dict entries.
type Change struct {
	Op      Op
	Path    []int
	KeyPath string
	Key     string
	From    *ir.Item
	To      *ir.Item
	// Text is a character diff when both sides of a Changed op are strings.
	Text []diffpatch.Diff
}

func (c *Change) String() string {
	return fmt.Sprintf("%s %s", c.Op, c.KeyPath)
}

// Diff returns the changes turning from into to. Dicts are compared by
// key, arrays by element. A dict whose shared keys were reordered is
// reported as changed as a whole.
func Diff(from, to *ir.Item) []Change {
	d := &differ{}
	d.diff(from, to, []int{}, "$")
	return d.changes
}

type differ struct {
	changes []Change
}

func (d *differ) add(c Change) {
	c.Path = slices.Clone(c.Path)
	d.changes = append(d.changes, c)
}

func (d *differ) diff(from, to *ir.Item, path []int, keyPath string) {
	if from.Type != to.Type {
		d.add(Change{Op: Changed, Path: path, KeyPath: keyPath, From: from, To: to})
		return
	}
	switch from.Type {
	case ir.DictType:
		d.diffDict(from, to, path, keyPath)
	case ir.ArrayType:
		d.diffArrayByIndex(from, to, path, keyPath)
	case ir.StringType:
		if from.String != to.String {
			d.add(Change{
				Op: Changed, Path: path, KeyPath: keyPath, From: from, To: to,
				Text: DiffString(from.String, to.String),
			})
		}
	default:
		if !from.Equal(to) {
			d.add(Change{Op: Changed, Path: path, KeyPath: keyPath, From: from, To: to})
		}
	}
}

func (d *differ) diffDict(from, to *ir.Item, path []int, keyPath string) {
	common := []string{}
	for k := range from.Dict.All() {
		if to.Dict.ContainsKey(k) {
			common = append(common, k)
		}
	}
	toCommon := []string{}
	for k := range to.Dict.All() {
		if from.Dict.ContainsKey(k) {
			toCommon = append(toCommon, k)
		}
	}
	if !slices.Equal(common, toCommon) {
		d.add(Change{Op: Changed, Path: path, KeyPath: keyPath, From: from, To: to})
		return
	}
	cur := from
	for i := from.Dict.Len() - 1; i >= 0; i-- {
		p := from.Dict.At(i)
		if to.Dict.ContainsKey(p.Key) {
			continue
		}
		d.add(Change{
			Op: Removed, Path: append(path, i), KeyPath: keyPath + "." + ir.QuoteKey(p.Key),
			Key: p.Key, From: p.Value,
		})
		cur = cur.Removing(i)
	}
	for i, k := range common {
		d.diff(cur.Child(i), to.Dict.Get(k), append(path, i), keyPath+"."+ir.QuoteKey(k))
	}
	for i := range to.Dict.Len() {
		p := to.Dict.At(i)
		if from.Dict.ContainsKey(p.Key) {
			continue
		}
		d.add(Change{
			Op: Added, Path: append(path, i), KeyPath: keyPath + "." + ir.QuoteKey(p.Key),
			Key: p.Key, To: p.Value,
		})
	}
}

func indexKeyPath(keyPath string, i int) string {
	return keyPath + "[" + strconv.Itoa(i) + "]"
}

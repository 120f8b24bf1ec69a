package schema

import (
	"slices"

	"github.com/signadot/plistkit/ir"
)

// KeysOf returns the manifest key path of the item at indexPath in root:
// dict keys as is and ElementKey for array elements.
func KeysOf(root *ir.Item, indexPath []int) []string {
	res := make([]string, 0, len(indexPath))
	cur := root
	for _, i := range indexPath {
		if cur.Type == ir.DictType {
			res = append(res, cur.Key(i))
		} else {
			res = append(res, ElementKey)
		}
		cur = cur.Child(i)
	}
	return res
}

// Violation is a constraint failure at an index path.
type Violation struct {
	Path []int
	Err  error
}

// Validate checks every item of root that src has a constraint for.
func Validate(src Source, domain string, root *ir.Item) []Violation {
	var res []Violation
	_ = root.Walk(func(path []int, _ string, it *ir.Item) (bool, error) {
		if len(path) == 0 {
			return true, nil
		}
		c, ok := src.Lookup(domain, KeysOf(root, path))
		if !ok {
			return true, nil
		}
		if err := c.Check(it); err != nil {
			res = append(res, Violation{Path: slices.Clone(path), Err: err})
		}
		return true, nil
	})
	return res
}

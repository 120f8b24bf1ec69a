package libdiff

import (
	"fmt"

	"github.com/signadot/plistkit/ir"
)

// Apply applies changes to doc in order and returns the result. Removed
// and changed items must equal the From side of their change.
func Apply(doc *ir.Item, changes []Change) (*ir.Item, error) {
	res := doc
	for i := range changes {
		c := &changes[i]
		var err error
		res, err = apply(res, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
	}
	return res, nil
}

func apply(doc *ir.Item, c *Change) (*ir.Item, error) {
	switch c.Op {
	case Added:
		if len(c.Path) == 0 {
			return nil, fmt.Errorf("%w: cannot add the root", ErrConflict)
		}
		pp, i := c.Path[:len(c.Path)-1], c.Path[len(c.Path)-1]
		parent, err := at(doc, pp)
		if err != nil {
			return nil, err
		}
		if i < 0 || i > parent.ChildCount() {
			return nil, fmt.Errorf("%w: index %d out of range", ErrConflict, i)
		}
		switch parent.Type {
		case ir.DictType:
			if parent.Dict.ContainsKey(c.Key) {
				return nil, fmt.Errorf("%w: key %q already present", ErrConflict, c.Key)
			}
		case ir.ArrayType:
		default:
			return nil, fmt.Errorf("%w: cannot add to %s", ErrConflict, parent.Type)
		}
		return doc.Setting(parent.Inserting(i, c.Key, c.To), pp), nil

	case Removed:
		if len(c.Path) == 0 {
			return nil, fmt.Errorf("%w: cannot remove the root", ErrConflict)
		}
		cur, err := at(doc, c.Path)
		if err != nil {
			return nil, err
		}
		if !cur.Equal(c.From) {
			return nil, fmt.Errorf("%w: removed value differs", ErrConflict)
		}
		pp := c.Path[:len(c.Path)-1]
		parent := doc.Item(pp)
		return doc.Setting(parent.Removing(c.Path[len(c.Path)-1]), pp), nil

	case Changed:
		cur, err := at(doc, c.Path)
		if err != nil {
			return nil, err
		}
		to := c.To
		if c.Text != nil && cur.Type == ir.StringType {
			s, err := PatchString(cur.String, c.Text)
			if err != nil {
				return nil, err
			}
			to = ir.FromString(s)
		} else if !cur.Equal(c.From) {
			return nil, fmt.Errorf("%w: changed value differs", ErrConflict)
		}
		return doc.Setting(to, c.Path), nil

	default:
		panic("op")
	}
}

func at(doc *ir.Item, path []int) (*ir.Item, error) {
	cur := doc
	for _, i := range path {
		if !cur.Type.IsCollection() || i < 0 || i >= cur.ChildCount() {
			return nil, fmt.Errorf("%w: no item at %v", ErrConflict, path)
		}
		cur = cur.Child(i)
	}
	return cur, nil
}

package tree

import (
	"fmt"

	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/schema"
)

// check reports whether path addresses an item of the tree.
func (t *Tree) check(path []int) error {
	cur := t.item
	for depth, i := range path {
		if !cur.Type.IsCollection() {
			return fmt.Errorf("%w: %v: cannot index into %s at depth %d", ErrEdit, path, cur.Type, depth)
		}
		if i < 0 || i >= cur.ChildCount() {
			return fmt.Errorf("%w: %v: index %d out of range at depth %d", ErrEdit, path, i, depth)
		}
		cur = cur.Child(i)
	}
	return nil
}

func (t *Tree) checkParent(path []int) ([]int, int, *ir.Item, error) {
	if len(path) == 0 {
		return nil, 0, nil, fmt.Errorf("%w: the root has no parent", ErrEdit)
	}
	if err := t.check(path); err != nil {
		return nil, 0, nil, err
	}
	pp := path[:len(path)-1]
	return pp, path[len(path)-1], t.item.Item(pp), nil
}

// builtNode returns the node at p if it exists and its children have been
// built, nil otherwise. Nodes that were never built need no update.
func (t *Tree) builtNode(p []int) *Node {
	if t.root == nil {
		return nil
	}
	n := t.root
	for _, i := range p {
		if !n.built {
			return nil
		}
		n = n.children[i]
	}
	if !n.built {
		return nil
	}
	return n
}

// Insert adds v as child index of the collection at parentPath. An index
// of -1 appends. For dicts an empty key picks an unused placeholder key.
// A nil v is replaced by the manifest default for the new key path, or the
// default string.
func (t *Tree) Insert(parentPath []int, index int, key string, v *ir.Item) (*Node, error) {
	if err := t.check(parentPath); err != nil {
		return nil, err
	}
	parent := t.item.Item(parentPath)
	if !parent.Type.IsCollection() {
		return nil, fmt.Errorf("%w: cannot insert into %s", ErrEdit, parent.Type)
	}
	n := parent.ChildCount()
	if index == -1 {
		index = n
	}
	if index < 0 || index > n {
		return nil, fmt.Errorf("%w: insert index %d out of range [0, %d]", ErrEdit, index, n)
	}
	elemKey := schema.ElementKey
	if parent.Type == ir.DictType {
		if key == "" {
			key = parent.Dict.UnusedKey()
		}
		if parent.Dict.ContainsKey(key) {
			return nil, fmt.Errorf("%w: key %q already present", ErrEdit, key)
		}
		elemKey = key
	}
	if v == nil {
		keys := append(schema.KeysOf(t.item, parentPath), elemKey)
		v = t.defaultAt(keys)
	}
	if v == nil {
		v = ir.Default(ir.StringType)
	}
	t.set(parent.Inserting(index, key, v), parentPath, Change{Kind: InsertChange, Index: index})
	if pn := t.builtNode(parentPath); pn != nil {
		pn.InsertChild(index)
	}
	return t.NodeAt(append(append([]int{}, parentPath...), index)), nil
}

// Remove deletes the item at path and returns it.
func (t *Tree) Remove(path []int) (*ir.Item, error) {
	pp, i, parent, err := t.checkParent(path)
	if err != nil {
		return nil, err
	}
	old := parent.Child(i)
	t.set(parent.Removing(i), pp, Change{Kind: RemoveChange, Index: i})
	if pn := t.builtNode(pp); pn != nil {
		pn.RemoveChild(i)
	}
	return old, nil
}

// Replace sets v at path, rebuilding the node's children, and returns the
// previous item.
func (t *Tree) Replace(path []int, v *ir.Item) (*ir.Item, error) {
	if err := t.check(path); err != nil {
		return nil, err
	}
	old := t.set(v, path, Change{Kind: ReplaceChange, Index: -1})
	if n := t.builtNode(path); n != nil {
		n.RegenerateChildren()
	}
	return old, nil
}

// ChangeType converts the item at path to type to. When the change crosses
// between scalars and collections the manifest default for the key path is
// preferred over the converted value.
func (t *Tree) ChangeType(path []int, to ir.Type) (*ir.Item, error) {
	if err := t.check(path); err != nil {
		return nil, err
	}
	old := t.item.Item(path)
	if old.Type == to {
		return old, nil
	}
	v := old.Converting(to)
	crossing := old.Type.IsCollection() != to.IsCollection()
	if crossing {
		if d := t.defaultAt(schema.KeysOf(t.item, path)); d != nil && d.Type == to {
			v = d
		}
	}
	t.set(v, path, Change{Kind: TypeChange, Index: -1})
	if n := t.builtNode(path); n != nil && (crossing || len(n.children) != v.ChildCount()) {
		n.RegenerateChildren()
	}
	return old, nil
}

// RenameKey changes the dict key of the item at path.
func (t *Tree) RenameKey(path []int, key string) error {
	pp, i, parent, err := t.checkParent(path)
	if err != nil {
		return err
	}
	if parent.Type != ir.DictType {
		return fmt.Errorf("%w: %s has no keys", ErrEdit, parent.Type)
	}
	if parent.Key(i) == key {
		return nil
	}
	if parent.Dict.ContainsKey(key) {
		return fmt.Errorf("%w: key %q already present", ErrEdit, key)
	}
	t.set(parent.RenamingKey(i, key), pp, Change{Kind: RenameChange, Index: i})
	return nil
}

// Move moves the item at path to index to within its parent.
func (t *Tree) Move(path []int, to int) error {
	pp, from, parent, err := t.checkParent(path)
	if err != nil {
		return err
	}
	if to < 0 || to >= parent.ChildCount() {
		return fmt.Errorf("%w: move index %d out of range [0, %d)", ErrEdit, to, parent.ChildCount())
	}
	if from == to {
		return nil
	}
	t.set(parent.Moving(from, to), pp, Change{Kind: MoveChange, Index: from, To: to})
	if pn := t.builtNode(pp); pn != nil {
		pn.moveChild(from, to)
	}
	return nil
}

// Revert undoes c by putting its old item back and rebuilding the nodes
// below it.
func (t *Tree) Revert(c Change) error {
	_, err := t.Replace(c.Path, c.Old)
	return err
}

package tree

import (
	"github.com/signadot/plistkit/debug"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/schema"
)

// Tree owns a root item and the node proxy mirroring it. Every write goes
// through SetItem. A Tree is not safe for concurrent use.
type Tree struct {
	item *ir.Item
	root *Node

	defaults schema.Source
	domain   string

	observers []func(Change)
}

type Option func(*Tree)

// WithDefaults makes Insert and ChangeType take default values from src
// for the preference domain when it has a constraint for the key path.
func WithDefaults(src schema.Source, domain string) Option {
	return func(t *Tree) {
		t.defaults = src
		t.domain = domain
	}
}

func New(root *ir.Item, opts ...Option) *Tree {
	t := &Tree{item: root}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Item returns the current root item.
func (t *Tree) Item() *ir.Item { return t.item }

// Root returns the root node, building it on first use.
func (t *Tree) Root() *Node {
	if t.root == nil {
		t.root = &Node{tree: t}
	}
	return t.root
}

// ItemAt returns the item at index path p.
func (t *Tree) ItemAt(p []int) *ir.Item {
	return t.item.Item(p)
}

// NodeAt returns the node at index path p.
func (t *Tree) NodeAt(p []int) *Node {
	n := t.Root()
	for _, i := range p {
		n = n.Child(i)
	}
	return n
}

// Observe registers f to be called after every edit.
func (t *Tree) Observe(f func(Change)) {
	t.observers = append(t.observers, f)
}

// SetItem replaces the item at path with v and returns the item it
// replaced, so setting it back undoes the edit. Nodes are not updated;
// callers follow up with the matching node operation.
func (t *Tree) SetItem(v *ir.Item, path []int) *ir.Item {
	return t.set(v, path, Change{Kind: SetChange, Index: -1})
}

func (t *Tree) set(v *ir.Item, path []int, c Change) *ir.Item {
	old := t.item.Item(path)
	t.item = t.item.Setting(v, path)
	c.Path = append([]int{}, path...)
	c.Old = old
	c.New = v
	if debug.Tree() {
		debug.Logf("tree: %s at %v\n", c.Kind, c.Path)
	}
	for _, f := range t.observers {
		f(c)
	}
	return old
}

// defaultAt returns the default for a new item at the given key path, or
// nil when no constraint applies.
func (t *Tree) defaultAt(keys []string) *ir.Item {
	if t.defaults == nil {
		return nil
	}
	c, ok := t.defaults.Lookup(t.domain, keys)
	if !ok {
		return nil
	}
	return c.DefaultItem()
}

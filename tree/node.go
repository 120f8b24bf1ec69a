package tree

import (
	"fmt"
	"slices"

	"github.com/signadot/plistkit/ir"
)

// Node mirrors one item of its tree. It holds no value data: Item fetches
// the current value from the tree by index path. Nodes are built lazily
// from Tree.Root and must be kept in step with edits through InsertChild,
// RemoveChild and RegenerateChildren, or by using the Tree edit helpers.
type Node struct {
	tree     *Tree
	parent   *Node
	children []*Node
	built    bool
	index    int
	path     []int
}

func (n *Node) Tree() *Tree   { return n.tree }
func (n *Node) Parent() *Node { return n.parent }
func (n *Node) IsRoot() bool  { return n.parent == nil }

// Index returns the position of n in its parent, 0 for the root.
func (n *Node) Index() int { return n.index }

// IndexPath returns the path of n from the root. It is cached until an
// ancestor or n itself moves. The result must not be modified.
func (n *Node) IndexPath() []int {
	if n.path != nil {
		return n.path
	}
	if n.parent == nil {
		n.path = []int{}
		return n.path
	}
	pp := n.parent.IndexPath()
	p := make([]int, len(pp)+1)
	copy(p, pp)
	p[len(pp)] = n.index
	n.path = p
	return p
}

// Item returns the current value of n.
func (n *Node) Item() *ir.Item {
	if n.tree == nil {
		panic("tree: node is detached")
	}
	return n.tree.ItemAt(n.IndexPath())
}

// Key returns the dict key of n and whether its parent is a dict.
func (n *Node) Key() (string, bool) {
	if n.parent == nil {
		return "", false
	}
	pi := n.parent.Item()
	if pi.Type != ir.DictType {
		return "", false
	}
	return pi.Key(n.index), true
}

// KeyPath renders the index path of n as a key path.
func (n *Node) KeyPath() string {
	return n.tree.Item().PathString(n.IndexPath())
}

func (n *Node) NumberOfChildren() int {
	n.ensureChildren()
	return len(n.children)
}

func (n *Node) Child(i int) *Node {
	n.ensureChildren()
	if i < 0 || i >= len(n.children) {
		panic(fmt.Sprintf("tree: child index %d out of range [0, %d)", i, len(n.children)))
	}
	return n.children[i]
}

func (n *Node) Children() []*Node {
	n.ensureChildren()
	return slices.Clone(n.children)
}

func (n *Node) ensureChildren() {
	if n.built {
		return
	}
	n.RegenerateChildren()
}

// RegenerateChildren discards the children of n and rebuilds one per
// element or pair of the current item. Grandchildren are built lazily.
func (n *Node) RegenerateChildren() {
	for _, c := range n.children {
		c.detach()
	}
	it := n.Item()
	count := it.ChildCount()
	n.children = make([]*Node, count)
	for i := range count {
		n.children[i] = n.newChild(i)
	}
	n.built = true
	n.checkInSync()
}

func (n *Node) newChild(i int) *Node {
	return &Node{tree: n.tree, parent: n, index: i}
}

// InsertChild adds a node at index i after the matching item insertion
// has been committed to the tree. Unbuilt children are built from the
// committed item instead.
func (n *Node) InsertChild(i int) *Node {
	if !n.built {
		n.RegenerateChildren()
		return n.Child(i)
	}
	if i < 0 || i > len(n.children) {
		panic(fmt.Sprintf("tree: insert index %d out of range [0, %d]", i, len(n.children)))
	}
	c := n.newChild(i)
	n.children = slices.Insert(n.children, i, c)
	n.reindex(i + 1)
	n.checkInSync()
	return c
}

// RemoveChild drops the node at index i after the matching item removal
// has been committed to the tree. The removed node is detached. When the
// children of n were never built, the result is a fresh detached node.
func (n *Node) RemoveChild(i int) *Node {
	if !n.built {
		n.RegenerateChildren()
		return &Node{index: i}
	}
	if i < 0 || i >= len(n.children) {
		panic(fmt.Sprintf("tree: remove index %d out of range [0, %d)", i, len(n.children)))
	}
	c := n.children[i]
	n.children = slices.Delete(n.children, i, i+1)
	n.reindex(i)
	n.checkInSync()
	c.detach()
	return c
}

// moveChild moves the node at from to index to, keeping its subtree.
func (n *Node) moveChild(from, to int) {
	n.ensureChildren()
	c := n.children[from]
	n.children = slices.Delete(n.children, from, from+1)
	n.children = slices.Insert(n.children, to, c)
	n.reindex(min(from, to))
	n.checkInSync()
}

// reindex fixes the indices of the children from i on and invalidates
// their cached paths.
func (n *Node) reindex(i int) {
	for j := i; j < len(n.children); j++ {
		c := n.children[j]
		c.index = j
		c.invalidate()
	}
}

// invalidate drops the cached path of n and its built descendants.
func (n *Node) invalidate() {
	n.path = nil
	for _, c := range n.children {
		c.invalidate()
	}
}

func (n *Node) detach() {
	n.parent = nil
	n.clear()
}

func (n *Node) clear() {
	n.tree = nil
	n.path = nil
	for _, c := range n.children {
		c.clear()
	}
}

func (n *Node) checkInSync() {
	if n.tree == nil {
		panic("tree: node is detached")
	}
	if got, want := len(n.children), n.Item().ChildCount(); got != want {
		panic(fmt.Sprintf("tree: node at %v has %d children, item has %d", n.IndexPath(), got, want))
	}
}

// Package tree is the editing model over an ir item: a Tree owning the
// current root item and a proxy of Nodes mirroring its shape, for outline
// style editors.
//
// Items are immutable, so each edit replaces the root through
// Tree.SetItem. The edit helpers (Insert, Remove, Replace, ChangeType,
// RenameKey, Move) pair the value edit with the node update that keeps the
// node shape equal to the value shape; code calling SetItem directly must
// do that itself with InsertChild, RemoveChild or RegenerateChildren.
package tree

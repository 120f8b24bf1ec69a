package tree

import "github.com/signadot/plistkit/ir"

type ChangeKind int

const (
	SetChange ChangeKind = iota
	InsertChange
	RemoveChange
	ReplaceChange
	TypeChange
	RenameChange
	MoveChange
)

func (k ChangeKind) String() string {
	switch k {
	case SetChange:
		return "set"
	case InsertChange:
		return "insert"
	case RemoveChange:
		return "remove"
	case ReplaceChange:
		return "replace"
	case TypeChange:
		return "type"
	case RenameChange:
		return "rename"
	case MoveChange:
		return "move"
	default:
		return "<unknown change>"
	}
}

// Change reports an edit. Path is the index path of the item that was
// replaced; for insert, remove, rename and move that is the parent and
// Index is the affected child (To is the destination of a move). Setting
// Old back at Path undoes the change.
type Change struct {
	Kind  ChangeKind
	Path  []int
	Index int
	To    int
	Old   *ir.Item
	New   *ir.Item
}

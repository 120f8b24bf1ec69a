package libdiff

import (
	"slices"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Reverse returns the changes undoing changes: Apply(Apply(doc, cs),
// Reverse(cs)) is doc.
func Reverse(changes []Change) []Change {
	res := make([]Change, 0, len(changes))
	for i := len(changes) - 1; i >= 0; i-- {
		c := changes[i]
		c.Path = slices.Clone(c.Path)
		switch c.Op {
		case Added:
			c.Op = Removed
		case Removed:
			c.Op = Added
		}
		c.From, c.To = c.To, c.From
		if c.Text != nil {
			c.Text = reverseText(c.Text)
		}
		res = append(res, c)
	}
	return res
}

func reverseText(diffs []diffpatch.Diff) []diffpatch.Diff {
	res := make([]diffpatch.Diff, len(diffs))
	for i, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			d.Type = diffpatch.DiffInsert
		case diffpatch.DiffInsert:
			d.Type = diffpatch.DiffDelete
		}
		res[i] = d
	}
	return res
}

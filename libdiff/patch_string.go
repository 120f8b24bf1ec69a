package libdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// PatchString applies a character diff to doc. Equal and deleted text must
// match doc exactly.
func PatchString(doc string, diffs []diffpatch.Diff) (string, error) {
	res := &strings.Builder{}
	rest := doc
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffEqual:
			if !strings.HasPrefix(rest, d.Text) {
				return "", fmt.Errorf("%w: cannot patch, unexpected text %q, expected %q", ErrConflict, clip(rest), d.Text)
			}
			res.WriteString(d.Text)
			rest = rest[len(d.Text):]
		case diffpatch.DiffDelete:
			if !strings.HasPrefix(rest, d.Text) {
				return "", fmt.Errorf("%w: cannot delete %q, found %q", ErrConflict, d.Text, clip(rest))
			}
			rest = rest[len(d.Text):]
		case diffpatch.DiffInsert:
			res.WriteString(d.Text)
		}
	}
	if rest != "" {
		return "", fmt.Errorf("%w: unexpected trailing text %q", ErrConflict, clip(rest))
	}
	return res.String(), nil
}

func clip(s string) string {
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}

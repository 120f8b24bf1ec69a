package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffString returns a character diff of from and to, cleaned up to
// human readable boundaries. Multi-line strings are diffed line first.
func DiffString(from, to string) []diffpatch.Diff {
	diffCfg := diffpatch.New()
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := diffCfg.DiffMain(from, to, doMultiLine)
	return diffCfg.DiffCleanupSemantic(diffs)
}

// Line is one line of a line diff.
type Line struct {
	Type diffpatch.Operation
	Text string
}

// TextDiff diffs from and to line by line, typically two encodings of a
// document.
func TextDiff(from, to []byte) []Line {
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(string(from), string(to))
	diffs := diffCfg.DiffMain(a, b, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)
	res := []Line{}
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, ln := range strings.Split(text, "\n") {
			res = append(res, Line{Type: d.Type, Text: ln})
		}
	}
	return res
}

// LinesChanged reports whether any line differs.
func LinesChanged(lines []Line) bool {
	for _, ln := range lines {
		if ln.Type != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

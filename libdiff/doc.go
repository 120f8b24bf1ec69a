// Package libdiff computes and applies structural differences between
// property list items, and character or line diffs of their text.
package libdiff

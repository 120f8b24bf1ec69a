// Package parse reads property list documents into ir.Item trees.
//
// The XML reader accepts the Apple plist DTD vocabulary. It tracks the
// position of each element when ParsePositions is given, which the language
// server uses for diagnostics and hover. JSON and YAML are accepted as
// alternate projections; they cannot express dates or data faithfully.
package parse

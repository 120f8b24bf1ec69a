// Package plistkit reads, edits and writes property lists while keeping
// dictionary key order.
//
// The item model lives in package ir, the XML reader in parse and the
// writer in encode. Package tree adds an editable node proxy over a
// document, and patch, libdiff and eval provide RFC 6902 patches,
// structural diffs and expression queries.
//
// This package has conveniences over those and structural matching:
//
//	doc, _ := plistkit.Read(d)
//	pattern, _ := plistkit.Read(p, parse.ParseYAML())
//	ok, _ := plistkit.Match(doc, pattern)
package plistkit

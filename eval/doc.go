// Package eval runs expr-lang expressions against property list items,
// for queries such as
//
//	type == "String" && key == "PayloadType"
//	depth == 1 && count > 3
package eval

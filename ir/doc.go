// Package ir provides the in-memory representation of property lists.
//
// # Overview
//
// A property list is a tree of Items. Each Item is a tagged union whose Type
// is one of the seven plist types:
//
//   - ArrayType: ordered list of items
//   - DictType: ordered string-keyed pairs (see Dict)
//   - BoolType, DataType, DateType, NumberType, StringType: scalars
//
// Arrays and dicts are collections, everything else is a scalar.
//
// # Editing
//
// Items are treated as immutable once they are part of a tree. To edit,
// build a replacement and substitute it with Setting, which copies only the
// ancestors along the index path:
//
//	doc2 := doc.Setting(ir.FromString("com.example"), []int{0, 2})
//
// Inserting, Removing, RenamingKey and Moving do the same for collection
// children. Converting changes an item's type and never fails.
//
// # Paths
//
// Index paths ([]int) address items positionally. Key paths such as
// $.PayloadContent[0].PayloadType are parsed by ParsePath and converted to
// index paths with Item.Resolve.
package ir

package ir

import (
	"fmt"
	"slices"
)

// Inserting returns a copy of the collection it with v inserted at index.
// For dicts key names the new pair and must not be present; for arrays key
// is ignored.
func (it *Item) Inserting(index int, key string, v *Item) *Item {
	res := it.shallowClone()
	switch it.Type {
	case ArrayType:
		if index < 0 || index > len(it.Array) {
			panic(fmt.Sprintf("ir: array insert index %d out of range [0, %d]", index, len(it.Array)))
		}
		res.Array = slices.Insert(res.Array, index, v)
	case DictType:
		res.Dict.Insert(key, v, index)
	default:
		panic(fmt.Sprintf("ir: cannot insert into %s", it.Type))
	}
	return res
}

// Removing returns a copy of the collection it without the child at index.
func (it *Item) Removing(index int) *Item {
	res := it.shallowClone()
	switch it.Type {
	case ArrayType:
		if index < 0 || index >= len(it.Array) {
			panic(fmt.Sprintf("ir: array index %d out of range [0, %d)", index, len(it.Array)))
		}
		res.Array = slices.Delete(res.Array, index, index+1)
	case DictType:
		res.Dict.Remove(index)
	default:
		panic(fmt.Sprintf("ir: cannot remove from %s", it.Type))
	}
	return res
}

// RenamingKey returns a copy of the dict it with the key at index replaced.
func (it *Item) RenamingKey(index int, key string) *Item {
	if it.Type != DictType {
		panic(fmt.Sprintf("ir: %s has no keys", it.Type))
	}
	res := it.shallowClone()
	res.Dict.Rename(index, key)
	return res
}

// Moving returns a copy of the collection it with the child at from moved
// to index to, keeping its key if it is a dict.
func (it *Item) Moving(from, to int) *Item {
	if from == to {
		it.Child(from)
		return it
	}
	switch it.Type {
	case ArrayType:
		v := it.Child(from)
		return it.Removing(from).Inserting(to, "", v)
	case DictType:
		p := it.Dict.At(from)
		return it.Removing(from).Inserting(to, p.Key, p.Value)
	default:
		panic(fmt.Sprintf("ir: cannot move within %s", it.Type))
	}
}

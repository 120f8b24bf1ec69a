package ir

import (
	"fmt"
	"time"
)

const (
	// NewItemKey prefixes the placeholder keys handed out by UnusedKey.
	NewItemKey = "New Item"
	// NewValueString is the default String value.
	NewValueString = "New Value"
)

// Item is a property list value.
//
// Values are placed in fields depending on Type: Array for ArrayType, Dict
// for DictType, Int64 or Float64 for NumberType and so on. An Item is not
// modified once it is reachable from another item; edits build a
// replacement with Setting and friends.
type Item struct {
	Type Type

	Array []*Item
	Dict  *Dict

	Bool    bool
	Data    []byte
	Date    time.Time
	String  string
	Int64   *int64
	Float64 *float64
}

func FromSlice(items []*Item) *Item {
	if items == nil {
		items = []*Item{}
	}
	return &Item{Type: ArrayType, Array: items}
}

func FromDict(d *Dict) *Item {
	if d == nil {
		d = NewDict()
	}
	return &Item{Type: DictType, Dict: d}
}

// FromKeyVals builds a dict item. It panics on duplicate keys.
func FromKeyVals(kvs []Pair) *Item {
	return FromDict(NewDict(kvs...))
}

func FromBool(v bool) *Item {
	return &Item{Type: BoolType, Bool: v}
}

func FromData(d []byte) *Item {
	if d == nil {
		d = []byte{}
	}
	return &Item{Type: DataType, Data: d}
}

// FromDate builds a date item. Plist dates carry whole seconds in UTC, so
// t is truncated accordingly.
func FromDate(t time.Time) *Item {
	return &Item{Type: DateType, Date: t.UTC().Truncate(time.Second)}
}

func FromInt(v int64) *Item {
	return &Item{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Item {
	return &Item{Type: NumberType, Float64: &f}
}

func FromString(v string) *Item {
	return &Item{Type: StringType, String: v}
}

// Default returns the value a freshly created item of type t holds.
func Default(t Type) *Item {
	switch t {
	case ArrayType:
		return FromSlice(nil)
	case BoolType:
		return FromBool(false)
	case DataType:
		return FromData(nil)
	case DateType:
		return FromDate(time.Now())
	case DictType:
		return FromDict(nil)
	case NumberType:
		return FromInt(0)
	case StringType:
		return FromString(NewValueString)
	default:
		panic("type")
	}
}

// Float returns the numeric value of a NumberType item as a float64.
func (it *Item) Float() float64 {
	switch {
	case it.Int64 != nil:
		return float64(*it.Int64)
	case it.Float64 != nil:
		return *it.Float64
	default:
		return 0
	}
}

// IsInt reports whether a NumberType item holds an integer.
func (it *Item) IsInt() bool {
	return it.Int64 != nil
}

func (it *Item) ChildCount() int {
	switch it.Type {
	case ArrayType:
		return len(it.Array)
	case DictType:
		return it.Dict.Len()
	default:
		return 0
	}
}

// Child returns the i'th element of an array or the value of the i'th pair
// of a dict. Indexing a scalar or out of range panics.
func (it *Item) Child(i int) *Item {
	switch it.Type {
	case ArrayType:
		if i < 0 || i >= len(it.Array) {
			panic(fmt.Sprintf("ir: array index %d out of range [0, %d)", i, len(it.Array)))
		}
		return it.Array[i]
	case DictType:
		return it.Dict.At(i).Value
	default:
		panic(fmt.Sprintf("ir: cannot index into %s", it.Type))
	}
}

// Key returns the key of the i'th pair of a dict item.
func (it *Item) Key(i int) string {
	if it.Type != DictType {
		panic(fmt.Sprintf("ir: %s has no keys", it.Type))
	}
	return it.Dict.At(i).Key
}

// Item returns the descendant at the index path. An empty path returns it.
func (it *Item) Item(path []int) *Item {
	res := it
	for _, i := range path {
		res = res.Child(i)
	}
	return res
}

// Setting returns a copy of it with the item at path replaced by v. Only the
// ancestors along path are copied; everything else is shared with it.
func (it *Item) Setting(v *Item, path []int) *Item {
	if len(path) == 0 {
		return v
	}
	i := path[0]
	child := it.Child(i).Setting(v, path[1:])
	res := it.shallowClone()
	switch res.Type {
	case ArrayType:
		res.Array[i] = child
	case DictType:
		res.Dict.pairs[i].Value = child
	}
	return res
}

// Clone returns a deep copy of it.
func (it *Item) Clone() *Item {
	res := *it
	switch it.Type {
	case ArrayType:
		res.Array = make([]*Item, len(it.Array))
		for i, v := range it.Array {
			res.Array[i] = v.Clone()
		}
	case DictType:
		res.Dict = NewDict()
		for k, v := range it.Dict.All() {
			res.Dict.Append(k, v.Clone())
		}
	case DataType:
		res.Data = append([]byte{}, it.Data...)
	case NumberType:
		if it.Int64 != nil {
			i := *it.Int64
			res.Int64 = &i
		}
		if it.Float64 != nil {
			f := *it.Float64
			res.Float64 = &f
		}
	}
	return &res
}

// shallowClone copies the item and the storage of its direct children.
func (it *Item) shallowClone() *Item {
	res := *it
	switch it.Type {
	case ArrayType:
		res.Array = append([]*Item{}, it.Array...)
	case DictType:
		res.Dict = it.Dict.Clone()
	}
	return &res
}

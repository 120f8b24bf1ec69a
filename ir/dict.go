package ir

import (
	"fmt"
	"iter"
	"strconv"
)

// Pair is a single key/value entry of a Dict.
type Pair struct {
	Key   string
	Value *Item
}

// Dict is an ordered sequence of key/value pairs with unique keys.
//
// Insertion order is significant and preserved: plist consumers rely on
// the order of keys within a dict. Key membership is tracked in a side set
// so duplicate detection does not scan the pairs.
//
// A nil *Dict behaves as an empty dict for reads.
type Dict struct {
	pairs []Pair
	keys  map[string]struct{}
}

// NewDict returns a dict holding pairs in order. It panics if two pairs
// share a key.
func NewDict(pairs ...Pair) *Dict {
	d := &Dict{
		pairs: make([]Pair, 0, len(pairs)),
		keys:  make(map[string]struct{}, len(pairs)),
	}
	for _, p := range pairs {
		d.Append(p.Key, p.Value)
	}
	return d
}

func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.pairs)
}

func (d *Dict) At(i int) Pair {
	d.checkIndex(i, d.Len())
	return d.pairs[i]
}

// All iterates the pairs in order.
func (d *Dict) All() iter.Seq2[string, *Item] {
	return func(yield func(string, *Item) bool) {
		if d == nil {
			return
		}
		for _, p := range d.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

func (d *Dict) Keys() []string {
	res := make([]string, 0, d.Len())
	for k := range d.All() {
		res = append(res, k)
	}
	return res
}

func (d *Dict) ContainsKey(key string) bool {
	if d == nil {
		return false
	}
	_, ok := d.keys[key]
	return ok
}

// IndexOf returns the index of key, or -1.
func (d *Dict) IndexOf(key string) int {
	if !d.ContainsKey(key) {
		return -1
	}
	for i := range d.pairs {
		if d.pairs[i].Key == key {
			return i
		}
	}
	panic("ir: dict key set out of sync with pairs")
}

// Get returns the value stored under key, or nil.
func (d *Dict) Get(key string) *Item {
	i := d.IndexOf(key)
	if i == -1 {
		return nil
	}
	return d.pairs[i].Value
}

// Append adds a pair at the end. It panics if key is present.
func (d *Dict) Append(key string, v *Item) {
	d.Insert(key, v, len(d.pairs))
}

// Insert adds a pair at index i, shifting later pairs. It panics if key is
// present or i is out of range.
func (d *Dict) Insert(key string, v *Item, i int) {
	if d.ContainsKey(key) {
		panic(fmt.Sprintf("ir: duplicate dict key %q", key))
	}
	d.checkIndex(i, len(d.pairs)+1)
	if d.keys == nil {
		d.keys = make(map[string]struct{})
	}
	d.keys[key] = struct{}{}
	if i == len(d.pairs) {
		d.pairs = append(d.pairs, Pair{Key: key, Value: v})
		return
	}
	d.pairs = append(d.pairs, Pair{})
	copy(d.pairs[i+1:], d.pairs[i:])
	d.pairs[i] = Pair{Key: key, Value: v}
}

// Remove deletes and returns the pair at index i.
func (d *Dict) Remove(i int) Pair {
	d.checkIndex(i, d.Len())
	p := d.pairs[i]
	delete(d.keys, p.Key)
	d.pairs = append(d.pairs[:i], d.pairs[i+1:]...)
	return p
}

// Set replaces the pair at index i. When the key changes the key set is
// updated; using a key held by another pair panics.
func (d *Dict) Set(i int, p Pair) {
	d.checkIndex(i, d.Len())
	old := d.pairs[i].Key
	if old != p.Key {
		if d.ContainsKey(p.Key) {
			panic(fmt.Sprintf("ir: duplicate dict key %q", p.Key))
		}
		delete(d.keys, old)
		d.keys[p.Key] = struct{}{}
	}
	d.pairs[i] = p
}

// Rename changes the key at index i keeping its value.
func (d *Dict) Rename(i int, key string) {
	d.Set(i, Pair{Key: key, Value: d.At(i).Value})
}

// UnusedKey returns the first placeholder key of the form "New Item N"
// (N counting from 1) not present in d.
func (d *Dict) UnusedKey() string {
	for n := 1; ; n++ {
		k := NewItemKey + " " + strconv.Itoa(n)
		if !d.ContainsKey(k) {
			return k
		}
	}
}

// Clone returns a copy of d sharing the values but not the pair storage.
func (d *Dict) Clone() *Dict {
	res := &Dict{
		pairs: make([]Pair, d.Len()),
		keys:  make(map[string]struct{}, d.Len()),
	}
	if d == nil {
		return res
	}
	copy(res.pairs, d.pairs)
	for k := range d.keys {
		res.keys[k] = struct{}{}
	}
	return res
}

func (d *Dict) checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("ir: dict index %d out of range [0, %d)", i, n))
	}
}

package ir

import (
	"bytes"
	"math"
)

// Equal reports whether it and o hold the same value. Numbers compare by
// value regardless of integer/real representation, dicts compare pairs in
// order.
func (it *Item) Equal(o *Item) bool {
	if it == o {
		return true
	}
	if it == nil || o == nil {
		return false
	}
	if it.Type != o.Type {
		return false
	}
	switch it.Type {
	case ArrayType:
		if len(it.Array) != len(o.Array) {
			return false
		}
		for i := range it.Array {
			if !it.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	case DictType:
		if it.Dict.Len() != o.Dict.Len() {
			return false
		}
		for i := range it.Dict.Len() {
			p, q := it.Dict.At(i), o.Dict.At(i)
			if p.Key != q.Key || !p.Value.Equal(q.Value) {
				return false
			}
		}
		return true
	case BoolType:
		return it.Bool == o.Bool
	case DataType:
		return bytes.Equal(it.Data, o.Data)
	case DateType:
		return it.Date.Equal(o.Date)
	case StringType:
		return it.String == o.String
	case NumberType:
		return numberEqual(it, o)
	default:
		panic("type")
	}
}

func numberEqual(a, b *Item) bool {
	if a.Int64 != nil || b.Int64 != nil {
		ai, aok := WholeInt(a)
		bi, bok := WholeInt(b)
		return aok && bok && ai == bi
	}
	af, bf := a.Float(), b.Float()
	if math.IsNaN(af) && math.IsNaN(bf) {
		return true
	}
	return af == bf
}

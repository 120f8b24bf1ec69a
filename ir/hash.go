package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the item consistent with Equal within the
// running process.
// It panics if it is nil.
func (it *Item) Hash() uint64 {
	if it == nil {
		panic("ir: Hash called on nil item")
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	it.writeHash(&h)
	return h.Sum64()
}

func (it *Item) writeHash(h *maphash.Hash) {
	var b [8]byte
	h.WriteByte(byte(it.Type))
	switch it.Type {
	case BoolType:
		if it.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		// integers and whole reals that compare equal hash the same
		if i, ok := WholeInt(it); ok {
			h.WriteByte('i')
			binary.LittleEndian.PutUint64(b[:], uint64(i))
		} else {
			f := it.Float()
			if math.IsNaN(f) {
				f = math.NaN()
			}
			h.WriteByte('f')
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		}
		h.Write(b[:])
	case StringType:
		h.WriteString(it.String)
	case DataType:
		h.Write(it.Data)
	case DateType:
		binary.LittleEndian.PutUint64(b[:], uint64(it.Date.UnixNano()))
		h.Write(b[:])
	case ArrayType:
		for _, v := range it.Array {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case DictType:
		for k, v := range it.Dict.All() {
			h.WriteString(k)
			h.WriteByte(0)
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	default:
		panic("type")
	}
}

// WholeInt returns the value of a number item as an int64 when it is a
// whole number in range.
func WholeInt(it *Item) (int64, bool) {
	if it.Int64 != nil {
		return *it.Int64, true
	}
	f := it.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

package ir

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"
	"time"
)

// Converting returns it converted to type t. Conversion is total: when no
// meaningful mapping exists the result is Default(t).
//
//   - Array and Dict convert into each other; array elements get
//     placeholder keys, dict keys are dropped.
//   - Bool, Number and String convert into each other. Strings are true
//     when they read "yes" or "true" in any case.
//   - Date and Number convert through whole Unix seconds. Numbers outside
//     the years 0000 to 9999 convert to the default date.
//   - Data and String convert through base64.
//   - Date and String convert through DateLayout.
func (it *Item) Converting(t Type) *Item {
	if it.Type == t {
		return it
	}
	var res *Item
	switch t {
	case ArrayType:
		res = it.toArray()
	case BoolType:
		res = it.toBool()
	case DataType:
		res = it.toData()
	case DateType:
		res = it.toDate()
	case DictType:
		res = it.toDict()
	case NumberType:
		res = it.toNumber()
	case StringType:
		res = it.toString()
	}
	if res == nil {
		return Default(t)
	}
	return res
}

func (it *Item) toArray() *Item {
	if it.Type != DictType {
		return nil
	}
	vals := make([]*Item, 0, it.Dict.Len())
	for _, v := range it.Dict.All() {
		vals = append(vals, v)
	}
	return FromSlice(vals)
}

func (it *Item) toDict() *Item {
	if it.Type != ArrayType {
		return nil
	}
	d := NewDict()
	for _, v := range it.Array {
		d.Append(d.UnusedKey(), v)
	}
	return FromDict(d)
}

func (it *Item) toBool() *Item {
	switch it.Type {
	case NumberType:
		return FromBool(it.Float() != 0)
	case StringType:
		return FromBool(StringTruth(it.String))
	default:
		return nil
	}
}

// StringTruth reports whether v spells true ("yes" or "true", any case).
func StringTruth(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true":
		return true
	default:
		return false
	}
}

func (it *Item) toNumber() *Item {
	switch it.Type {
	case BoolType:
		if it.Bool {
			return FromInt(1)
		}
		return FromInt(0)
	case StringType:
		return ParseNumber(strings.TrimSpace(it.String))
	case DateType:
		return FromInt(it.Date.Unix())
	default:
		return nil
	}
}

// ParseNumber reads v as an integer, then as a real. It returns nil when v
// is neither.
func ParseNumber(v string) *Item {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return FromInt(i)
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return FromFloat(f)
	}
	return nil
}

// FormatNumber renders a NumberType item in its shortest form.
func FormatNumber(it *Item) string {
	if it.Int64 != nil {
		return strconv.FormatInt(*it.Int64, 10)
	}
	return strconv.FormatFloat(it.Float(), 'g', -1, 64)
}

func (it *Item) toString() *Item {
	switch it.Type {
	case BoolType:
		return FromString(strconv.FormatBool(it.Bool))
	case NumberType:
		return FromString(FormatNumber(it))
	case DataType:
		return FromString(base64.StdEncoding.EncodeToString(it.Data))
	case DateType:
		return FromString(FormatDate(it.Date))
	default:
		return nil
	}
}

func (it *Item) toData() *Item {
	if it.Type != StringType {
		return nil
	}
	d, err := base64.StdEncoding.DecodeString(strings.TrimSpace(it.String))
	if err != nil {
		return nil
	}
	return FromData(d)
}

func (it *Item) toDate() *Item {
	switch it.Type {
	case NumberType:
		var sec int64
		if it.Int64 != nil {
			sec = *it.Int64
		} else {
			f := math.Trunc(it.Float())
			if math.IsNaN(f) || f < float64(minDate.Unix()) || f > float64(maxDate.Unix()) {
				return nil
			}
			sec = int64(f)
		}
		if sec < minDate.Unix() || sec > maxDate.Unix() {
			return nil
		}
		return FromDate(time.Unix(sec, 0))
	case StringType:
		t, err := ParseDate(strings.TrimSpace(it.String))
		if err != nil || !DateInRange(t) {
			return nil
		}
		return FromDate(t)
	default:
		return nil
	}
}

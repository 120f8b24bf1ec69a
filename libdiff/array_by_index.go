package libdiff

import (
	"encoding/base64"
	"strconv"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/plistkit/ir"
)

// diffArrayByIndex summarizes each element as a rune, diffs the rune
// sequences and then:
//
//  1. recurses into elements whose summaries match,
//  2. pairs deleted elements with inserted ones that follow them as
//     changes,
//  3. reports the rest as removals and additions.
//
// Collections summarize to their type alone so that edited dicts and
// arrays match and are diffed further.
func (d *differ) diffArrayByIndex(from, to *ir.Item, path []int, keyPath string) {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	fi, ti, ri := 0, 0, 0
	pendingDel := 0
	flush := func() {
		for ; pendingDel > 0; pendingDel-- {
			d.add(Change{Op: Removed, Path: append(path, ri), KeyPath: indexKeyPath(keyPath, ri), From: from.Array[fi]})
			fi++
		}
	}
	for i := range diffs {
		n := len([]rune(diffs[i].Text))
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			pendingDel += n
		case diffpatch.DiffInsert:
			for range n {
				if pendingDel > 0 {
					d.add(Change{
						Op: Changed, Path: append(path, ri), KeyPath: indexKeyPath(keyPath, ri),
						From: from.Array[fi], To: to.Array[ti],
					})
					pendingDel--
					fi++
				} else {
					d.add(Change{Op: Added, Path: append(path, ri), KeyPath: indexKeyPath(keyPath, ri), To: to.Array[ti]})
				}
				ri++
				ti++
			}
			flush()
		case diffpatch.DiffEqual:
			flush()
			for range n {
				d.diff(from.Array[fi], to.Array[ti], append(path, ri), indexKeyPath(keyPath, ri))
				ri++
				fi++
				ti++
			}
		}
	}
	flush()
}

func mapValues(m map[string]rune, it *ir.Item) []rune {
	rs := make([]rune, len(it.Array))
	for i, v := range it.Array {
		sum := summaryStr(v)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summaryStr(it *ir.Item) string {
	switch it.Type {
	case ir.DictType, ir.ArrayType:
		return it.Type.String()
	case ir.BoolType:
		return it.Type.String() + "-" + strconv.FormatBool(it.Bool)
	case ir.StringType:
		if strings.Contains(it.String, "\n") {
			return it.Type.String() + "/m"
		}
		return it.Type.String() + "-" + it.String
	case ir.NumberType:
		return it.Type.String() + "-" + ir.FormatNumber(it)
	case ir.DateType:
		return it.Type.String() + "-" + ir.FormatDate(it.Date)
	case ir.DataType:
		return it.Type.String() + "-" + base64.StdEncoding.EncodeToString(it.Data)
	default:
		panic("type")
	}
}

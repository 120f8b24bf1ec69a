package ir

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// PathString renders an index path into it as a key path such as
// $.PayloadContent[0].PayloadType.
func (it *Item) PathString(indexPath []int) string {
	buf := bytes.NewBuffer([]byte{'$'})
	cur := it
	for _, i := range indexPath {
		switch cur.Type {
		case DictType:
			buf.WriteString("." + QuoteKey(cur.Key(i)))
		case ArrayType:
			fmt.Fprintf(buf, "[%d]", i)
		default:
			panic(fmt.Sprintf("ir: cannot index into %s", cur.Type))
		}
		cur = cur.Child(i)
	}
	return buf.String()
}

type Path struct {
	IndexAll bool
	Index    *int
	Field    *string
	Subtree  bool
	Next     *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	x := p
	for x != nil {
		if x.Subtree {
			buf.WriteString("..")
			x = x.Next
			continue
		}
		if x.IndexAll {
			buf.WriteString("[*]")
			x = x.Next
			continue
		}
		if x.Field != nil {
			buf.WriteString("." + QuoteKey(*x.Field))
			x = x.Next
			continue
		}
		if x.Index != nil {
			fmt.Fprintf(buf, "[%d]", *x.Index)
			x = x.Next
			continue
		}
		x = x.Next
	}
	return buf.String()

}

func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrPath, p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	err := parseFrag(p[1:], root)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPath, p, err)
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			parent.Subtree = true
			next := &Path{}
			err := parseFrag(frag[2:], next)
			if err != nil {
				return err
			}
			parent.Next = next
			return nil
		}
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		if len(rest) == 0 {
			return nil
		}
		next := &Path{}
		err = parseFrag(rest, next)
		if err != nil {
			return err
		}
		parent.Next = next
		return nil
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.IndexAll = all
		if !all {
			parent.Index = &index
		}
		if len(frag) == i+2 {
			return nil
		}
		next := &Path{}
		err = parseFrag(frag[i+2:], next)
		if err != nil {
			return err
		}
		parent.Next = next
		return nil
	default:
		return fmt.Errorf("expected '.' or '['")
	}
}

func parseIndex(is string) (index int, all bool, err error) {
	if len(is) == 1 && is[0] == '*' {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return int(u64), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			i++
			if i == len(frag) {
				return "", "", fmt.Errorf("trailing escape in %q", frag)
			}
			res = append(res, frag[i])
		case '\'':
			return string(res), frag[i+1:], nil
		default:
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

// Resolve converts a key path into an index path against it. Every step
// must exist.
func (it *Item) Resolve(p string) ([]int, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	res, found, err := it.resolve(yp)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s not found", ErrPath, p)
	}
	return res, nil
}

func (it *Item) resolve(yp *Path) ([]int, bool, error) {
	res := []int{}
	cur := it
	for yp != nil {
		if yp.IndexAll {
			return nil, false, fmt.Errorf("%w: any index in get", ErrPath)
		}
		if yp.Subtree {
			return nil, false, fmt.Errorf("%w: recurse .. in get", ErrPath)
		}
		if yp.Index != nil {
			if cur.Type != ArrayType {
				return nil, false, fmt.Errorf("%w: expected array, got %s", ErrPath, cur.Type)
			}
			index := *yp.Index
			if index < 0 || index >= len(cur.Array) {
				return nil, false, fmt.Errorf("%w: index out of bounds %d (len %d)", ErrPath, index, len(cur.Array))
			}
			res = append(res, index)
			cur = cur.Array[index]
			yp = yp.Next
			continue
		}
		if yp.Field != nil {
			if cur.Type != DictType {
				return nil, false, fmt.Errorf("%w: expected dict got %s", ErrPath, cur.Type)
			}
			i := cur.Dict.IndexOf(*yp.Field)
			if i == -1 {
				return nil, false, nil
			}
			res = append(res, i)
			cur = cur.Dict.At(i).Value
			yp = yp.Next
			continue
		}
		if yp.Next != nil {
			return nil, false, fmt.Errorf("%w: unexpected next w/out index or field", ErrPath)
		}
		break
	}
	return res, true, nil
}

// GetPath returns the item at the key path p, or nil if a dict key along
// the way is missing.
func (it *Item) GetPath(p string) (*Item, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	ip, found, err := it.resolve(yp)
	if err != nil || !found {
		return nil, err
	}
	return it.Item(ip), nil
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, "'", `\'`)

// QuoteKey renders a dict key as a key path field, quoting it when it
// holds path syntax.
func QuoteKey(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
		return f
	}
	return "'" + keyEscaper.Replace(f) + "'"
}

// ListPath appends to dst every item matched by p, which may use [*] and ..
func (it *Item) ListPath(dst []*Item, p string) ([]*Item, error) {
	paths, err := it.ListIndexPaths(p)
	if err != nil {
		return nil, err
	}
	for _, ip := range paths {
		dst = append(dst, it.Item(ip))
	}
	return dst, nil
}

// ListIndexPaths returns the index paths of the items matched by p.
func (it *Item) ListIndexPaths(p string) ([][]int, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	return it.listPath(nil, []int{}, yp), nil
}

func (it *Item) listPath(dst [][]int, at []int, yp *Path) [][]int {
	if yp == nil {
		return append(dst, slices.Clone(at))
	}
	if yp.Subtree {
		it.Walk(func(path []int, _ string, node *Item) (bool, error) {
			if !node.Type.IsCollection() {
				return false, nil
			}
			dst = node.listPath(dst, append(slices.Clone(at), path...), yp.Next)
			return true, nil
		})
		return dst
	}
	switch it.Type {
	case DictType:
		if yp.IndexAll || yp.Index != nil {
			return dst
		}
		if yp.Field == nil && yp.Next == nil {
			return append(dst, slices.Clone(at))
		}
		if yp.Field == nil {
			return dst
		}
		i := it.Dict.IndexOf(*yp.Field)
		if i == -1 {
			return dst
		}
		return it.Dict.At(i).Value.listPath(dst, append(at, i), yp.Next)

	case ArrayType:
		if yp.Field != nil {
			return dst
		}
		if yp.Index == nil && !yp.IndexAll && yp.Next == nil {
			return append(dst, slices.Clone(at))
		}
		if yp.Index != nil {
			idx := *yp.Index
			if 0 <= idx && idx < len(it.Array) {
				dst = it.Array[idx].listPath(dst, append(at, idx), yp.Next)
			}
			return dst
		}
		if !yp.IndexAll {
			return dst
		}
		for i, v := range it.Array {
			dst = v.listPath(dst, append(at, i), yp.Next)
		}
		return dst

	default:
		if yp.Field != nil || yp.Index != nil || yp.IndexAll {
			return dst
		}
		if yp.Next == nil {
			return append(dst, slices.Clone(at))
		}
		return dst
	}
}

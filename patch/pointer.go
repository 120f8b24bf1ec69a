package patch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/plistkit/ir"
)

// ParsePointer splits a JSON pointer (RFC 6901) into unescaped reference
// tokens. The empty pointer refers to the whole document.
func ParsePointer(p string) ([]string, error) {
	if p == "" {
		return []string{}, nil
	}
	if p[0] != '/' {
		return nil, fmt.Errorf("%w: pointer %q must start with '/'", ErrPatch, p)
	}
	parts := strings.Split(p[1:], "/")
	for i, part := range parts {
		parts[i] = strings.NewReplacer("~1", "/", "~0", "~").Replace(part)
	}
	return parts, nil
}

// FormatPointer renders the index path of doc as a JSON pointer.
func FormatPointer(doc *ir.Item, path []int) string {
	buf := &strings.Builder{}
	cur := doc
	for _, i := range path {
		buf.WriteByte('/')
		if cur.Type == ir.DictType {
			buf.WriteString(strings.NewReplacer("~", "~0", "/", "~1").Replace(cur.Key(i)))
		} else {
			buf.WriteString(strconv.Itoa(i))
		}
		cur = cur.Child(i)
	}
	return buf.String()
}

// resolve converts tokens into an index path against doc. Every token
// must name an existing child.
func resolve(doc *ir.Item, tokens []string) ([]int, error) {
	res := make([]int, 0, len(tokens))
	cur := doc
	for _, tok := range tokens {
		i, err := childIndex(cur, tok, false)
		if err != nil {
			return nil, err
		}
		res = append(res, i)
		cur = cur.Child(i)
	}
	return res, nil
}

// childIndex finds tok in the collection it. With insert set, array
// tokens may address one past the end ("-" or the length).
func childIndex(it *ir.Item, tok string, insert bool) (int, error) {
	switch it.Type {
	case ir.DictType:
		i := it.Dict.IndexOf(tok)
		if i == -1 {
			return 0, fmt.Errorf("%w: no key %q", ErrPatch, tok)
		}
		return i, nil
	case ir.ArrayType:
		n := len(it.Array)
		if tok == "-" && insert {
			return n, nil
		}
		if tok == "" || (len(tok) > 1 && tok[0] == '0') || strings.Trim(tok, "0123456789") != "" {
			return 0, fmt.Errorf("%w: bad array index %q", ErrPatch, tok)
		}
		i, err := strconv.Atoi(tok)
		if err != nil || i < 0 {
			return 0, fmt.Errorf("%w: bad array index %q", ErrPatch, tok)
		}
		if i > n || (i == n && !insert) {
			return 0, fmt.Errorf("%w: array index %d out of range (len %d)", ErrPatch, i, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: cannot index into %s with %q", ErrPatch, it.Type, tok)
	}
}

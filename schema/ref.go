package schema

import "strings"

// ElementKey stands for any element of an array in a key path.
const ElementKey = "[]"

// EscapeKey escapes the separator and the escape character in a single
// key so that keys containing dots survive JoinKeyPath.
func EscapeKey(k string) string {
	if !strings.ContainsAny(k, `.\`) {
		return k
	}
	return strings.NewReplacer(`\`, `\\`, `.`, `\.`).Replace(k)
}

func UnescapeKey(e string) string {
	if !strings.Contains(e, `\`) {
		return e
	}
	buf := &strings.Builder{}
	escaped := false
	for _, c := range e {
		if c == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		buf.WriteRune(c)
	}
	return buf.String()
}

// JoinKeyPath renders keys as a dotted path, escaping each key.
func JoinKeyPath(keys []string) string {
	esc := make([]string, len(keys))
	for i, k := range keys {
		esc[i] = EscapeKey(k)
	}
	return strings.Join(esc, ".")
}

// SplitKeyPath is the inverse of JoinKeyPath.
func SplitKeyPath(p string) []string {
	if p == "" {
		return nil
	}
	res := []string{}
	start := 0
	escaped := false
	for i := 0; i < len(p); i++ {
		switch {
		case escaped:
			escaped = false
		case p[i] == '\\':
			escaped = true
		case p[i] == '.':
			res = append(res, UnescapeKey(p[start:i]))
			start = i + 1
		}
	}
	return append(res, UnescapeKey(p[start:]))
}

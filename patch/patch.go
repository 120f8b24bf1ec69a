package patch

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/plistkit/debug"
	"github.com/signadot/plistkit/format"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/parse"
)

// Decode reads an RFC 6902 patch document.
func Decode(d []byte) (jsonpatch.Patch, error) {
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return ops, nil
}

// Apply decodes patchJSON and applies it to doc.
func Apply(doc *ir.Item, patchJSON []byte) (*ir.Item, error) {
	ops, err := Decode(patchJSON)
	if err != nil {
		return nil, err
	}
	return ApplyOps(doc, ops)
}

// ApplyOps applies the operations of p to doc in order. The operations
// work on the item tree directly, so dict order is kept: added keys go
// last, replaced and moved-onto keys keep their position.
func ApplyOps(doc *ir.Item, p jsonpatch.Patch) (*ir.Item, error) {
	res := doc
	for i, op := range p {
		var err error
		res, err = applyOp(res, op)
		if err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, op.Kind(), err)
		}
		if debug.Patch() {
			debug.Logf("patch: after op %d (%s)\n%v", i, op.Kind(), res)
		}
	}
	return res, nil
}

func applyOp(doc *ir.Item, op jsonpatch.Operation) (*ir.Item, error) {
	path, err := op.Path()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	tokens, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	switch op.Kind() {
	case "add":
		v, err := value(op)
		if err != nil {
			return nil, err
		}
		return add(doc, tokens, v)
	case "remove":
		res, _, err := remove(doc, tokens)
		return res, err
	case "replace":
		v, err := value(op)
		if err != nil {
			return nil, err
		}
		ip, err := resolve(doc, tokens)
		if err != nil {
			return nil, err
		}
		return doc.Setting(coerce(doc.Item(ip), v), ip), nil
	case "move":
		from, err := fromTokens(op)
		if err != nil {
			return nil, err
		}
		if slices.Equal(tokens, from) {
			return doc, nil
		}
		if len(tokens) > len(from) && slices.Equal(tokens[:len(from)], from) {
			return nil, fmt.Errorf("%w: cannot move %q into itself", ErrPatch, path)
		}
		res, v, err := remove(doc, from)
		if err != nil {
			return nil, err
		}
		return add(res, tokens, v)
	case "copy":
		from, err := fromTokens(op)
		if err != nil {
			return nil, err
		}
		ip, err := resolve(doc, from)
		if err != nil {
			return nil, err
		}
		return add(doc, tokens, doc.Item(ip))
	case "test":
		v, err := value(op)
		if err != nil {
			return nil, err
		}
		ip, err := resolve(doc, tokens)
		if err != nil {
			return nil, err
		}
		cur := doc.Item(ip)
		if !cur.Equal(coerce(cur, v)) {
			return nil, fmt.Errorf("%w: test failed at %q", ErrPatch, path)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrPatch, op.Kind())
	}
}

func fromTokens(op jsonpatch.Operation) ([]string, error) {
	from, err := op.From()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return ParsePointer(from)
}

func value(op jsonpatch.Operation) (*ir.Item, error) {
	raw, ok := op["value"]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: missing value", ErrPatch)
	}
	v, err := parse.Parse(*raw, parse.ParseFormat(format.JSONFormat))
	if err != nil {
		return nil, fmt.Errorf("%w: value: %w", ErrPatch, err)
	}
	return v, nil
}

// add inserts v at tokens. Existing dict keys are replaced in place, new
// ones appended.
func add(doc *ir.Item, tokens []string, v *ir.Item) (*ir.Item, error) {
	if len(tokens) == 0 {
		return v, nil
	}
	pp, err := resolve(doc, tokens[:len(tokens)-1])
	if err != nil {
		return nil, err
	}
	parent := doc.Item(pp)
	last := tokens[len(tokens)-1]
	switch parent.Type {
	case ir.DictType:
		if i := parent.Dict.IndexOf(last); i != -1 {
			return doc.Setting(coerce(parent.Child(i), v), append(pp, i)), nil
		}
		return doc.Setting(parent.Inserting(parent.Dict.Len(), last, v), pp), nil
	case ir.ArrayType:
		i, err := childIndex(parent, last, true)
		if err != nil {
			return nil, err
		}
		return doc.Setting(parent.Inserting(i, "", v), pp), nil
	default:
		return nil, fmt.Errorf("%w: cannot add into %s", ErrPatch, parent.Type)
	}
}

func remove(doc *ir.Item, tokens []string) (*ir.Item, *ir.Item, error) {
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("%w: cannot remove the document root", ErrPatch)
	}
	ip, err := resolve(doc, tokens)
	if err != nil {
		return nil, nil, err
	}
	pp := ip[:len(ip)-1]
	removed := doc.Item(ip)
	return doc.Setting(doc.Item(pp).Removing(ip[len(ip)-1]), pp), removed, nil
}

// coerce keeps the type of a date or data item replaced by a string that
// reads as one. JSON cannot express those types.
func coerce(old, v *ir.Item) *ir.Item {
	if v.Type != ir.StringType {
		return v
	}
	s := strings.TrimSpace(v.String)
	switch old.Type {
	case ir.DateType:
		if _, err := ir.ParseDate(s); err == nil {
			return v.Converting(ir.DateType)
		}
	case ir.DataType:
		if _, err := base64.StdEncoding.DecodeString(s); err == nil {
			return v.Converting(ir.DataType)
		}
	}
	return v
}

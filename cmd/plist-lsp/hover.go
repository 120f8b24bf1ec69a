package main

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/schema"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(params.TextDocument.URI)
	if doc == nil || doc.item == nil {
		return nil, nil
	}
	path, it := doc.itemAt(params.Position)
	if it == nil {
		return nil, nil
	}
	text := buildHoverText(doc.item, path, it, s.constraintAt(doc.item, path))
	rng := doc.rangeOf(it)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: text,
		},
		Range: &rng,
	}, nil
}

// itemAt returns the innermost item whose element contains pos. On a
// <key> element it returns the value the key names.
func (d *document) itemAt(pos protocol.Position) ([]int, *ir.Item) {
	off := d.offset(pos)
	var (
		best     *ir.Item
		bestPath []int
		bestOff  = -1
	)
	_ = d.item.Walk(func(path []int, _ string, it *ir.Item) (bool, error) {
		start, end := d.positions[it], d.ends[it]
		if start == nil || end == nil || off < start.I || off >= end.I {
			return false, nil
		}
		if start.I > bestOff {
			best, bestPath, bestOff = it, slices.Clone(path), start.I
		}
		return true, nil
	})
	if best == nil || best.Type != ir.DictType {
		return bestPath, best
	}
	region := bestOff
	for i := range best.ChildCount() {
		child := best.Child(i)
		start := d.positions[child]
		if start == nil {
			break
		}
		if start.I <= off {
			if end := d.ends[child]; end != nil {
				region = end.I
			}
			continue
		}
		if k := strings.Index(d.text[region:start.I], "<key"); k >= 0 && region+k <= off {
			return append(bestPath, i), child
		}
		break
	}
	return bestPath, best
}

// constraintAt looks up the manifest constraint for the item at path
// within its innermost payload.
func (s *Server) constraintAt(root *ir.Item, path []int) *schema.Constraint {
	if s.src == nil {
		return nil
	}
	pl, ok := payloadAt(root, path)
	if !ok {
		return nil
	}
	keys := schema.KeysOf(root.Item(pl.path), path[len(pl.path):])
	c, ok := s.src.Lookup(pl.domain, keys)
	if !ok {
		return nil
	}
	return c
}

func buildHoverText(root *ir.Item, path []int, it *ir.Item, c *schema.Constraint) string {
	parts := []string{
		fmt.Sprintf("**Type:** %s", typeName(it)),
		fmt.Sprintf("**Key path:** `%s`", root.PathString(path)),
	}
	if v := valueInfo(it); v != "" {
		parts = append(parts, fmt.Sprintf("**Value:** %s", v))
	}
	if c != nil {
		if c.Title != "" {
			parts = append(parts, fmt.Sprintf("**%s**", c.Title))
		}
		if c.Description != "" {
			parts = append(parts, c.Description)
		}
	}
	return strings.Join(parts, "\n\n")
}

func typeName(it *ir.Item) string {
	switch it.Type {
	case ir.NumberType:
		if it.IsInt() {
			return "integer"
		}
		return "real"
	default:
		return strings.ToLower(it.Type.String())
	}
}

func valueInfo(it *ir.Item) string {
	switch it.Type {
	case ir.ArrayType:
		return fmt.Sprintf("array with %d elements", len(it.Array))
	case ir.DictType:
		return fmt.Sprintf("dict with %d keys", it.Dict.Len())
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(it, buf, encode.EncodeJSON(), encode.EncodeIndent("")); err != nil {
		// non-finite reals have no JSON form
		return fmt.Sprintf("`%g`", it.Float())
	}
	val := strings.TrimSpace(buf.String())
	if len(val) > 50 {
		val = val[:50] + "..."
	}
	return fmt.Sprintf("`%s`", val)
}

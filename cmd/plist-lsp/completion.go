package main

import (
	"context"
	"slices"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/schema"
)

// Completion offers the manifest keys missing from the dict around the
// cursor. While the text does not parse, the last parsed version is used.
func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(params.TextDocument.URI).good()
	if doc == nil || s.src == nil {
		return nil, nil
	}
	path, dict := doc.dictAt(params.Position)
	if dict == nil {
		return nil, nil
	}
	return &protocol.CompletionList{Items: s.keyCompletions(doc.item, path, dict)}, nil
}

// dictAt returns the innermost dict whose element contains pos.
func (d *document) dictAt(pos protocol.Position) ([]int, *ir.Item) {
	off := d.offset(pos)
	var (
		best     *ir.Item
		bestPath []int
	)
	_ = d.item.Walk(func(path []int, _ string, it *ir.Item) (bool, error) {
		if !it.Type.IsCollection() {
			return false, nil
		}
		start, end := d.positions[it], d.ends[it]
		if start == nil || end == nil || off <= start.I || off >= end.I {
			return false, nil
		}
		if it.Type == ir.DictType {
			best, bestPath = it, slices.Clone(path)
		}
		return true, nil
	})
	return bestPath, best
}

func (s *Server) keyCompletions(root *ir.Item, path []int, dict *ir.Item) []protocol.CompletionItem {
	pl, ok := payloadAt(root, path)
	if !ok {
		return nil
	}
	m := s.src.Manifest(pl.domain)
	if m == nil {
		return nil
	}
	prefix := schema.KeysOf(root.Item(pl.path), path[len(pl.path):])
	res := []protocol.CompletionItem{}
	for _, kp := range m.KeyPaths() {
		keys := schema.SplitKeyPath(kp)
		if len(keys) != len(prefix)+1 || !slices.Equal(keys[:len(prefix)], prefix) {
			continue
		}
		key := keys[len(prefix)]
		if key == schema.ElementKey || dict.Dict.ContainsKey(key) {
			continue
		}
		c, _ := m.Constraint(keys)
		item := protocol.CompletionItem{
			Label:      key,
			Kind:       protocol.CompletionItemKindProperty,
			Detail:     strings.ToLower(c.Type.String()),
			InsertText: key,
		}
		if c.Title != "" {
			item.Detail += " " + c.Title
		}
		if c.Description != "" {
			item.Documentation = c.Description
		}
		res = append(res, item)
	}
	return res
}

package main

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"

	"github.com/signadot/plistkit/ir"
)

func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc := s.docs.get(params.TextDocument.URI)
	if doc == nil || doc.item == nil {
		return nil, nil
	}
	syms := doc.symbols(doc.item)
	res := make([]interface{}, len(syms))
	for i := range syms {
		res[i] = syms[i]
	}
	return res, nil
}

// symbols returns one symbol per child of it, named by key or index.
func (d *document) symbols(it *ir.Item) []protocol.DocumentSymbol {
	n := it.ChildCount()
	if n == 0 {
		return nil
	}
	res := make([]protocol.DocumentSymbol, 0, n)
	for i := range n {
		child := it.Child(i)
		name := fmt.Sprintf("[%d]", i)
		if it.Type == ir.DictType {
			name = it.Key(i)
		}
		rng := d.rangeOf(child)
		res = append(res, protocol.DocumentSymbol{
			Name:           name,
			Detail:         typeName(child),
			Kind:           symbolKind(child.Type),
			Range:          rng,
			SelectionRange: rng,
			Children:       d.symbols(child),
		})
	}
	return res
}

func symbolKind(t ir.Type) protocol.SymbolKind {
	switch t {
	case ir.ArrayType:
		return protocol.SymbolKindArray
	case ir.DictType:
		return protocol.SymbolKindObject
	case ir.BoolType:
		return protocol.SymbolKindBoolean
	case ir.NumberType:
		return protocol.SymbolKindNumber
	case ir.StringType:
		return protocol.SymbolKindString
	default:
		return protocol.SymbolKindField
	}
}

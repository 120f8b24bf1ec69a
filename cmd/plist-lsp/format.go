package main

import (
	"bytes"
	"context"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/signadot/plistkit/encode"
)

// Formatting replaces the whole document with its canonical XML encoding.
func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(params.TextDocument.URI)
	if doc == nil || doc.item == nil {
		return nil, nil
	}
	return doc.formatEdits(indentOf(params.Options))
}

func (d *document) formatEdits(indent string) ([]protocol.TextEdit, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(d.item, buf, encode.EncodeXML(), encode.EncodeIndent(indent)); err != nil {
		return nil, err
	}
	if buf.String() == d.text {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: d.position(0),
			End:   d.position(len(d.text)),
		},
		NewText: buf.String(),
	}}, nil
}

func indentOf(o protocol.FormattingOptions) string {
	if !o.InsertSpaces {
		return "\t"
	}
	return strings.Repeat(" ", int(max(o.TabSize, 1)))
}

package main

import (
	"context"
	"errors"
	"slices"
	"sync"
	"unicode/utf16"

	"go.lsp.dev/protocol"

	"github.com/signadot/plistkit/debug"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/parse"
	"github.com/signadot/plistkit/schema"
	"github.com/signadot/plistkit/token"
)

// document is the last parsed state of an open text document. item is nil
// when the text does not parse, with err saying why.
type document struct {
	uri       protocol.DocumentURI
	version   int32
	text      string
	lines     *token.PosDoc
	item      *ir.Item
	positions map[*ir.Item]*token.Pos
	ends      map[*ir.Item]*token.Pos
	err       error

	// lastGood is the latest parsed version when this one failed.
	lastGood *document
}

func (d *document) good() *document {
	if d == nil || d.item != nil {
		return d
	}
	return d.lastGood
}

func newDocument(uri protocol.DocumentURI, version int32, text string) *document {
	doc := &document{
		uri:       uri,
		version:   version,
		text:      text,
		lines:     token.NewPosDoc([]byte(text)),
		positions: map[*ir.Item]*token.Pos{},
		ends:      map[*ir.Item]*token.Pos{},
	}
	doc.item, doc.err = parse.Parse([]byte(text),
		parse.ParseXML(), parse.ParsePositions(doc.positions), parse.ParseEnds(doc.ends))
	if debug.LSP() {
		debug.Logf("lsp: parsed %s v%d err=%v\n", uri, version, doc.err)
	}
	return doc
}

type documentStore struct {
	mu   sync.Mutex
	docs map[protocol.DocumentURI]*document
}

func (s *documentStore) get(uri protocol.DocumentURI) *document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[uri]
}

func (s *documentStore) put(doc *document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.uri] = doc
}

func (s *documentStore) remove(uri protocol.DocumentURI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	td := params.TextDocument
	doc := newDocument(td.URI, td.Version, td.Text)
	s.docs.put(doc)
	return s.publish(ctx, doc)
}

// DidChange expects full document sync: the last change carries the whole
// text.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	n := len(params.ContentChanges)
	if n == 0 {
		return nil
	}
	uri := params.TextDocument.URI
	doc := newDocument(uri, params.TextDocument.Version, params.ContentChanges[n-1].Text)
	if doc.item == nil {
		doc.lastGood = s.docs.get(uri).good()
	}
	s.docs.put(doc)
	return s.publish(ctx, doc)
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.docs.remove(uri)
	if s.client == nil {
		return nil
	}
	return s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
}

func (s *Server) publish(ctx context.Context, doc *document) error {
	if s.client == nil {
		return nil
	}
	return s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.uri,
		Version:     uint32(max(doc.version, 0)),
		Diagnostics: s.diagnostics(doc),
	})
}

// diagnostics reports the parse error of doc, or the manifest violations
// of each payload in it.
func (s *Server) diagnostics(doc *document) []protocol.Diagnostic {
	res := []protocol.Diagnostic{}
	if doc.err != nil {
		rng := protocol.Range{}
		msg := doc.err.Error()
		var pe *parse.PosError
		if errors.As(doc.err, &pe) {
			rng = doc.lineRange(pe.Pos.I)
			msg = pe.Msg
		}
		return append(res, protocol.Diagnostic{
			Range:    rng,
			Severity: protocol.DiagnosticSeverityError,
			Source:   lsName,
			Message:  msg,
		})
	}
	for _, v := range validateDoc(s.src, doc.item) {
		it := doc.item.Item(v.Path)
		rng := protocol.Range{}
		if pos := doc.positions[it]; pos != nil {
			rng = doc.lineRange(pos.I)
		}
		res = append(res, protocol.Diagnostic{
			Range:    rng,
			Severity: protocol.DiagnosticSeverityError,
			Source:   lsName,
			Message:  doc.item.PathString(v.Path) + ": " + v.Err.Error(),
		})
	}
	return res
}

// lineRange spans from offset off to the end of its line.
func (d *document) lineRange(off int) protocol.Range {
	line, _ := d.lines.LineCol(off)
	end := d.lines.Offset(line, len(d.text))
	return protocol.Range{
		Start: d.position(off),
		End:   d.position(max(end, off)),
	}
}

func (d *document) rangeOf(it *ir.Item) protocol.Range {
	start, end := d.positions[it], d.ends[it]
	if start == nil || end == nil {
		return protocol.Range{}
	}
	return protocol.Range{
		Start: d.position(start.I),
		End:   d.position(end.I),
	}
}

// position converts a byte offset into a position whose character counts
// UTF-16 code units.
func (d *document) position(off int) protocol.Position {
	off = min(max(off, 0), len(d.text))
	line, col := d.lines.LineCol(off)
	n := 0
	for _, r := range d.text[off-col : off] {
		n += utf16.RuneLen(r)
	}
	return protocol.Position{Line: uint32(line), Character: uint32(n)}
}

// offset is the inverse of position. Characters past the end of a line
// clamp to the line end.
func (d *document) offset(pos protocol.Position) int {
	start := d.lines.Offset(int(pos.Line), 0)
	end := d.lines.Offset(int(pos.Line), len(d.text))
	n := 0
	for i, r := range d.text[start:end] {
		if n >= int(pos.Character) {
			return start + i
		}
		n += utf16.RuneLen(r)
	}
	return end
}

// payload is a dict naming its preference domain with PayloadType.
type payload struct {
	path   []int
	domain string
}

// payloads returns the root when it names a domain and each dict of the
// root's PayloadContent array that does.
func payloads(root *ir.Item) []payload {
	var res []payload
	if root.Type != ir.DictType {
		return nil
	}
	if d := payloadType(root); d != "" {
		res = append(res, payload{path: []int{}, domain: d})
	}
	i := root.Dict.IndexOf("PayloadContent")
	if i < 0 {
		return res
	}
	content := root.Child(i)
	if content.Type != ir.ArrayType {
		return res
	}
	for j, el := range content.Array {
		if d := payloadType(el); d != "" {
			res = append(res, payload{path: []int{i, j}, domain: d})
		}
	}
	return res
}

func payloadType(it *ir.Item) string {
	if it.Type != ir.DictType {
		return ""
	}
	v := it.Dict.Get("PayloadType")
	if v == nil || v.Type != ir.StringType {
		return ""
	}
	return v.String
}

// payloadAt returns the innermost payload containing index path p.
func payloadAt(root *ir.Item, p []int) (payload, bool) {
	var (
		res   payload
		found bool
	)
	for _, pl := range payloads(root) {
		if len(pl.path) <= len(p) && slices.Equal(pl.path, p[:len(pl.path)]) {
			if !found || len(pl.path) > len(res.path) {
				res, found = pl, true
			}
		}
	}
	return res, found
}

// validateDoc validates every payload with a registered manifest. Paths in
// the result are relative to root.
func validateDoc(src manifests, root *ir.Item) []schema.Violation {
	var res []schema.Violation
	if src == nil {
		return nil
	}
	for _, pl := range payloads(root) {
		if src.Manifest(pl.domain) == nil {
			continue
		}
		for _, v := range schema.Validate(src, pl.domain, root.Item(pl.path)) {
			v.Path = append(slices.Clone(pl.path), v.Path...)
			res = append(res, v)
		}
	}
	return res
}

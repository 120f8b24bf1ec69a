package main

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"

	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/schema"
)

const wifiDoc = `<plist>
<dict>
	<key>PayloadType</key>
	<string>com.example.wifi</string>
	<key>SSID_STR</key>
	<integer>3</integer>
</dict>
</plist>
`

const docURI = protocol.DocumentURI("file:///tmp/wifi.plist")

func testServer(t *testing.T) *Server {
	t.Helper()
	m := schema.NewManifest("com.example.wifi")
	if err := m.Add([]string{"SSID_STR"}, &schema.Constraint{Type: ir.StringType, Title: "SSID"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Add([]string{"AutoJoin"}, &schema.Constraint{Type: ir.BoolType, Description: "Join automatically."}); err != nil {
		t.Fatal(err)
	}
	r := schema.NewRegistry()
	if err := r.Register(m); err != nil {
		t.Fatal(err)
	}
	return newServer(r)
}

func open(t *testing.T, s *Server, text string) *document {
	t.Helper()
	err := s.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: docURI, Version: 1, Text: text},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s.docs.get(docURI)
}

func positionParams(line, col uint32) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
		Position:     protocol.Position{Line: line, Character: col},
	}
}

func TestItemAt(t *testing.T) {
	doc := open(t, testServer(t), wifiDoc)
	tests := []struct {
		line, col uint32
		path      []int
	}{
		{5, 3, []int{1}},
		{4, 7, []int{1}},
		{2, 3, []int{0}},
		{3, 10, []int{0}},
		{1, 2, []int{}},
	}
	for _, tc := range tests {
		path, it := doc.itemAt(protocol.Position{Line: tc.line, Character: tc.col})
		if it == nil {
			t.Errorf("%d:%d: no item", tc.line, tc.col)
			continue
		}
		if diff := cmp.Diff(tc.path, path); diff != "" {
			t.Errorf("%d:%d: path (-want +got):\n%s", tc.line, tc.col, diff)
		}
	}
	if _, it := doc.itemAt(protocol.Position{Line: 7, Character: 1}); it != nil {
		t.Errorf("got item outside the root value: %v", it)
	}
}

func TestHover(t *testing.T) {
	s := testServer(t)
	open(t, s, wifiDoc)
	h, err := s.Hover(context.Background(), &protocol.HoverParams{TextDocumentPositionParams: positionParams(5, 3)})
	if err != nil {
		t.Fatal(err)
	}
	if h == nil {
		t.Fatal("no hover")
	}
	want := "**Type:** integer\n\n**Key path:** `$.SSID_STR`\n\n**Value:** `3`\n\n**SSID**"
	if diff := cmp.Diff(want, h.Contents.Value); diff != "" {
		t.Errorf("hover (-want +got):\n%s", diff)
	}
	if h.Range == nil || h.Range.Start != (protocol.Position{Line: 5, Character: 1}) {
		t.Errorf("got range %+v", h.Range)
	}
}

func TestDiagnostics(t *testing.T) {
	s := testServer(t)
	doc := open(t, s, wifiDoc)
	diags := s.diagnostics(doc)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics: %+v", len(diags), diags)
	}
	if !strings.HasPrefix(diags[0].Message, "$.SSID_STR: ") {
		t.Errorf("got message %q", diags[0].Message)
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 5, Character: 1},
		End:   protocol.Position{Line: 5, Character: 21},
	}
	if diff := cmp.Diff(want, diags[0].Range); diff != "" {
		t.Errorf("range (-want +got):\n%s", diff)
	}

	doc = open(t, s, "<plist>\n<dict>\n<key>a</key>\n<set/>\n</dict>\n</plist>\n")
	diags = s.diagnostics(doc)
	if len(diags) != 1 || diags[0].Severity != protocol.DiagnosticSeverityError {
		t.Fatalf("got diagnostics %+v", diags)
	}
	if diags[0].Message != "unknown element <set>" || diags[0].Range.Start.Line != 3 {
		t.Errorf("got %q at %+v", diags[0].Message, diags[0].Range)
	}
}

func TestPayloads(t *testing.T) {
	root := ir.FromKeyVals([]ir.Pair{
		{Key: "PayloadType", Value: ir.FromString("Configuration")},
		{Key: "PayloadContent", Value: ir.FromSlice([]*ir.Item{
			ir.FromKeyVals([]ir.Pair{{Key: "PayloadType", Value: ir.FromString("com.example.wifi")}}),
			ir.FromString("x"),
		})},
	})
	pls := payloads(root)
	if len(pls) != 2 || pls[1].domain != "com.example.wifi" {
		t.Fatalf("got payloads %+v", pls)
	}
	pl, ok := payloadAt(root, []int{1, 0, 0})
	if !ok {
		t.Fatal("no payload")
	}
	if diff := cmp.Diff([]int{1, 0}, pl.path); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
	if pl, _ := payloadAt(root, []int{1, 1}); pl.domain != "Configuration" {
		t.Errorf("got domain %q", pl.domain)
	}
}

func TestFormatting(t *testing.T) {
	s := testServer(t)
	doc := open(t, s, "<plist><dict><key>a</key><true/></dict></plist>")
	edits, err := doc.formatEdits("\t")
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 1 {
		t.Fatalf("got %d edits", len(edits))
	}
	if edits[0].Range.End != (protocol.Position{Line: 0, Character: uint32(len(doc.text))}) {
		t.Errorf("edit does not cover the document: %+v", edits[0].Range)
	}
	formatted := open(t, s, edits[0].NewText)
	if !formatted.item.Equal(doc.item) {
		t.Errorf("formatting changed the value")
	}
	if edits, err := formatted.formatEdits("\t"); err != nil || len(edits) != 0 {
		t.Errorf("formatting is not stable: %v %v", edits, err)
	}
}

func TestDocumentSymbols(t *testing.T) {
	doc := open(t, testServer(t), wifiDoc)
	syms := doc.symbols(doc.item)
	var names []string
	for _, s := range syms {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"PayloadType", "SSID_STR"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if syms[1].Kind != protocol.SymbolKindNumber || syms[1].Detail != "integer" {
		t.Errorf("got %+v", syms[1])
	}
	if syms[1].Range.Start.Line != 5 || syms[1].Range.End.Line != 5 {
		t.Errorf("got range %+v", syms[1].Range)
	}
}

func TestCompletion(t *testing.T) {
	s := testServer(t)
	open(t, s, wifiDoc)
	params := &protocol.CompletionParams{TextDocumentPositionParams: positionParams(6, 0)}
	list, err := s.Completion(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	if list == nil || len(list.Items) != 1 || list.Items[0].Label != "AutoJoin" {
		t.Fatalf("got completions %+v", list)
	}
	if list.Items[0].Documentation != "Join automatically." {
		t.Errorf("got documentation %v", list.Items[0].Documentation)
	}

	broken := strings.Replace(wifiDoc, "</dict>", "<key>", 1)
	err = s.DidChange(context.Background(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: docURI},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: broken}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.docs.get(docURI).item != nil {
		t.Fatal("broken document parsed")
	}
	list, err = s.Completion(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	if list == nil || len(list.Items) != 1 {
		t.Errorf("no completions from the last good version: %+v", list)
	}
}

func TestUTF16Positions(t *testing.T) {
	text := "<plist>\n<array>\n\t<string>é😀</string>\n</array>\n</plist>\n"
	doc := open(t, testServer(t), text)
	if doc.item == nil {
		t.Fatal(doc.err)
	}
	got := doc.rangeOf(doc.item.Array[0])
	want := protocol.Range{
		Start: protocol.Position{Line: 2, Character: 1},
		End:   protocol.Position{Line: 2, Character: 21},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("range (-want +got):\n%s", diff)
	}
	end := strings.Index(text, "</string>") + len("</string>")
	if off := doc.offset(got.End); off != end {
		t.Errorf("offset %d, want %d", off, end)
	}
	if off := doc.offset(protocol.Position{Line: 2, Character: 99}); off != end {
		t.Errorf("past line end: offset %d, want %d", off, end)
	}
}

package main

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"
)

const (
	testURI = protocol.DocumentURI("file:///w.wrl")
	testDoc = `#VRML V2.0 utf8
DEF S Shape { }
Transform { children USE S }
Group { children [ USE S USE Q ] }
`
)

func openTestDoc(t *testing.T) *Server {
	t.Helper()
	s := NewServer()
	err := s.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, Version: 1, Text: testDoc},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func at(line, col uint32) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Position:     protocol.Position{Line: line, Character: col},
	}
}

func rng(line, col, n uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: col},
		End:   protocol.Position{Line: line, Character: col + n},
	}
}

func TestDiagnostics(t *testing.T) {
	s := openTestDoc(t)
	diags := validateDocument(s.docs.get(string(testURI)))
	if len(diags) != 1 {
		t.Fatalf("got %v", diags)
	}
	d := diags[0]
	if d.Severity != protocol.DiagnosticSeverityWarning || d.Range != rng(3, 29, 1) || !strings.Contains(d.Message, "unresolved") {
		t.Errorf("got %+v", d)
	}

	doc := s.docs.put("file:///bad.wrl", "#VRML V2.0 utf8\nGroup {\n", 1)
	diags = validateDocument(doc)
	if len(diags) != 1 || diags[0].Severity != protocol.DiagnosticSeverityError {
		t.Errorf("got %v", diags)
	}
	doc = s.docs.put("file:///bad.wrl", "Group { }", 2)
	diags = validateDocument(doc)
	if len(diags) != 1 || diags[0].Range != rng(0, 0, 1) {
		t.Errorf("got %v", diags)
	}
}

func TestDefinitionAndReferences(t *testing.T) {
	s := openTestDoc(t)
	ctx := context.Background()
	def := protocol.Location{URI: testURI, Range: rng(1, 4, 1)}

	locs, err := s.Definition(ctx, &protocol.DefinitionParams{TextDocumentPositionParams: at(2, 25)})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]protocol.Location{def}, locs); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	locs, _ = s.Definition(ctx, &protocol.DefinitionParams{TextDocumentPositionParams: at(3, 29)})
	if len(locs) != 0 {
		t.Errorf("unresolved USE has definition %v", locs)
	}

	locs, err = s.References(ctx, &protocol.ReferenceParams{
		TextDocumentPositionParams: at(1, 4),
		Context:                    protocol.ReferenceContext{IncludeDeclaration: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []protocol.Location{
		def,
		{URI: testURI, Range: rng(2, 25, 1)},
		{URI: testURI, Range: rng(3, 23, 1)},
	}
	if diff := cmp.Diff(want, locs); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestHover(t *testing.T) {
	s := openTestDoc(t)
	ctx := context.Background()
	h, err := s.Hover(ctx, &protocol.HoverParams{TextDocumentPositionParams: at(1, 8)})
	if err != nil || h == nil {
		t.Fatalf("got %v %v", h, err)
	}
	for _, want := range []string{"**Shape** `S`", "**Owner:** Base", "**Used by:** 2"} {
		if !strings.Contains(h.Contents.Value, want) {
			t.Errorf("missing %q in %q", want, h.Contents.Value)
		}
	}
	h, _ = s.Hover(ctx, &protocol.HoverParams{TextDocumentPositionParams: at(3, 29)})
	if h == nil || !strings.Contains(h.Contents.Value, "unresolved") {
		t.Errorf("got %v", h)
	}
	if h, _ := s.Hover(ctx, &protocol.HoverParams{TextDocumentPositionParams: at(0, 3)}); h != nil {
		t.Errorf("got %v", h)
	}
}

func TestSymbolsAndCompletion(t *testing.T) {
	s := openTestDoc(t)
	ctx := context.Background()
	syms, err := s.DocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	if err != nil || len(syms) != 1 {
		t.Fatalf("got %v %v", syms, err)
	}
	if sym := syms[0].(protocol.DocumentSymbol); sym.Name != "S" || sym.Detail != "Shape" {
		t.Errorf("got %+v", sym)
	}

	list, err := s.Completion(ctx, &protocol.CompletionParams{TextDocumentPositionParams: at(3, 23)})
	if err != nil || len(list.Items) != 1 || list.Items[0].Label != "S" {
		t.Fatalf("got %v %v", list, err)
	}
	list, _ = s.Completion(ctx, &protocol.CompletionParams{TextDocumentPositionParams: at(2, 0)})
	var labels []string
	for _, it := range list.Items {
		labels = append(labels, it.Label)
	}
	if !strings.Contains(strings.Join(labels, " "), "Transform") || strings.Contains(strings.Join(labels, " "), "Base") {
		t.Errorf("got %v", labels)
	}
}

func TestAfterUse(t *testing.T) {
	for _, tt := range []struct {
		text string
		want bool
	}{
		{"children USE ", true},
		{"children USE Fo", true},
		{"children US", false},
		{"", false},
		{"USE A ", false},
	} {
		if got := afterUse(tt.text, 0, len(tt.text)); got != tt.want {
			t.Errorf("%q: got %t", tt.text, got)
		}
	}
}

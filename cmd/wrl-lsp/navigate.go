package main

import (
	"context"
	"sort"
	"strings"

	"github.com/signadot/wrl2/scene"
	"go.lsp.dev/protocol"
)

// defLocation is where h is named, or where its statement starts.
func defLocation(doc *document, h scene.Handle) (protocol.Location, bool) {
	res := doc.res
	loc := protocol.Location{URI: protocol.DocumentURI(doc.uri)}
	if p := res.Names[h]; p != nil {
		loc.Range = wordRange(p, len(res.Graph.Name(h)))
		return loc, true
	}
	if p := res.Positions[h]; p != nil {
		loc.Range = wordRange(p, len(res.Graph.Kind(h).String()))
		return loc, true
	}
	return loc, false
}

func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	doc, sym := s.symbolAt(string(params.TextDocument.URI), params.Position)
	if sym == nil || sym.node.IsZero() {
		return nil, nil
	}
	if loc, ok := defLocation(doc, sym.node); ok {
		return []protocol.Location{loc}, nil
	}
	return nil, nil
}

func (s *Server) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	doc, sym := s.symbolAt(string(params.TextDocument.URI), params.Position)
	if sym == nil || sym.node.IsZero() {
		return nil, nil
	}
	var res []protocol.Location
	if params.Context.IncludeDeclaration {
		if loc, ok := defLocation(doc, sym.node); ok {
			res = append(res, loc)
		}
	}
	for _, u := range doc.res.Uses {
		if u.Target != sym.node {
			continue
		}
		res = append(res, protocol.Location{
			URI:   protocol.DocumentURI(doc.uri),
			Range: wordRange(u.Pos, len(u.Name)),
		})
	}
	return res, nil
}

// DocumentSymbol lists DEF names in document order.
func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.res == nil {
		return nil, nil
	}
	g := doc.res.Graph
	type named struct {
		off int
		sym protocol.DocumentSymbol
	}
	var syms []named
	for h, p := range doc.res.Names {
		if !g.Valid(h) {
			continue
		}
		r := wordRange(p, len(g.Name(h)))
		syms = append(syms, named{off: p.I, sym: protocol.DocumentSymbol{
			Name:           g.Name(h),
			Detail:         g.Kind(h).String(),
			Kind:           protocol.SymbolKindObject,
			Range:          r,
			SelectionRange: r,
		}})
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].off < syms[j].off })
	res := make([]interface{}, len(syms))
	for i := range syms {
		res[i] = syms[i].sym
	}
	return res, nil
}

// Completion offers DEF names after USE and node types elsewhere.
func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	list := &protocol.CompletionList{}
	if afterUse(doc.content, int(params.Position.Line), int(params.Position.Character)) {
		if doc.res == nil {
			return list, nil
		}
		g := doc.res.Graph
		seen := map[string]bool{}
		g.Walk(doc.res.Root, func(h scene.Handle, _ int) bool {
			name := g.Name(h)
			if name == "" || seen[name] {
				return true
			}
			seen[name] = true
			list.Items = append(list.Items, protocol.CompletionItem{
				Label:  name,
				Kind:   protocol.CompletionItemKindVariable,
				Detail: g.Kind(h).String(),
			})
			return true
		})
		return list, nil
	}
	for _, k := range scene.Kinds() {
		if k == scene.BaseKind || !k.Supported() {
			continue
		}
		list.Items = append(list.Items, protocol.CompletionItem{
			Label: k.String(),
			Kind:  protocol.CompletionItemKindClass,
		})
	}
	return list, nil
}

// afterUse reports whether the word before the one being typed at
// line, col is USE.
func afterUse(content string, line, col int) bool {
	lines := strings.Split(content, "\n")
	if line >= len(lines) {
		return false
	}
	text := lines[line]
	if col < len(text) {
		text = text[:col]
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	if strings.HasSuffix(text, " ") || strings.HasSuffix(text, "\t") {
		return words[len(words)-1] == "USE"
	}
	return len(words) >= 2 && words[len(words)-2] == "USE"
}

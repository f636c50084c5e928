package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/signadot/wrl2/parse"
	"github.com/signadot/wrl2/scene"
	"github.com/signadot/wrl2/token"
	"go.lsp.dev/protocol"
)

// symbol is what sits under a cursor: a USE site, a DEF name or a node
// statement.
type symbol struct {
	node scene.Handle
	use  *parse.Use
	def  bool
}

func (s *Server) symbolAt(uri string, pos protocol.Position) (*document, *symbol) {
	doc := s.docs.get(uri)
	if doc == nil || doc.res == nil || doc.res.Doc == nil {
		return nil, nil
	}
	res := doc.res
	g := res.Graph
	off := res.Doc.Offset(int(pos.Line), int(pos.Character))
	hit := func(p *token.Pos, n int) bool {
		return p != nil && off >= p.I && off <= p.I+n
	}
	for _, u := range res.Uses {
		if hit(u.Pos, len(u.Name)) {
			return doc, &symbol{node: u.Target, use: u}
		}
	}
	for h, p := range res.Names {
		if g.Valid(h) && hit(p, len(g.Name(h))) {
			return doc, &symbol{node: h, def: true}
		}
	}
	if h := findNodeAtPosition(res, int(pos.Line), int(pos.Character)); !h.IsZero() {
		return doc, &symbol{node: h}
	}
	return doc, nil
}

// findNodeAtPosition returns the node whose statement starts on line
// closest before col, or after it if none starts before.
func findNodeAtPosition(res *parse.Result, line, col int) scene.Handle {
	var (
		best    scene.Handle
		bestCol int
	)
	for h, p := range res.Positions {
		if !res.Graph.Valid(h) {
			continue
		}
		pLine, pCol := p.LineCol()
		if pLine != line {
			continue
		}
		if best.IsZero() || better(pCol, bestCol, col) {
			best, bestCol = h, pCol
		}
	}
	return best
}

func better(c, prev, col int) bool {
	if (c <= col) != (prev <= col) {
		return c <= col
	}
	return abs(c-col) < abs(prev-col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, sym := s.symbolAt(string(params.TextDocument.URI), params.Position)
	if sym == nil {
		return nil, nil
	}
	var hoverText string
	if sym.use != nil && sym.node.IsZero() {
		hoverText = fmt.Sprintf("**USE** `%s`: unresolved", sym.use.Name)
	} else {
		hoverText = buildHoverText(doc.res.Graph, sym.node)
	}
	if hoverText == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
	}, nil
}

func buildHoverText(g *scene.Graph, h scene.Handle) string {
	v, err := g.View(h)
	if err != nil {
		return ""
	}
	var parts []string

	head := fmt.Sprintf("**%s**", v.Kind)
	if v.Name != "" {
		head += fmt.Sprintf(" `%s`", v.Name)
	}
	parts = append(parts, head)

	if !v.Parent.IsZero() {
		parts = append(parts, fmt.Sprintf("**Owner:** %s", describe(g, v.Parent)))
	}
	children, refs := 0, 0
	for _, l := range v.Links {
		if l.Ref {
			refs++
		} else {
			children++
		}
	}
	parts = append(parts, fmt.Sprintf("**Owns:** %d, **Uses:** %d, **Used by:** %d", children, refs, len(v.BackRefs)))
	if len(v.Fields) != 0 {
		fields := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			val := f.String()
			if len(val) > 50 {
				val = val[:50] + "..."
			}
			fields[i] = fmt.Sprintf("- %s `%s`", f.Name, val)
		}
		parts = append(parts, strings.Join(fields, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func describe(g *scene.Graph, h scene.Handle) string {
	res := g.Kind(h).String()
	if name := g.Name(h); name != "" {
		res += " `" + name + "`"
	}
	return res
}

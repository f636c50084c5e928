package encode

import (
	"fmt"
	"slices"

	"github.com/signadot/wrl2/scene"
	"github.com/signadot/wrl2/token"
)

// Node is a plain copy of a scene subtree.  A reference appears as a Node
// with only Field and Use set.
type Node struct {
	Field    string            `json:"field,omitempty" yaml:"field,omitempty"`
	Kind     string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Name     string            `json:"name,omitempty" yaml:"name,omitempty"`
	Use      string            `json:"use,omitempty" yaml:"use,omitempty"`
	Fields   map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Children []*Node           `json:"children,omitempty" yaml:"children,omitempty"`
}

// Build copies the subtree of g rooted at h.  Unnamed reference targets
// get generated names, as in VRML output.
func Build(g *scene.Graph, h scene.Handle) (*Node, error) {
	return build(g, h, genNames(g, h))
}

func build(g *scene.Graph, h scene.Handle, names map[scene.Handle]string) (*Node, error) {
	v, err := g.View(h)
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: v.Kind.String(), Name: v.Name}
	if n.Name == "" {
		n.Name = names[h]
	}
	if len(v.Fields) != 0 {
		n.Fields = make(map[string]string, len(v.Fields))
		for _, f := range v.Fields {
			n.Fields[f.Name] = f.String()
		}
	}
	for _, l := range v.Links {
		if l.Ref {
			use := g.Name(l.Target)
			if use == "" {
				use = names[l.Target]
			}
			n.Children = append(n.Children, &Node{Field: l.Field, Use: use})
			continue
		}
		c, err := build(g, l.Target, names)
		if err != nil {
			return nil, err
		}
		c.Field = l.Field
		n.Children = append(n.Children, c)
	}
	return n, nil
}

func parseField(name, text string) (scene.Field, error) {
	f := scene.Field{Name: name}
	toks, err := token.Tokenize([]byte(text), token.NoHeader())
	if err != nil {
		return f, err
	}
	if len(toks) >= 2 && toks[0].Type == token.TLSquare && toks[len(toks)-1].Type == token.TRSquare {
		f.List = true
		toks = toks[1 : len(toks)-1]
	}
	for i := range toks {
		if toks[i].Type != token.TWord && toks[i].Type != token.TString {
			return f, fmt.Errorf("%w: field %s: %s", ErrBadNode, name, token.UnexpectedErr(string(toks[i].Bytes), toks[i].Pos))
		}
		f.Values = append(f.Values, string(toks[i].Bytes))
	}
	return f, nil
}

// Graph rebuilds a scene graph from n, the inverse of Build.  Nodes are
// built in document order and each USE resolves from its holder against
// the nodes built so far.  A USE naming a node built later is appended to
// its slot once the whole tree exists.
func (n *Node) Graph(opts ...scene.GraphOption) (*scene.Graph, scene.Handle, error) {
	g := scene.NewGraph(opts...)
	var later []func() error
	var build func(n *Node, parent scene.Handle) (scene.Handle, error)
	build = func(n *Node, parent scene.Handle) (scene.Handle, error) {
		k := scene.KindOf(n.Kind)
		if n.Kind == scene.BaseKind.String() {
			k = scene.BaseKind
		}
		h, err := g.New(k)
		if err != nil {
			return h, fmt.Errorf("%w: %w", ErrBadNode, err)
		}
		if err := g.SetName(h, n.Name); err != nil {
			return h, err
		}
		if !parent.IsZero() {
			if err := g.AddChildField(parent, n.Field, h); err != nil {
				return h, err
			}
		}
		names := make([]string, 0, len(n.Fields))
		for name := range n.Fields {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			f, err := parseField(name, n.Fields[name])
			if err != nil {
				return h, err
			}
			if err := g.SetField(h, f); err != nil {
				return h, err
			}
		}
		for _, c := range n.Children {
			if c.Use == "" {
				if _, err := build(c, h); err != nil {
					return h, err
				}
				continue
			}
			field, use := c.Field, c.Use
			if t := g.Find(h, use, scene.NoHandle); !t.IsZero() {
				if err := g.AddRefField(h, field, t); err != nil {
					return h, err
				}
				continue
			}
			later = append(later, func() error {
				t := g.Find(h, use, scene.NoHandle)
				if t.IsZero() {
					return fmt.Errorf("%w: USE %q", ErrBadNode, use)
				}
				return g.AddRefField(h, field, t)
			})
		}
		return h, nil
	}
	root, err := build(n, scene.NoHandle)
	if err != nil {
		return nil, scene.NoHandle, err
	}
	for _, f := range later {
		if err := f(); err != nil {
			return nil, scene.NoHandle, err
		}
	}
	return g, root, nil
}

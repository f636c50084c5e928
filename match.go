// Package wrl2 selects nodes of a VRML97 scene graph with expr-lang
// expressions.  The graph itself lives in package scene; documents are
// loaded by package parse.
package wrl2

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/wrl2/debug"
	"github.com/signadot/wrl2/scene"
)

var ErrMatch = errors.New("match")

// Env is the environment a match expression sees for one node.
type Env struct {
	Kind     string            `expr:"kind"`
	Name     string            `expr:"name"`
	Parent   string            `expr:"parent"`
	Field    string            `expr:"field"`
	Depth    int               `expr:"depth"`
	Children int               `expr:"children"`
	Refs     int               `expr:"refs"`
	BackRefs int               `expr:"backrefs"`
	Fields   map[string]string `expr:"fields"`
}

// Program is a compiled match expression.
type Program struct {
	src  string
	prog *vm.Program
}

func (p *Program) String() string { return p.src }

// Compile compiles a boolean match expression such as
//
//	kind == "Shape" && backrefs > 0
func Compile(src string) (*Program, error) {
	prog, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMatch, src, err)
	}
	return &Program{src: src, prog: prog}, nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
		expr.Function("supported", func(params ...any) (any, error) {
			return scene.KindOf(params[0].(string)).Supported(), nil
		},
			new(func(string) bool)),
		expr.Function("has", func(params ...any) (any, error) {
			return scene.IsField(scene.KindOf(params[0].(string)), params[1].(string)), nil
		},
			new(func(string, string) bool)),
	}
}

// NodeEnv builds the match environment for h.
func NodeEnv(g *scene.Graph, h scene.Handle) (*Env, error) {
	v, err := g.View(h)
	if err != nil {
		return nil, err
	}
	env := &Env{
		Kind:     v.Kind.String(),
		Name:     v.Name,
		Depth:    len(g.Path(h)) - 1,
		BackRefs: len(v.BackRefs),
		Fields:   make(map[string]string, len(v.Fields)),
	}
	if !v.Parent.IsZero() {
		env.Parent = g.Kind(v.Parent).String()
		for _, l := range g.Links(v.Parent) {
			if !l.Ref && l.Target == h {
				env.Field = l.Field
				break
			}
		}
	}
	for _, l := range v.Links {
		if l.Ref {
			env.Refs++
		} else {
			env.Children++
		}
	}
	for _, f := range v.Fields {
		env.Fields[f.Name] = f.String()
	}
	return env, nil
}

// Match reports whether the node h satisfies p.
func Match(g *scene.Graph, h scene.Handle, p *Program) (bool, error) {
	env, err := NodeEnv(g, h)
	if err != nil {
		return false, err
	}
	out, err := vm.Run(p.prog, env)
	if err != nil {
		return false, fmt.Errorf("%w: %q at %s: %w", ErrMatch, p.src, h, err)
	}
	res, _ := out.(bool)
	if debug.Match() {
		debug.Logf("match %q on %s %s: %t\n", p.src, env.Kind, h, res)
	}
	return res, nil
}

// Select compiles src and returns the nodes under root, root included, for
// which it holds, in document order.
func Select(g *scene.Graph, root scene.Handle, src string) ([]scene.Handle, error) {
	p, err := Compile(src)
	if err != nil {
		return nil, err
	}
	if !g.Valid(root) {
		return nil, fmt.Errorf("%w: %s", scene.ErrStale, root)
	}
	var (
		res  []scene.Handle
		werr error
	)
	g.Walk(root, func(h scene.Handle, _ int) bool {
		if werr != nil {
			return false
		}
		ok, err := Match(g, h, p)
		if err != nil {
			werr = err
			return false
		}
		if ok {
			res = append(res, h)
		}
		return true
	})
	if werr != nil {
		return nil, werr
	}
	return res, nil
}

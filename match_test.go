package wrl2

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/wrl2/parse"
	"github.com/signadot/wrl2/scene"
)

const doc = `#VRML V2.0 utf8
DEF T Transform {
  translation 1 2 3
  children [
    DEF S1 Shape {
      appearance DEF A Appearance { material Material { diffuseColor 1 0 0 } }
      geometry Box { size 2 2 2 }
    }
    DEF S2 Shape { appearance USE A geometry Sphere { } }
  ]
}
Group { }
`

type matchTest struct {
	expr string
	want []string
}

func TestSelect(t *testing.T) {
	res, err := parse.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	g := res.Graph
	tests := []matchTest{
		{expr: `kind == "Shape"`, want: []string{"Shape S1", "Shape S2"}},
		{expr: `backrefs > 0`, want: []string{"Appearance A"}},
		{expr: `refs > 0`, want: []string{"Shape S2"}},
		{expr: `name startsWith "S" && children == 1`, want: []string{"Shape S2"}},
		{expr: `depth == 1`, want: []string{"Transform T", "Group"}},
		{expr: `parent == "Shape" && field == "geometry"`, want: []string{"Box", "Sphere"}},
		{expr: `fields.size == "2 2 2"`, want: []string{"Box"}},
		{expr: `"translation" in fields`, want: []string{"Transform T"}},
		{expr: `has(kind, "children") && children == 0`, want: []string{"Group"}},
		{expr: `!supported("Script") && kind == "Base"`, want: []string{"Base"}},
		{expr: `false`},
	}
	for _, tt := range tests {
		hs, err := Select(g, res.Root, tt.expr)
		if err != nil {
			t.Errorf("%s: %v", tt.expr, err)
			continue
		}
		var got []string
		for _, h := range hs {
			s := g.Kind(h).String()
			if name := g.Name(h); name != "" {
				s += " " + name
			}
			got = append(got, s)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", tt.expr, diff)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`kind +`, `kind`, `nosuch == 1`} {
		if _, err := Compile(src); !errors.Is(err, ErrMatch) {
			t.Errorf("%s: got %v", src, err)
		}
	}
}

func TestMatchStale(t *testing.T) {
	g := scene.NewGraph()
	h, _ := g.New(scene.GroupKind)
	p, err := Compile(`kind == "Group"`)
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := Match(g, h, p); !ok || err != nil {
		t.Fatalf("got %t %v", ok, err)
	}
	g.Destroy(h)
	if _, err := Match(g, h, p); !errors.Is(err, scene.ErrStale) {
		t.Errorf("got %v", err)
	}
	if _, err := Select(g, h, `true`); !errors.Is(err, scene.ErrStale) {
		t.Errorf("got %v", err)
	}
}

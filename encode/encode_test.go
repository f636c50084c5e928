package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/wrl2/format"
	"github.com/signadot/wrl2/parse"
	"github.com/signadot/wrl2/scene"
)

const doc = `#VRML V2.0 utf8
DEF T Transform {
  translation 1 2 3
  children [
    Shape {
      appearance DEF A Appearance { material Material { diffuseColor [ 1 0 0 ] } }
      geometry Box { }
    }
    Shape { appearance USE A }
  ]
}
`

func mustParse(t *testing.T, d string, opts ...parse.ParseOption) *parse.Result {
	t.Helper()
	res, err := parse.Parse([]byte(d), opts...)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("diagnostics: %v", res.Diagnostics)
	}
	return res
}

func TestTree(t *testing.T) {
	res := mustParse(t, doc)
	got := MustString(res.Graph, res.Root)
	want := strings.Join([]string{
		"Base",
		"  children: Transform T",
		"    children: Shape",
		"      appearance: Appearance A",
		"        material: Material",
		"      geometry: Box",
		"    children: Shape",
		"      appearance: USE A",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	got = MustString(res.Graph, res.Root, EncodeFields(true), MaxDepth(3))
	want = strings.Join([]string{
		"Base",
		"  children: Transform T",
		"    translation 1 2 3",
		"    children: Shape",
		"    children: Shape",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestTreeColors(t *testing.T) {
	res := mustParse(t, doc)
	c := NewColors()
	c.Map[KindColor] = func(s string, _ ...any) string { return "<" + s + ">" }
	got := MustString(res.Graph, res.Root, EncodeColors(c))
	if !strings.HasPrefix(got, "<Base>\n") || !strings.Contains(got, "<Transform>") {
		t.Errorf("got %q", got)
	}
}

func TestVRMLRoundTrip(t *testing.T) {
	res := mustParse(t, doc)
	vrml := MustString(res.Graph, res.Root, EncodeFormat(format.VRMLFormat))
	if !strings.HasPrefix(vrml, "#VRML V2.0 utf8\n") {
		t.Fatalf("no header:\n%s", vrml)
	}
	back := mustParse(t, vrml)
	opts := []EncodeOption{EncodeFields(true)}
	want := MustString(res.Graph, res.Root, opts...)
	got := MustString(back.Graph, back.Root, opts...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s\nfrom:\n%s", diff, vrml)
	}
	if again := MustString(back.Graph, back.Root, EncodeFormat(format.VRMLFormat)); again != vrml {
		t.Errorf("not stable:\n%s\n--\n%s", vrml, again)
	}
}

func TestVRMLGeneratedNames(t *testing.T) {
	g := scene.NewGraph()
	root, _ := g.New(scene.BaseKind)
	grp, _ := g.New(scene.GroupKind)
	s1, _ := g.New(scene.ShapeKind)
	s2, _ := g.New(scene.ShapeKind)
	app, _ := g.New(scene.AppearanceKind)
	for _, err := range []error{
		g.AddChild(root, grp),
		g.AddChild(grp, s1),
		g.AddChild(grp, s2),
		g.AddChild(s1, app),
		g.AddRef(s2, app),
		g.SetName(grp, "_N1"),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	vrml := MustString(g, root, EncodeFormat(format.VRMLFormat))
	if !strings.Contains(vrml, "DEF _N2 Appearance") || !strings.Contains(vrml, "USE _N2") {
		t.Fatalf("got\n%s", vrml)
	}
	back := mustParse(t, vrml)
	shapes := back.Graph.Children(back.Graph.Children(back.Root)[0])
	if len(shapes) != 2 || len(back.Graph.Refs(shapes[1])) != 1 {
		t.Errorf("got\n%s", MustString(back.Graph, back.Root))
	}
}

func TestVRMLNode(t *testing.T) {
	res := mustParse(t, doc)
	tr := res.Graph.Find(res.Root, "T", scene.NoHandle)
	got := MustString(res.Graph, res.Graph.Children(tr)[1], EncodeFormat(format.VRMLFormat))
	want := "#VRML V2.0 utf8\nShape {\n  appearance USE A\n}"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestJSON(t *testing.T) {
	res := mustParse(t, doc)
	buf := bytes.NewBuffer(nil)
	if err := Encode(res.Graph, res.Root, buf, EncodeFormat(format.JSONFormat)); err != nil {
		t.Fatal(err)
	}
	var n Node
	if err := json.Unmarshal(buf.Bytes(), &n); err != nil {
		t.Fatal(err)
	}
	want := &Node{
		Kind: "Base",
		Children: []*Node{{
			Field:  "children",
			Kind:   "Transform",
			Name:   "T",
			Fields: map[string]string{"translation": "1 2 3"},
			Children: []*Node{
				{
					Field: "children",
					Kind:  "Shape",
					Children: []*Node{
						{
							Field: "appearance",
							Kind:  "Appearance",
							Name:  "A",
							Children: []*Node{{
								Field:  "material",
								Kind:   "Material",
								Fields: map[string]string{"diffuseColor": "[ 1 0 0 ]"},
							}},
						},
						{Field: "geometry", Kind: "Box"},
					},
				},
				{
					Field:    "children",
					Kind:     "Shape",
					Children: []*Node{{Field: "appearance", Use: "A"}},
				},
			},
		}},
	}
	if diff := cmp.Diff(want, &n); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestYAML(t *testing.T) {
	res := mustParse(t, doc)
	got := MustString(res.Graph, res.Root, EncodeFormat(format.YAMLFormat))
	for _, want := range []string{"kind: Base", "kind: Transform", "name: T", "use: A", "translation: 1 2 3"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}

func TestEncodeStale(t *testing.T) {
	g := scene.NewGraph()
	h, _ := g.New(scene.GroupKind)
	g.Destroy(h)
	if err := Encode(g, h, &bytes.Buffer{}); err == nil {
		t.Error("encoded a destroyed node")
	}
}

func TestNodeGraph(t *testing.T) {
	res := mustParse(t, doc+`Anchor { url [ "a b.wrl" ] description "x" }`)
	n, err := Build(res.Graph, res.Root)
	if err != nil {
		t.Fatal(err)
	}
	g, root, err := n.Graph(scene.Checked(true))
	if err != nil {
		t.Fatal(err)
	}
	back, err := Build(g, root)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(n, back); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	anchor := g.Children(root)[1]
	want := []scene.Field{
		{Name: "description", Values: []string{`"x"`}},
		{Name: "url", Values: []string{`"a b.wrl"`}, List: true},
	}
	if diff := cmp.Diff(want, g.Fields(anchor)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	bad := &Node{Kind: "Base", Children: []*Node{{Field: "children", Use: "nope"}}}
	if _, _, err := bad.Graph(); !errors.Is(err, ErrBadNode) {
		t.Errorf("got %v", err)
	}
	bad = &Node{Kind: "PROTO"}
	if _, _, err := bad.Graph(); !errors.Is(err, scene.ErrBadKind) {
		t.Errorf("got %v", err)
	}
}

func TestNodeGraphUseOrder(t *testing.T) {
	res := mustParse(t, `#VRML V2.0 utf8
DEF A Group { }
Group { children [ USE A DEF A Transform { } ] }
`)
	n, err := Build(res.Graph, res.Root)
	if err != nil {
		t.Fatal(err)
	}
	g, root, err := n.Graph(scene.Checked(true))
	if err != nil {
		t.Fatal(err)
	}
	want := MustString(res.Graph, res.Root)
	if got := MustString(g, root); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	grp := g.Children(root)[1]
	links := g.Links(grp)
	if len(links) != 2 || !links[0].Ref || links[1].Ref {
		t.Fatalf("links %v", links)
	}
	if k := g.Kind(links[0].Target); k != scene.GroupKind {
		t.Errorf("USE A bound to %s", k)
	}
}

func TestNodeGraphUnnamedTarget(t *testing.T) {
	g := scene.NewGraph()
	root, _ := g.New(scene.BaseKind)
	s1, _ := g.New(scene.ShapeKind)
	s2, _ := g.New(scene.ShapeKind)
	app, _ := g.New(scene.AppearanceKind)
	for _, err := range []error{
		g.AddChild(root, s1),
		g.AddChild(root, s2),
		g.AddChild(s1, app),
		g.AddRef(s2, app),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	n, err := Build(g, root)
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Children[1].Children[0].Use; got != "_N1" || n.Children[0].Children[0].Name != "_N1" {
		t.Fatalf("got use %q name %q", got, n.Children[0].Children[0].Name)
	}
	back, broot, err := n.Graph()
	if err != nil {
		t.Fatal(err)
	}
	shapes := back.Children(broot)
	if refs := back.Refs(shapes[1]); len(refs) != 1 || refs[0] != back.Children(shapes[0])[0] {
		t.Errorf("got refs %v", refs)
	}
}

func TestNodeGraphLaterTarget(t *testing.T) {
	n := &Node{Kind: "Base", Children: []*Node{
		{Field: "children", Kind: "Group", Children: []*Node{{Field: "children", Use: "B"}}},
		{Field: "children", Kind: "Group", Name: "B"},
	}}
	g, root, err := n.Graph(scene.Checked(true))
	if err != nil {
		t.Fatal(err)
	}
	groups := g.Children(root)
	if refs := g.Refs(groups[0]); len(refs) != 1 || refs[0] != groups[1] {
		t.Errorf("got refs %v", refs)
	}
}

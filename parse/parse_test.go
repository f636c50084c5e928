package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/wrl2/scene"
	"github.com/signadot/wrl2/token"
)

const hdr = "#VRML V2.0 utf8\n"

func outline(r *Result) []string {
	var res []string
	g := r.Graph
	g.Walk(r.Root, func(h scene.Handle, depth int) bool {
		v, err := g.View(h)
		if err != nil {
			return false
		}
		ind := strings.Repeat("  ", depth)
		line := ind + v.Kind.String()
		if v.Name != "" {
			line += " " + v.Name
		}
		res = append(res, line)
		for _, l := range v.Links {
			if l.Ref {
				res = append(res, ind+"  "+l.Field+" USE "+g.Name(l.Target))
			}
		}
		return true
	})
	return res
}

func diagErrs(r *Result) []error {
	res := make([]error, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		res[i] = d.Err
	}
	return res
}

type parseTest struct {
	in    string
	opts  []ParseOption
	want  []string
	diags []error
}

func TestParse(t *testing.T) {
	tests := []parseTest{
		{
			in: `DEF T Transform {
  translation 1 2 3
  children [
    Shape {
      appearance DEF A Appearance { material Material { diffuseColor 1 0 0 } }
      geometry DEF Box1 Box { size 1 1 1 }
    }
    Shape { appearance USE A geometry USE Box1 }
  ]
}`,
			want: []string{
				"Base",
				"  Transform T",
				"    Shape",
				"      Appearance A",
				"        Material",
				"      Box Box1",
				"    Shape",
				"      appearance USE A",
				"      geometry USE Box1",
			},
		},
		{
			in: `PROTO Foo [ field SFInt32 x 1 ] { Group { children [] } }
EXTERNPROTO Bar [ field SFInt32 y ] "bar.wrl#Bar"
EXTERNPROTO Baz [ ] [ "a.wrl" "b.wrl" ]
Foo { x 2 }
Group { }
ROUTE A.b TO C.d`,
			want: []string{"Base", "  Group"},
		},
		{
			in: `DEF TS TimeSensor { loop TRUE }
Script { url "x.js" field SFInt32 a 1 }
Group { ROUTE TS.fraction_changed TO X.set_fraction }
Shape { geometry USE TS }`,
			want:  []string{"Base", "  Group", "  Shape"},
			diags: []error{ErrUnresolved},
		},
		{
			in:    `Shape { geometry Material { } appearance Appearance { } }`,
			want:  []string{"Base", "  Shape", "    Appearance"},
			diags: []error{scene.ErrRejected},
		},
		{
			in:    `Group { children [ USE X ] } DEF X Group { }`,
			want:  []string{"Base", "  Group", "  Group X"},
			diags: []error{ErrUnresolved},
		},
		{
			in:   `Group { children [ USE X ] } DEF X Group { }`,
			opts: []ParseOption{ForwardRefs(true)},
			want: []string{"Base", "  Group", "    children USE X", "  Group X"},
		},
		{
			in:    `Group { children Frobnicate { a 1 } } Box { size 1 1 1 colour 1 0 0 }`,
			want:  []string{"Base", "  Group"},
			diags: []error{ErrUnknownKind, scene.ErrRejected},
		},
		{
			in:    `Transform { colour 1 0 0 scale 1 1 1 children Shape { } }`,
			want:  []string{"Base", "  Transform", "    Shape"},
			diags: []error{scene.ErrUnknownField},
		},
		{
			in:    `DEF G Group { children [ USE G ] }`,
			want:  []string{"Base", "  Group G"},
			diags: []error{scene.ErrRejected},
		},
		{
			in: `Collision { children [ Shape { } ] proxy Shape { } }
Switch { whichChoice 0 choice [ Group { } NULL ] }
LOD { range [ 10 ] level [ DEF L0 Shape { } USE L0 ] }`,
			want: []string{
				"Base",
				"  Collision",
				"    Shape",
				"    Shape",
				"  Switch",
				"    Group",
				"  LOD",
				"    level USE L0",
				"    Shape L0",
			},
		},
		{
			in:    `Shape { geometry [ Box { } Sphere { } ] }`,
			want:  []string{"Base", "  Shape", "    Box"},
			diags: []error{scene.ErrRejected},
		},
		{
			in:    `DEF 1bad Group { }`,
			want:  []string{"Base", "  Group"},
			diags: []error{scene.ErrBadName},
		},
	}
	for _, tt := range tests {
		res, err := Parse([]byte(hdr+tt.in), tt.opts...)
		if err != nil {
			t.Errorf("%s: %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, outline(res)); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", tt.in, diff)
		}
		got := diagErrs(res)
		if len(got) != len(tt.diags) {
			t.Errorf("%s: got diagnostics %v want %v", tt.in, got, tt.diags)
			continue
		}
		for i := range got {
			if !errors.Is(got[i], tt.diags[i]) {
				t.Errorf("%s: diagnostic %d: got %v want %v", tt.in, i, got[i], tt.diags[i])
			}
		}
		if err := res.Graph.Check(); err != nil {
			t.Errorf("%s: %v", tt.in, err)
		}
	}
}

func TestParseFields(t *testing.T) {
	res, err := Parse([]byte(hdr + `Anchor {
  url "a b.wrl" description "say \"hi\""
  parameter [ "target=_blank", "x" ]
  bboxSize -1 -1 -1
}`))
	if err != nil {
		t.Fatal(err)
	}
	a := res.Graph.Children(res.Root)[0]
	want := []scene.Field{
		{Name: "url", Values: []string{`"a b.wrl"`}},
		{Name: "description", Values: []string{`"say \"hi\""`}},
		{Name: "parameter", Values: []string{`"target=_blank"`, `"x"`}, List: true},
		{Name: "bboxSize", Values: []string{"-1", "-1", "-1"}},
	}
	if diff := cmp.Diff(want, res.Graph.Fields(a)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{in: "Group { children [ Shape { } }", err: ErrParse},
		{in: "Group { children [ ", err: ErrParse},
		{in: "Group", err: ErrParse},
		{in: "DEF", err: ErrParse},
		{in: "ROUTE a.b FROM c.d", err: ErrParse},
		{in: "[ ]", err: ErrParse},
		{in: "Group { [ ] }", err: ErrParse},
		{in: "Group { children [ Shape { ] }", err: ErrParse},
		{in: "Group { url \"x }", err: token.ErrUnterminated},
	}
	for _, tt := range tests {
		res, err := Parse([]byte(hdr + tt.in))
		if !errors.Is(err, tt.err) {
			t.Errorf("%q: got %v want %v", tt.in, err, tt.err)
			continue
		}
		if res == nil {
			t.Errorf("%q: no partial result", tt.in)
		}
		var te *token.TokenizeErr
		if !errors.As(err, &te) {
			t.Errorf("%q: no position in %v", tt.in, err)
		}
	}
	if _, err := Parse([]byte("Group { }")); !errors.Is(err, token.ErrHeader) {
		t.Errorf("got %v", err)
	}
}

func TestStrict(t *testing.T) {
	_, err := Parse([]byte(hdr+`Group { children USE X } DEF X Group { }`), Strict(true))
	var d *Diagnostic
	if !errors.As(err, &d) || !errors.Is(err, ErrUnresolved) {
		t.Fatalf("got %v", err)
	}
	if d.Pos.Line() != 1 {
		t.Errorf("line %d", d.Pos.Line())
	}
	_, err = Parse([]byte(hdr+`Group { children USE X } DEF X Group { }`), Strict(true), ForwardRefs(true))
	if err != nil {
		t.Errorf("forward refs: %v", err)
	}
}

func TestPositions(t *testing.T) {
	in := hdr + `DEF A Appearance { }
Shape {
  appearance USE A
  geometry USE B
}`
	res, err := Parse([]byte(in), Positions(true))
	if err != nil {
		t.Fatal(err)
	}
	g := res.Graph
	// Appearance is not a child node, so A was dropped.
	if len(res.Uses) != 2 {
		t.Fatalf("uses %d", len(res.Uses))
	}
	u := res.Uses[0]
	if u.Name != "A" || !u.Target.IsZero() || u.Pos.Line() != 3 || u.Pos.Col() != 17 {
		t.Errorf("use %+v at %d:%d", u, u.Pos.Line(), u.Pos.Col())
	}
	shape := g.Children(res.Root)[0]
	if p := res.Positions[shape]; p == nil || p.Line() != 2 {
		t.Errorf("shape at %v", p)
	}
	if res.Doc == nil || len(res.Names) != 0 {
		t.Errorf("names %v", res.Names)
	}

	res, err = Parse([]byte(hdr+"Group { children DEF S Shape { } }\nShape { geometry NULL }"), Positions(true))
	if err != nil {
		t.Fatal(err)
	}
	s := res.Graph.Find(res.Root, "S", scene.NoHandle)
	if p := res.Names[s]; p == nil || p.Line() != 1 || p.Col() != 21 {
		t.Errorf("S named at %v", p)
	}
}

func TestParseReaderLatin1(t *testing.T) {
	in := hdr + "Anchor { description \"caf\xe9\" }"
	res, err := ParseReader(strings.NewReader(in), TokenOptions(token.Latin1()))
	if err != nil {
		t.Fatal(err)
	}
	a := res.Graph.Children(res.Root)[0]
	if got := res.Graph.Fields(a)[0].Values[0]; got != "\"café\"" {
		t.Errorf("got %q", got)
	}
}

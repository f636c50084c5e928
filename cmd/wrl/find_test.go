package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/wrl2"
	"github.com/signadot/wrl2/parse"
	"github.com/signadot/wrl2/scene"
)

const world = `#VRML V2.0 utf8
DEF T Transform {
  children [
    DEF S Shape { appearance DEF A Appearance { } geometry Box { } }
    Shape { appearance USE A }
  ]
}
`

func TestFindNodes(t *testing.T) {
	res, err := parse.Parse([]byte(world))
	if err != nil {
		t.Fatal(err)
	}
	g := res.Graph
	hs, err := findNodes(g, res.Root, "A", nil)
	if err != nil || len(hs) != 1 {
		t.Fatalf("got %v %v", hs, err)
	}
	if got, want := pathString(g, hs[0]), "Base / Transform T / Shape S / Appearance A"; got != want {
		t.Errorf("got %q want %q", got, want)
	}

	prog, err := wrl2.Compile(`kind == "Shape"`)
	if err != nil {
		t.Fatal(err)
	}
	hs, err = findNodes(g, res.Root, "*", prog)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, h := range hs {
		got = append(got, pathString(g, h))
	}
	want := []string{"Base / Transform T / Shape S", "Base / Transform T / Shape"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if hs, _ := findNodes(g, res.Root, "T", prog); len(hs) != 0 {
		t.Errorf("got %v", hs)
	}
}

func TestKindStats(t *testing.T) {
	res, err := parse.Parse([]byte(world))
	if err != nil {
		t.Fatal(err)
	}
	want := []kindStat{
		{Kind: "Appearance", Count: 1, Named: 1, Referenced: 1},
		{Kind: "Base", Count: 1},
		{Kind: "Box", Count: 1},
		{Kind: "Shape", Count: 2, Named: 1, Refs: 1},
		{Kind: "Transform", Count: 1, Named: 1},
	}
	if diff := cmp.Diff(want, kindStats(res.Graph, res.Root)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if got := slotsString(scene.ShapeKind); got != "appearance geometry" {
		t.Errorf("got %q", got)
	}
}

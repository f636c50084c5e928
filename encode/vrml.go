package encode

import (
	"fmt"
	"io"

	"github.com/signadot/wrl2/scene"
)

const vrmlHeader = "#VRML V2.0 utf8\n"

// encodeVRML writes a document with DEF on named nodes and USE for
// references.  Referenced nodes without a name get a generated one.  A
// Base node is written as its top level statements.
func encodeVRML(g *scene.Graph, h scene.Handle, w io.Writer, es *EncState) error {
	es.names = genNames(g, h)
	if err := writeString(w, vrmlHeader); err != nil {
		return err
	}
	if g.Kind(h) != scene.BaseKind {
		if err := vrmlStatement(g, h, w, es); err != nil {
			return err
		}
		return writeString(w, "\n")
	}
	for _, l := range g.Links(h) {
		if err := writeString(w, "\n"); err != nil {
			return err
		}
		if l.Ref {
			if err := writeString(w, "USE "+es.defName(g, l.Target)); err != nil {
				return err
			}
		} else if err := vrmlStatement(g, l.Target, w, es); err != nil {
			return err
		}
		if err := writeString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func genNames(g *scene.Graph, h scene.Handle) map[scene.Handle]string {
	names := map[scene.Handle]string{}
	used := map[string]bool{}
	g.Walk(h, func(h scene.Handle, _ int) bool {
		if name := g.Name(h); name != "" {
			used[name] = true
		}
		return true
	})
	i := 0
	g.Walk(h, func(h scene.Handle, _ int) bool {
		for _, t := range g.Refs(h) {
			if _, ok := names[t]; ok || g.Name(t) != "" {
				continue
			}
			var name string
			for {
				i++
				name = fmt.Sprintf("_N%d", i)
				if !used[name] {
					break
				}
			}
			names[t] = name
		}
		return true
	})
	return names
}

func (es *EncState) defName(g *scene.Graph, h scene.Handle) string {
	if name := g.Name(h); name != "" {
		return name
	}
	return es.names[h]
}

// vrmlStatement writes the node h starting at the current column and ending
// with its closing brace.
func vrmlStatement(g *scene.Graph, h scene.Handle, w io.Writer, es *EncState) error {
	v, err := g.View(h)
	if err != nil {
		return err
	}
	head := v.Kind.String()
	if name := es.defName(g, h); name != "" {
		head = "DEF " + name + " " + head
	}
	if len(v.Fields) == 0 && len(v.Links) == 0 {
		return writeString(w, head+" { }")
	}
	if err := writeString(w, head+" {\n"); err != nil {
		return err
	}
	es.depth++
	for _, f := range v.Fields {
		if err := writeString(w, es.pad()+f.Name+" "+f.String()+"\n"); err != nil {
			return err
		}
	}
	for _, s := range scene.Slots(v.Kind) {
		var links []scene.Link
		for _, l := range v.Links {
			if l.Field == s.Field {
				links = append(links, l)
			}
		}
		if len(links) == 0 {
			continue
		}
		if !s.Multi {
			if err := writeString(w, es.pad()+s.Field+" "); err != nil {
				return err
			}
			if err := vrmlItem(g, links[0], w, es); err != nil {
				return err
			}
			if err := writeString(w, "\n"); err != nil {
				return err
			}
			continue
		}
		if err := writeString(w, es.pad()+s.Field+" [\n"); err != nil {
			return err
		}
		es.depth++
		for _, l := range links {
			if err := writeString(w, es.pad()); err != nil {
				return err
			}
			if err := vrmlItem(g, l, w, es); err != nil {
				return err
			}
			if err := writeString(w, "\n"); err != nil {
				return err
			}
		}
		es.depth--
		if err := writeString(w, es.pad()+"]\n"); err != nil {
			return err
		}
	}
	es.depth--
	return writeString(w, es.pad()+"}")
}

func vrmlItem(g *scene.Graph, l scene.Link, w io.Writer, es *EncState) error {
	if l.Ref {
		return writeString(w, "USE "+es.defName(g, l.Target))
	}
	return vrmlStatement(g, l.Target, w, es)
}

package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/wrl2/format"
	"github.com/signadot/wrl2/scene"
)

var ErrBadNode = errors.New("bad node")

type EncState struct {
	depth, indent int
	maxDepth      int
	fields        bool

	format format.Format
	names  map[scene.Handle]string

	Color func(ColorAttr, string) string
}

// Encode writes the subtree of g rooted at h to w.
func Encode(g *scene.Graph, h scene.Handle, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if !g.Valid(h) {
		return fmt.Errorf("encode: %w: %s", scene.ErrStale, h)
	}
	switch es.format {
	case format.TreeFormat:
		return encodeTree(g, h, w, es)
	case format.VRMLFormat:
		return encodeVRML(g, h, w, es)
	case format.JSONFormat:
		n, err := Build(g, h)
		if err != nil {
			return err
		}
		d, err := json.MarshalIndent(n, "", strings.Repeat(" ", es.indent))
		if err != nil {
			return err
		}
		return writeString(w, string(d)+"\n")
	case format.YAMLFormat:
		n, err := Build(g, h)
		if err != nil {
			return err
		}
		d, err := yaml.MarshalWithOptions(n, yaml.Indent(es.indent))
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	default:
		return fmt.Errorf("%w: %d", format.ErrBadFormat, es.format)
	}
}

func MustString(g *scene.Graph, h scene.Handle, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(g, h, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

func (es *EncState) color(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

func (es *EncState) pad() string {
	return strings.Repeat(" ", es.depth*es.indent)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func encodeTree(g *scene.Graph, h scene.Handle, w io.Writer, es *EncState) error {
	return treeNode(g, h, "", w, es)
}

func treeNode(g *scene.Graph, h scene.Handle, field string, w io.Writer, es *EncState) error {
	v, err := g.View(h)
	if err != nil {
		return err
	}
	line := es.pad()
	if field != "" {
		line += es.color(FieldColor, field) + es.color(SepColor, ":") + " "
	}
	line += es.color(KindColor, v.Kind.String())
	if v.Name != "" {
		line += " " + es.color(NameColor, v.Name)
	}
	if err := writeString(w, line+"\n"); err != nil {
		return err
	}
	if es.maxDepth > 0 && es.depth+1 >= es.maxDepth {
		return nil
	}
	es.depth++
	defer func() { es.depth-- }()
	if es.fields {
		for _, f := range v.Fields {
			vals := es.color(ValueColor, f.String())
			if err := writeString(w, es.pad()+es.color(FieldColor, f.Name)+" "+vals+"\n"); err != nil {
				return err
			}
		}
	}
	for _, l := range v.Links {
		if !l.Ref {
			if err := treeNode(g, l.Target, l.Field, w, es); err != nil {
				return err
			}
			continue
		}
		line := es.pad() + es.color(FieldColor, l.Field) + es.color(SepColor, ":") + " " +
			es.color(RefColor, "USE") + " " + es.color(NameColor, refName(g, l.Target))
		if err := writeString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// refName names a reference target in tree output, by handle when unnamed.
func refName(g *scene.Graph, h scene.Handle) string {
	if name := g.Name(h); name != "" {
		return name
	}
	return h.String()
}

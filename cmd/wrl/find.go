package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/wrl2"
	"github.com/signadot/wrl2/scene"

	"github.com/scott-cotton/cli"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: find requires a name or '*'", cli.ErrUsage)
	}
	name := args[0]
	if name != "*" {
		if err := scene.CheckName(name); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	var prog *wrl2.Program
	if cfg.Where != "" {
		prog, err = wrl2.Compile(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	files := fileArgs(args[1:])
	found := 0
	for _, file := range files {
		res, err := loadWorld(cfg.MainConfig, cc, file, false)
		if err != nil {
			return err
		}
		hs, err := findNodes(res.Graph, res.Root, name, prog)
		if err != nil {
			return fmt.Errorf("error matching in %s: %w", file, err)
		}
		for _, h := range hs {
			if err := writePath(cc.Out, res.Graph, h, file, len(files) > 1); err != nil {
				return err
			}
		}
		found += len(hs)
	}
	if found == 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func findNodes(g *scene.Graph, root scene.Handle, name string, prog *wrl2.Program) ([]scene.Handle, error) {
	var hs []scene.Handle
	if name == "*" {
		g.Walk(root, func(h scene.Handle, _ int) bool {
			hs = append(hs, h)
			return true
		})
	} else if h := g.Find(root, name, scene.NoHandle); !h.IsZero() {
		hs = append(hs, h)
	}
	if prog == nil {
		return hs, nil
	}
	res := hs[:0]
	for _, h := range hs {
		ok, err := wrl2.Match(g, h, prog)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, h)
		}
	}
	return res, nil
}

func pathString(g *scene.Graph, h scene.Handle) string {
	path := g.Path(h)
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = g.Kind(p).String()
		if name := g.Name(p); name != "" {
			parts[i] += " " + name
		}
	}
	return strings.Join(parts, " / ")
}

func writePath(w io.Writer, g *scene.Graph, h scene.Handle, file string, withFile bool) error {
	line := pathString(g, h)
	if withFile {
		line = file + ": " + line
	}
	_, err := io.WriteString(w, line+"\n")
	return err
}

package main

import (
	"slices"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/samber/lo"
	"github.com/signadot/wrl2/scene"

	"github.com/scott-cotton/cli"
)

type kindStat struct {
	Kind       string
	Count      int
	Named      int
	Referenced int
	Refs       int
}

func kindStats(g *scene.Graph, root scene.Handle) []kindStat {
	var hs []scene.Handle
	g.Walk(root, func(h scene.Handle, _ int) bool {
		hs = append(hs, h)
		return true
	})
	byKind := lo.GroupBy(hs, func(h scene.Handle) string {
		return g.Kind(h).String()
	})
	names := lo.Keys(byKind)
	slices.Sort(names)
	return lo.Map(names, func(k string, _ int) kindStat {
		nodes := byKind[k]
		return kindStat{
			Kind:  k,
			Count: len(nodes),
			Named: lo.CountBy(nodes, func(h scene.Handle) bool { return g.Name(h) != "" }),
			Referenced: lo.CountBy(nodes, func(h scene.Handle) bool {
				return len(g.BackRefs(h)) != 0
			}),
			Refs: lo.SumBy(nodes, func(h scene.Handle) int { return len(g.Refs(h)) }),
		}
	})
}

func stats(cfg *StatsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Stats.Parse(cc, args)
	if err != nil {
		return err
	}
	colored := cfg.colored(cc.Out)
	for _, file := range fileArgs(args) {
		res, err := loadWorld(cfg.MainConfig, cc, file, false)
		if err != nil {
			return err
		}
		tbl := table.New("Kind", "Count", "Named", "Referenced", "USE").WithWriter(cc.Out)
		if colored {
			tbl.WithHeaderFormatter(color.New(color.FgGreen, color.Bold).SprintfFunc()).
				WithFirstColumnFormatter(color.New(color.FgYellow).SprintfFunc())
		}
		ks := kindStats(res.Graph, res.Root)
		for _, k := range ks {
			tbl.AddRow(k.Kind, k.Count, k.Named, k.Referenced, k.Refs)
		}
		tbl.AddRow("total", lo.SumBy(ks, func(k kindStat) int { return k.Count }), "", "", "")
		tbl.Print()
	}
	return nil
}

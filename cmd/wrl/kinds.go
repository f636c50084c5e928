package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/samber/lo"
	"github.com/signadot/wrl2/scene"

	"github.com/scott-cotton/cli"
)

func kinds(cfg *KindsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Kinds.Parse(cc, args)
	if err != nil {
		return err
	}
	ks := scene.Kinds()
	if len(args) != 0 {
		ks = ks[:0]
		for _, arg := range args {
			k := scene.KindOf(arg)
			if !k.Valid() {
				return fmt.Errorf("%w: %w: %q", cli.ErrUsage, scene.ErrBadKind, arg)
			}
			ks = append(ks, k)
		}
	} else if !cfg.All {
		ks = lo.Filter(ks, func(k scene.Kind, _ int) bool { return k.Supported() })
	}
	tbl := table.New("Kind", "Supported", "Slots", "Fields").WithWriter(cc.Out)
	if cfg.colored(cc.Out) {
		tbl.WithHeaderFormatter(color.New(color.FgGreen, color.Bold).SprintfFunc()).
			WithFirstColumnFormatter(color.New(color.FgYellow).SprintfFunc())
	}
	for _, k := range ks {
		tbl.AddRow(k, k.Supported(), slotsString(k), len(scene.ScalarFields(k)))
	}
	tbl.Print()
	return nil
}

func slotsString(k scene.Kind) string {
	return strings.Join(lo.Map(scene.Slots(k), func(s scene.Slot, _ int) string {
		if s.Multi {
			return s.Field + "[]"
		}
		return s.Field
	}), " ")
}

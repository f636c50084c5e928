package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	bad := 0
	for _, file := range fileArgs(args) {
		res, err := loadWorld(cfg.MainConfig, cc, file, true)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(cc.Out, "%s: %v\n", file, err)
			}
			bad++
			continue
		}
		for _, d := range res.Diagnostics {
			if !cfg.Quiet {
				fmt.Fprintf(cc.Out, "%s: %v\n", file, d)
			}
			bad++
		}
		if err := res.Graph.Check(); err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(cc.Out, "%s: %v\n", file, err)
			}
			bad++
		}
	}
	if bad != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

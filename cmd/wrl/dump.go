package main

import (
	"fmt"

	"github.com/signadot/wrl2/encode"
	"github.com/signadot/wrl2/format"

	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := append(cfg.encOpts(cc.Out, format.JSONFormat), encode.Indent(cfg.Indent))
	for _, file := range fileArgs(args) {
		res, err := loadWorld(cfg.MainConfig, cc, file, false)
		if err != nil {
			return err
		}
		if err := encode.Encode(res.Graph, res.Root, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}

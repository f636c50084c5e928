package main

import (
	"fmt"

	"github.com/signadot/wrl2/encode"
	"github.com/signadot/wrl2/format"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := append(cfg.encOpts(cc.Out, format.TreeFormat),
		encode.EncodeFields(cfg.Fields),
		encode.MaxDepth(cfg.Depth))
	files := fileArgs(args)
	for i, file := range files {
		res, err := loadWorld(cfg.MainConfig, cc, file, false)
		if err != nil {
			return err
		}
		if err := encode.Encode(res.Graph, res.Root, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
		if i < len(files)-1 {
			if _, err := cc.Out.Write([]byte("\n")); err != nil {
				return err
			}
		}
	}
	return nil
}

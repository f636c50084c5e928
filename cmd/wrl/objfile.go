package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/wrl2/parse"

	"github.com/scott-cotton/cli"
)

// loadWorld parses the world in path, or standard input for "-".
// Diagnostics are logged unless quiet is set.
func loadWorld(cfg *MainConfig, cc *cli.Context, path string, quiet bool, opts ...parse.ParseOption) (*parse.Result, error) {
	var (
		r io.Reader
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	res, err := parse.Parse(d, append(cfg.parseOpts(), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	if !quiet {
		for _, diag := range res.Diagnostics {
			theLog.Warn("dropped", "file", path, "err", diag)
		}
	}
	return res, nil
}

func fileArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

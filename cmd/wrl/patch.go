package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/wrl2/encode"
	"github.com/signadot/wrl2/format"
	"github.com/signadot/wrl2/libdiff"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a patch file and at most one world", cli.ErrUsage)
	}
	p, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("error reading patch: %w", err)
	}
	res, err := loadWorld(cfg.MainConfig, cc, fileArgs(args[1:])[0], false)
	if err != nil {
		return err
	}
	doc, err := encodeString(res, encode.EncodeFormat(format.JSONFormat))
	if err != nil {
		return err
	}
	var out []byte
	if cfg.JSONPatch {
		out, err = libdiff.ApplyPatch([]byte(doc), p)
	} else {
		out, err = libdiff.ApplyMergePatch([]byte(doc), p)
	}
	if err != nil {
		return fmt.Errorf("error applying %s: %w", args[0], err)
	}
	n := &encode.Node{}
	if err := json.Unmarshal(out, n); err != nil {
		return fmt.Errorf("error decoding patched world: %w", err)
	}
	g, root, err := n.Graph()
	if err != nil {
		return fmt.Errorf("patched world: %w", err)
	}
	return encode.Encode(g, root, cc.Out, cfg.encOpts(cc.Out, format.VRMLFormat)...)
}

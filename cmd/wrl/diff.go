package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/signadot/wrl2/encode"
	"github.com/signadot/wrl2/format"
	"github.com/signadot/wrl2/libdiff"
	"github.com/signadot/wrl2/parse"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := loadWorld(cfg.MainConfig, cc, args[0], false)
	if err != nil {
		return err
	}
	b, err := loadWorld(cfg.MainConfig, cc, args[1], false)
	if err != nil {
		return err
	}
	var differs bool
	if cfg.JSON {
		differs, err = diffJSON(cc.Out, a, b)
	} else {
		differs, err = diffTree(cc.Out, a, b)
	}
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffTree(w io.Writer, a, b *parse.Result) (bool, error) {
	opts := []encode.EncodeOption{encode.EncodeFields(true)}
	from, err := encodeString(a, opts...)
	if err != nil {
		return false, err
	}
	to, err := encodeString(b, opts...)
	if err != nil {
		return false, err
	}
	d := libdiff.Lines(from, to)
	if !d.Changed() {
		return false, nil
	}
	_, err = io.WriteString(w, d.String())
	return true, err
}

func diffJSON(w io.Writer, a, b *parse.Result) (bool, error) {
	opts := []encode.EncodeOption{encode.EncodeFormat(format.JSONFormat)}
	from, err := encodeString(a, opts...)
	if err != nil {
		return false, err
	}
	to, err := encodeString(b, opts...)
	if err != nil {
		return false, err
	}
	p, err := libdiff.MergePatch([]byte(from), []byte(to))
	if err != nil {
		return false, fmt.Errorf("error computing merge patch: %w", err)
	}
	if libdiff.Empty(p) {
		return false, nil
	}
	_, err = w.Write(append(p, '\n'))
	return true, err
}

func encodeString(res *parse.Result, opts ...encode.EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(res.Graph, res.Root, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

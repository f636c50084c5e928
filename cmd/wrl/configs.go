package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/wrl2/encode"
	"github.com/signadot/wrl2/format"
	"github.com/signadot/wrl2/parse"
	"github.com/signadot/wrl2/token"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='encode with color'"`
	Latin1 bool `cli:"name=latin1 desc='read input as ISO-8859-1'"`
	Fwd    bool `cli:"name=fwd desc='resolve USE of names defined later'"`
	Strict bool `cli:"name=strict desc='fail on the first diagnostic'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	res := []parse.ParseOption{
		parse.Logger(theLog),
		parse.ForwardRefs(cfg.Fwd),
		parse.Strict(cfg.Strict),
	}
	if cfg.Latin1 {
		res = append(res, parse.TokenOptions(token.Latin1()))
	}
	return res
}

// outFormat is the -O format, or def if none was given.
func (cfg *MainConfig) outFormat(def format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return def
}

func (cfg *MainConfig) encOpts(w io.Writer, def format.Format) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat(def)),
	}
	if cfg.colored(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colored reports whether output to w is colored: as set by -color, or
// when w is a terminal otherwise.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	Fields bool `cli:"name=f aliases=fields desc='show field values'"`
	Depth  int  `cli:"name=d aliases=depth desc='maximum depth to show'"`
	View   *cli.Command
}

type DumpConfig struct {
	*MainConfig

	Indent int `cli:"name=indent desc='indentation width'"`
	Dump   *cli.Command
}

type FindConfig struct {
	*MainConfig

	Where string `cli:"name=where desc='only nodes for which this expression holds'"`
	Find  *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Quiet bool `cli:"name=q desc='only set the exit code'"`
	Check *cli.Command
}

type StatsConfig struct {
	*MainConfig
	Stats *cli.Command
}

type DiffConfig struct {
	*MainConfig

	JSON bool `cli:"name=j desc='output a JSON merge patch'"`
	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig

	JSONPatch bool `cli:"name=p desc='the patch is an RFC 6902 JSON patch'"`
	Patch     *cli.Command
}

type KindsConfig struct {
	*MainConfig

	All   bool `cli:"name=a desc='include unsupported node types'"`
	Kinds *cli.Command
}

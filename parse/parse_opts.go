package parse

import (
	"log/slog"

	"github.com/signadot/wrl2/debug"
	"github.com/signadot/wrl2/scene"
	"github.com/signadot/wrl2/token"
)

type parseOpts struct {
	forwardRefs bool
	strict      bool
	positions   bool
	log         *slog.Logger
	tokenOpts   []token.TokenOpt
	graphOpts   []scene.GraphOption
}

type ParseOption func(*parseOpts)

// ForwardRefs resolves a USE of a name not yet defined once the whole
// document has been read, instead of reporting it.
func ForwardRefs(v bool) ParseOption {
	return func(o *parseOpts) { o.forwardRefs = v }
}

// Strict stops at the first diagnostic, returning it as the error.
func Strict(v bool) ParseOption {
	return func(o *parseOpts) { o.strict = v }
}

// Positions records the positions of node statements, DEF names and USE
// sites in the Result.
func Positions(v bool) ParseOption {
	return func(o *parseOpts) { o.positions = v }
}

func Logger(l *slog.Logger) ParseOption {
	return func(o *parseOpts) { o.log = l }
}

func TokenOptions(opts ...token.TokenOpt) ParseOption {
	return func(o *parseOpts) { o.tokenOpts = append(o.tokenOpts, opts...) }
}

// GraphOptions are passed on to the scene.Graph being built.
func GraphOptions(opts ...scene.GraphOption) ParseOption {
	return func(o *parseOpts) { o.graphOpts = append(o.graphOpts, opts...) }
}

func newOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{log: debug.Discard()}
	for _, f := range opts {
		f(o)
	}
	return o
}

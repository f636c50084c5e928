package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/wrl2/token"
)

var (
	ErrParse       = errors.New("parse error")
	ErrUnresolved  = errors.New("unresolved USE")
	ErrUnknownKind = errors.New("unknown node type")
	ErrRoute       = fmt.Errorf("%w: malformed ROUTE", ErrParse)
)

// Diagnostic is a recoverable problem met while reading a document.  The
// offending construct was dropped and reading went on.
type Diagnostic struct {
	Err error
	Pos *token.Pos
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

func (d *Diagnostic) Error() string {
	if d.Pos == nil {
		return d.Err.Error()
	}
	return fmt.Sprintf("%s at %s", d.Err.Error(), d.Pos.String())
}

func syntaxErr(err error) error {
	return fmt.Errorf("%w: %w", ErrParse, err)
}

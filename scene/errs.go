package scene

import (
	"errors"
	"fmt"
)

var (
	ErrBadKind      = errors.New("bad node kind")
	ErrUnsupported  = errors.New("unsupported node kind")
	ErrRejected     = errors.New("rejected")
	ErrStale        = errors.New("stale node handle")
	ErrBadName      = errors.New("bad node name")
	ErrUnknownField = errors.New("unknown field")
	ErrNoRef        = errors.New("no such reference")
)

// InvariantError reports a broken ownership or back-pointer invariant.  It
// is a programming error: no sequence of graph operations should produce
// one.
type InvariantError struct {
	Node Handle
	Kind Kind
	Msg  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at %s %s: %s", e.Kind, e.Node, e.Msg)
}

func rejectf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrRejected}, args...)...)
}

func staleErr(h Handle) error {
	return fmt.Errorf("%w: %s", ErrStale, h)
}

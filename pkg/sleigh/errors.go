package sleigh

import (
	"errors"
	"fmt"

	"github.com/lockbox/sleigh-go/internal/bindings"
)

var (
	// ErrBadData reports that the bytes at the requested address do not
	// decode to an instruction under the bound spec. Probing callers
	// should treat this as "not an instruction", not as a session fault.
	ErrBadData = errors.New("sleigh: data does not decode to an instruction")

	// ErrUnimplemented reports that the instruction decoded but the spec
	// carries no semantics for it.
	ErrUnimplemented = errors.New("sleigh: instruction semantics not implemented")

	// ErrNotRunning is returned by operations that need Begin first.
	ErrNotRunning = errors.New("sleigh: session not started")

	// ErrRunning is returned by Begin when the session already started.
	ErrRunning = errors.New("sleigh: session already started")

	// ErrNoSpec is returned by Begin when no spec file is bound.
	ErrNoSpec = errors.New("sleigh: no spec file bound")

	// ErrSpecBound is returned by UseSpecFile when a spec is already bound.
	ErrSpecBound = errors.New("sleigh: spec file already bound")

	// ErrNoImage is returned by Next when no memory regions are loaded.
	ErrNoImage = errors.New("sleigh: no memory regions loaded")

	// ErrClosed is returned by operations on a closed Translator.
	ErrClosed = errors.New("sleigh: translator closed")

	// ErrNotBuilt reports that the native engine was not linked into the
	// current binary.
	ErrNotBuilt = bindings.ErrNotBuilt
)

// Error pairs the operation that failed with the underlying cause.
// errors.Is and errors.As see through it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sleigh.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opErr(op string, err error) error {
	return &Error{Op: op, Err: err}
}

// remapError converts bindings layer errors to the public sentinels at
// the package boundary so callers never see internal error values.
func remapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bindings.ErrBadData):
		return ErrBadData
	case errors.Is(err, bindings.ErrUnimplemented):
		return ErrUnimplemented
	case errors.Is(err, bindings.ErrBadState):
		return ErrNotRunning
	default:
		return err
	}
}

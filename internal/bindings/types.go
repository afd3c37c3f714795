package bindings

import (
	"errors"
	"fmt"
)

// Manager is an opaque handle to a native decode session.
type Manager uintptr

// Varnode mirrors the bridge's storage-location triple.
type Varnode struct {
	Space  string
	Offset uint64
	Size   uint64
}

// Op is one p-code operation as reported by the bridge. Output is nil
// when the operation produces no result.
type Op struct {
	Opcode int32
	Inputs []Varnode
	Output *Varnode
}

// Insn is one decoded instruction. All fields are copies; the native
// result is released before Lift returns.
type Insn struct {
	Address  uint64
	Length   uint64
	Mnemonic string
	Body     string
	Ops      []Op
}

// Register is one entry of the spec's register catalog.
type Register struct {
	Name    string
	Varnode Varnode
}

var (
	// ErrNotBuilt reports that the native engine was not linked into the
	// current binary. Callers can use this to fall back to non-native
	// behavior.
	ErrNotBuilt = errors.New("sleigh/internal/bindings: native engine not built")

	// ErrBadData reports bytes that do not decode to an instruction.
	ErrBadData = errors.New("sleigh/internal/bindings: bad instruction data")

	// ErrUnimplemented reports an instruction the spec decodes but has
	// no semantics for.
	ErrUnimplemented = errors.New("sleigh/internal/bindings: instruction semantics not implemented")

	// ErrBadState reports a bridge call made out of order.
	ErrBadState = errors.New("sleigh/internal/bindings: call out of order")
)

// Status codes shared by every backend. Values match the bridge header.
const (
	statusOK       = 0
	statusBadData  = 1
	statusUnimpl   = 2
	statusState    = 3
	statusInternal = 4
)

// statusErr converts a bridge status code and message to a Go error.
func statusErr(code int32, msg string) error {
	switch code {
	case statusOK:
		return nil
	case statusBadData:
		return ErrBadData
	case statusUnimpl:
		return ErrUnimplemented
	case statusState:
		return ErrBadState
	default:
		if msg == "" {
			msg = "unknown failure"
		}
		return fmt.Errorf("sleigh/internal/bindings: %s", msg)
	}
}

package sleigh

import (
	"context"
	"fmt"
	"runtime"

	"github.com/lockbox/sleigh-go/pkg/sleigh/image"
	"github.com/lockbox/sleigh-go/pkg/sleigh/logging"
)

// Config carries the knobs for constructing a Translator.
type Config struct {
	// Engine selects the decode backend. Nil selects the native engine,
	// which requires the bridge library to be linked in.
	Engine Engine

	// Logger receives session diagnostics. Nil binds to slog.Default.
	Logger logging.Logger
}

type sessionState int

const (
	stateCreated sessionState = iota
	stateSpecBound
	stateRunning
)

// Translator manages one decoding session: the loaded memory image, the
// bound spec, and a decode cursor for sequential translation.
//
// The zero value is not usable; construct with New. A Translator is not
// safe for concurrent use.
type Translator struct {
	engine Engine
	img    *image.Image
	log    logging.Logger

	state     sessionState
	spec      string
	cursor    uint64
	cursorSet bool
	closed    bool
}

// New constructs a Translator. With a nil Config.Engine it binds the
// native engine and returns ErrNotBuilt when the bridge library is not
// linked into the binary.
func New(cfg Config) (*Translator, error) {
	eng := cfg.Engine
	if eng == nil {
		var err error
		eng, err = NewNativeEngine()
		if err != nil {
			return nil, opErr("New", err)
		}
	}
	log := cfg.Logger
	if log == nil {
		log = logging.New(nil)
	}

	t := &Translator{engine: eng, img: image.New(), log: log}
	runtime.SetFinalizer(t, func(t *Translator) { _ = t.Close() })
	return t, nil
}

// Close releases the engine. It is idempotent; operations after Close
// report ErrClosed.
func (t *Translator) Close() error {
	if t == nil || t.closed {
		return nil
	}
	runtime.SetFinalizer(t, nil)
	t.closed = true
	if err := t.engine.Close(); err != nil {
		return opErr("Close", err)
	}
	return nil
}

// Image exposes the loaded memory image. The image reflects every
// LoadRegion call made on this Translator.
func (t *Translator) Image() *image.Image {
	return t.img
}

// LoadRegion registers program bytes at base. Regions may be loaded in
// any session state and become visible to subsequent decodes
// immediately; instructions decoded earlier are unaffected. Overlapping
// regions are legal, with the earliest-loaded region winning.
func (t *Translator) LoadRegion(base uint64, data []byte) error {
	if t.closed {
		return opErr("LoadRegion", ErrClosed)
	}
	if err := t.engine.LoadRegion(base, data); err != nil {
		return opErr("LoadRegion", err)
	}
	t.img.AddRegion(base, data)
	t.log.Debug(context.Background(), "region loaded",
		logging.Addr("base", base), "size", len(data))
	return nil
}

// LoadRegions registers each region in order. It stops at the first
// failure.
func (t *Translator) LoadRegions(regions []image.Region) error {
	for _, r := range regions {
		if err := t.LoadRegion(r.Base, r.Data); err != nil {
			return err
		}
	}
	return nil
}

// UseSpecFile binds the compiled processor spec document at path. A
// session binds exactly one spec; rebinding reports ErrSpecBound.
func (t *Translator) UseSpecFile(path string) error {
	if t.closed {
		return opErr("UseSpecFile", ErrClosed)
	}
	if t.state != stateCreated {
		return opErr("UseSpecFile", ErrSpecBound)
	}
	if path == "" {
		return opErr("UseSpecFile", fmt.Errorf("empty spec path"))
	}
	if err := t.engine.SetSpecFile(path); err != nil {
		return opErr("UseSpecFile", err)
	}
	t.state = stateSpecBound
	t.spec = path
	t.log.Debug(context.Background(), "spec bound", "path", path)
	return nil
}

// Begin initializes the engine with the bound spec and makes the session
// ready to decode. Begin requires UseSpecFile first and may be called
// once; see Reset for reinitializing a running session.
func (t *Translator) Begin() error {
	if t.closed {
		return opErr("Begin", ErrClosed)
	}
	switch t.state {
	case stateCreated:
		return opErr("Begin", ErrNoSpec)
	case stateRunning:
		return opErr("Begin", ErrRunning)
	}
	if err := t.engine.Begin(); err != nil {
		return opErr("Begin", err)
	}
	t.state = stateRunning
	t.log.Info(context.Background(), "session started", "spec", t.spec)
	return nil
}

// Reset returns a running session to the state immediately after Begin:
// the engine is reinitialized over the same image, spec, and context
// defaults, and the decode cursor rewinds to the image base.
func (t *Translator) Reset() error {
	if t.closed {
		return opErr("Reset", ErrClosed)
	}
	if t.state != stateRunning {
		return opErr("Reset", ErrNotRunning)
	}
	if err := t.engine.Reset(); err != nil {
		return opErr("Reset", err)
	}
	t.cursor = 0
	t.cursorSet = false
	return nil
}

// Next decodes the instruction at the session cursor and advances the
// cursor past it. The first call starts at the lowest loaded address.
// On failure the cursor does not move, so callers can load more memory
// or probe elsewhere and retry.
func (t *Translator) Next() (*Instruction, error) {
	if t.closed {
		return nil, opErr("Next", ErrClosed)
	}
	if t.state != stateRunning {
		return nil, opErr("Next", ErrNotRunning)
	}
	if t.img.Empty() {
		return nil, opErr("Next", ErrNoImage)
	}
	if !t.cursorSet {
		t.cursor = t.img.Base()
		t.cursorSet = true
	}

	insn, err := t.lift(t.cursor)
	if err != nil {
		return nil, opErr("Next", err)
	}
	t.cursor += insn.Length
	return insn, nil
}

// LiftAt decodes the instruction at addr without touching the session
// cursor. Bytes that do not decode report ErrBadData; callers sweeping
// an address range should match it with errors.Is and move on.
func (t *Translator) LiftAt(addr uint64) (*Instruction, error) {
	if t.closed {
		return nil, opErr("LiftAt", ErrClosed)
	}
	if t.state != stateRunning {
		return nil, opErr("LiftAt", ErrNotRunning)
	}
	insn, err := t.lift(addr)
	if err != nil {
		return nil, opErr("LiftAt", err)
	}
	return insn, nil
}

func (t *Translator) lift(addr uint64) (*Instruction, error) {
	insn, err := t.engine.Lift(addr)
	if err != nil {
		t.log.Debug(context.Background(), "decode failed",
			logging.Addr("addr", addr), "err", err)
		return nil, err
	}
	if insn.Length == 0 {
		return nil, fmt.Errorf("engine reported zero-length instruction at %#x", addr)
	}
	return insn, nil
}

// SetContextDefault sets the global default of a spec context variable,
// for example "addrsize" or "opsize". The session must be running;
// defaults apply to instructions decoded afterwards. Unknown variable
// names are reported as an error.
func (t *Translator) SetContextDefault(name string, value uint32) error {
	if t.closed {
		return opErr("SetContextDefault", ErrClosed)
	}
	if t.state != stateRunning {
		return opErr("SetContextDefault", ErrNotRunning)
	}
	if err := t.engine.SetContextDefault(name, value); err != nil {
		t.log.Warn(context.Background(), "context default rejected",
			"name", name, "value", value, "err", err)
		return opErr("SetContextDefault", err)
	}
	return nil
}

// Registers returns the spec's register catalog. The slice is owned by
// the caller.
func (t *Translator) Registers() ([]Register, error) {
	if t.closed {
		return nil, opErr("Registers", ErrClosed)
	}
	if t.state != stateRunning {
		return nil, opErr("Registers", ErrNotRunning)
	}
	regs, err := t.engine.Registers()
	if err != nil {
		return nil, opErr("Registers", err)
	}
	return regs, nil
}

// UserOps returns the spec's user-defined operation names. An index in
// the slice is the pseudo-op number a CALLOTHER op carries in its first
// input. The slice is owned by the caller.
func (t *Translator) UserOps() ([]string, error) {
	if t.closed {
		return nil, opErr("UserOps", ErrClosed)
	}
	if t.state != stateRunning {
		return nil, opErr("UserOps", ErrNotRunning)
	}
	ops, err := t.engine.UserOps()
	if err != nil {
		return nil, opErr("UserOps", err)
	}
	return ops, nil
}

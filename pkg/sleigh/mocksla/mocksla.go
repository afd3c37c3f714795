package mocksla

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lockbox/sleigh-go/pkg/sleigh"
)

// Engine is a scripted sleigh.Engine. Tests preload decode results per
// address and the engine serves them back, recording every call so
// session behavior can be asserted without the native bridge.
type Engine struct {
	mu sync.Mutex

	entries   map[uint64]entry
	registers []sleigh.Register
	userOps   []string

	specPath string
	loads    []Load
	contexts map[string]uint32
	began    bool
	resets   int
	closed   bool

	contextErr error
}

type entry struct {
	insn sleigh.Instruction
	err  error
}

// Load records one LoadRegion call.
type Load struct {
	Base uint64
	Size int
}

// New returns an empty scripted engine. Unscripted addresses decode to
// sleigh.ErrBadData, matching the native engine's behavior on
// undecodable bytes.
func New() *Engine {
	return &Engine{
		entries:  make(map[uint64]entry),
		contexts: make(map[string]uint32),
	}
}

// Script makes addr decode to insn. The instruction's Address field is
// overwritten with addr.
func (e *Engine) Script(addr uint64, insn sleigh.Instruction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	insn.Address = addr
	e.entries[addr] = entry{insn: insn}
}

// ScriptErr makes addr decode to err.
func (e *Engine) ScriptErr(addr uint64, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries[addr] = entry{err: err}
}

// ScriptProgram scripts a contiguous run of instructions starting at
// base, assigning each instruction the address after its predecessor.
func (e *Engine) ScriptProgram(base uint64, insns []sleigh.Instruction) {
	addr := base
	for _, insn := range insns {
		e.Script(addr, insn)
		addr += insn.Length
	}
}

// SetRegisters sets the catalog served by Registers.
func (e *Engine) SetRegisters(regs []sleigh.Register) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registers = append([]sleigh.Register(nil), regs...)
}

// SetUserOps sets the catalog served by UserOps.
func (e *Engine) SetUserOps(names []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.userOps = append([]string(nil), names...)
}

// FailContext makes every SetContextDefault call return err, emulating
// an engine that rejects the variable.
func (e *Engine) FailContext(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.contextErr = err
}

func (e *Engine) LoadRegion(base uint64, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errors.New("mocksla: engine closed")
	}
	e.loads = append(e.loads, Load{Base: base, Size: len(data)})
	return nil
}

func (e *Engine) SetSpecFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errors.New("mocksla: engine closed")
	}
	e.specPath = path
	return nil
}

func (e *Engine) Begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errors.New("mocksla: engine closed")
	}
	e.began = true
	return nil
}

func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.began {
		return errors.New("mocksla: reset before begin")
	}
	e.resets++
	return nil
}

func (e *Engine) Lift(addr uint64) (*sleigh.Instruction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.began {
		return nil, errors.New("mocksla: lift before begin")
	}
	ent, ok := e.entries[addr]
	if !ok {
		return nil, fmt.Errorf("mocksla: no script for %#x: %w", addr, sleigh.ErrBadData)
	}
	if ent.err != nil {
		return nil, ent.err
	}
	insn := ent.insn
	return &insn, nil
}

func (e *Engine) SetContextDefault(name string, value uint32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.began {
		return errors.New("mocksla: context before begin")
	}
	if e.contextErr != nil {
		return e.contextErr
	}
	e.contexts[name] = value
	return nil
}

func (e *Engine) Registers() ([]sleigh.Register, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.began {
		return nil, errors.New("mocksla: registers before begin")
	}
	return append([]sleigh.Register(nil), e.registers...), nil
}

func (e *Engine) UserOps() ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.began {
		return nil, errors.New("mocksla: user ops before begin")
	}
	return append([]string(nil), e.userOps...), nil
}

func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// SpecPath reports the path bound by SetSpecFile.
func (e *Engine) SpecPath() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.specPath
}

// Loads reports every LoadRegion call in order.
func (e *Engine) Loads() []Load {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Load(nil), e.loads...)
}

// ContextDefault reports the last value set for a context variable.
func (e *Engine) ContextDefault(name string) (uint32, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.contexts[name]
	return v, ok
}

// Began reports whether Begin was called.
func (e *Engine) Began() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.began
}

// Resets reports how many times Reset was called.
func (e *Engine) Resets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resets
}

// Closed reports whether Close was called.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

var _ sleigh.Engine = (*Engine)(nil)

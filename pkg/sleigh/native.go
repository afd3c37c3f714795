package sleigh

import (
	"runtime"

	"github.com/lockbox/sleigh-go/internal/bindings"
)

// NativeAvailable reports whether the native decode engine is usable in
// this binary.
func NativeAvailable() bool {
	return bindings.Available()
}

// NewNativeEngine returns an Engine backed by the native decode library.
// Binaries built without the bridge library get ErrNotBuilt.
func NewNativeEngine() (Engine, error) {
	mgr, err := bindings.NewManager()
	if err != nil {
		return nil, remapError(err)
	}
	e := &nativeEngine{mgr: mgr}
	runtime.SetFinalizer(e, func(e *nativeEngine) { _ = e.Close() })
	return e, nil
}

type nativeEngine struct {
	mgr    bindings.Manager
	closed bool
}

func (e *nativeEngine) LoadRegion(base uint64, data []byte) error {
	if e.closed {
		return ErrClosed
	}
	return remapError(bindings.LoadRegion(e.mgr, base, data))
}

func (e *nativeEngine) SetSpecFile(path string) error {
	if e.closed {
		return ErrClosed
	}
	return remapError(bindings.SetSpecFile(e.mgr, path))
}

func (e *nativeEngine) Begin() error {
	if e.closed {
		return ErrClosed
	}
	return remapError(bindings.Begin(e.mgr))
}

func (e *nativeEngine) Reset() error {
	if e.closed {
		return ErrClosed
	}
	return remapError(bindings.Reset(e.mgr))
}

func (e *nativeEngine) Lift(addr uint64) (*Instruction, error) {
	if e.closed {
		return nil, ErrClosed
	}
	raw, err := bindings.Lift(e.mgr, addr)
	if err != nil {
		return nil, remapError(err)
	}
	return insnFromBindings(raw), nil
}

func (e *nativeEngine) SetContextDefault(name string, value uint32) error {
	if e.closed {
		return ErrClosed
	}
	return remapError(bindings.SetContextDefault(e.mgr, name, value))
}

func (e *nativeEngine) Registers() ([]Register, error) {
	if e.closed {
		return nil, ErrClosed
	}
	raw, err := bindings.Registers(e.mgr)
	if err != nil {
		return nil, remapError(err)
	}
	regs := make([]Register, len(raw))
	for i, r := range raw {
		regs[i] = Register{Name: r.Name, Varnode: Varnode(r.Varnode)}
	}
	return regs, nil
}

func (e *nativeEngine) UserOps() ([]string, error) {
	if e.closed {
		return nil, ErrClosed
	}
	ops, err := bindings.UserOps(e.mgr)
	if err != nil {
		return nil, remapError(err)
	}
	return ops, nil
}

func (e *nativeEngine) Close() error {
	if e.closed {
		return nil
	}
	runtime.SetFinalizer(e, nil)
	e.closed = true
	bindings.FreeManager(e.mgr)
	e.mgr = 0
	return nil
}

// insnFromBindings copies a bindings instruction into the public shape.
// The result shares no memory with the bindings layer.
func insnFromBindings(in *bindings.Insn) *Instruction {
	out := &Instruction{
		Address:  in.Address,
		Length:   in.Length,
		Mnemonic: in.Mnemonic,
		Body:     in.Body,
	}
	if len(in.Ops) == 0 {
		return out
	}
	out.Ops = make([]PcodeOp, len(in.Ops))
	for i, op := range in.Ops {
		p := PcodeOp{Opcode: OpCode(op.Opcode)}
		if len(op.Inputs) > 0 {
			p.Inputs = make([]Varnode, len(op.Inputs))
			for j, v := range op.Inputs {
				p.Inputs[j] = Varnode(v)
			}
		}
		if op.Output != nil {
			v := Varnode(*op.Output)
			p.Output = &v
		}
		out.Ops[i] = p
	}
	return out
}

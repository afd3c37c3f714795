package sleigh

import (
	"fmt"
	"strings"
)

// Varnode identifies a storage location in the engine's address space
// model: an address space name, an offset within it, and a size in bytes.
type Varnode struct {
	Space  string
	Offset uint64
	Size   uint64
}

// String renders the varnode in the engine's canonical notation,
// for example (register,0x10,8).
func (v Varnode) String() string {
	return fmt.Sprintf("(%s,0x%x,%d)", v.Space, v.Offset, v.Size)
}

// PcodeOp is a single p-code micro-operation. Output is nil for
// operations that produce no result, such as STORE and BRANCH.
type PcodeOp struct {
	Opcode OpCode
	Inputs []Varnode
	Output *Varnode
}

// String renders the op in the engine's raw p-code notation:
//
//	(register,0x0,8) = INT_ADD (register,0x0,8), (const,0x1,8)
func (p PcodeOp) String() string {
	var b strings.Builder
	if p.Output != nil {
		b.WriteString(p.Output.String())
		b.WriteString(" = ")
	}
	b.WriteString(p.Opcode.String())
	for i, in := range p.Inputs {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(in.String())
	}
	return b.String()
}

// Instruction is the decoded form of one machine instruction. Values are
// owned by the caller and remain valid independently of the session that
// produced them.
type Instruction struct {
	// Address where the instruction was decoded.
	Address uint64
	// Length of the encoding in bytes.
	Length uint64
	// Mnemonic is the assembly mnemonic text.
	Mnemonic string
	// Body is the assembly operand text.
	Body string
	// Ops holds the p-code semantics in execution order.
	Ops []PcodeOp
}

// Asm returns the full assembly line, mnemonic and operands joined.
func (in *Instruction) Asm() string {
	if in.Body == "" {
		return in.Mnemonic
	}
	return in.Mnemonic + " " + in.Body
}

// Register describes a named processor register and its backing varnode.
type Register struct {
	Name string
	Varnode
}

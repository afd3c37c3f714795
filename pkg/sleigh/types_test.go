package sleigh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarnodeString(t *testing.T) {
	v := Varnode{Space: "register", Offset: 0x288, Size: 8}
	assert.Equal(t, "(register,0x288,8)", v.String())

	assert.Equal(t, "(const,0x1,4)", Varnode{Space: "const", Offset: 1, Size: 4}.String())
	assert.Equal(t, "(unique,0x4e00,1)", Varnode{Space: "unique", Offset: 0x4e00, Size: 1}.String())
}

func TestPcodeOpString(t *testing.T) {
	rax := Varnode{Space: "register", Offset: 0, Size: 8}
	one := Varnode{Space: "const", Offset: 1, Size: 8}

	with := PcodeOp{Opcode: OpIntAdd, Inputs: []Varnode{rax, one}, Output: &rax}
	assert.Equal(t,
		"(register,0x0,8) = INT_ADD (register,0x0,8), (const,0x1,8)",
		with.String())

	noOut := PcodeOp{Opcode: OpStore, Inputs: []Varnode{one, rax}}
	assert.Equal(t, "STORE (const,0x1,8), (register,0x0,8)", noOut.String())

	noIn := PcodeOp{Opcode: OpReturn}
	assert.Equal(t, "RETURN", noIn.String())
}

func TestInstructionAsm(t *testing.T) {
	insn := &Instruction{Mnemonic: "MOV", Body: "RAX,RBX"}
	assert.Equal(t, "MOV RAX,RBX", insn.Asm())

	bare := &Instruction{Mnemonic: "RET"}
	assert.Equal(t, "RET", bare.Asm())
}

func TestRegisterEmbedsVarnode(t *testing.T) {
	r := Register{Name: "RSP", Varnode: Varnode{Space: "register", Offset: 0x20, Size: 8}}
	assert.Equal(t, uint64(0x20), r.Offset)
	assert.Equal(t, "(register,0x20,8)", r.Varnode.String())
}

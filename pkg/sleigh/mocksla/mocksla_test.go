package mocksla

import (
	"errors"
	"testing"

	"github.com/lockbox/sleigh-go/pkg/sleigh"
)

func TestScriptedLift(t *testing.T) {
	eng := New()
	eng.Script(0x1000, sleigh.Instruction{Length: 2, Mnemonic: "RET"})

	if _, err := eng.Lift(0x1000); err == nil {
		t.Fatalf("expected lift-before-begin error")
	}

	if err := eng.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	insn, err := eng.Lift(0x1000)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if insn.Address != 0x1000 || insn.Mnemonic != "RET" || insn.Length != 2 {
		t.Fatalf("unexpected instruction: %+v", insn)
	}

	if _, err := eng.Lift(0x2000); !errors.Is(err, sleigh.ErrBadData) {
		t.Fatalf("unscripted address should report bad data, got %v", err)
	}
}

func TestLiftReturnsCopies(t *testing.T) {
	eng := New()
	eng.Script(0x10, sleigh.Instruction{Length: 1, Mnemonic: "NOP"})
	if err := eng.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	a, err := eng.Lift(0x10)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	b, err := eng.Lift(0x10)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct result values per lift")
	}
	a.Mnemonic = "HLT"
	if b.Mnemonic != "NOP" {
		t.Fatalf("mutating one result leaked into another: %+v", b)
	}
}

func TestScriptProgram(t *testing.T) {
	eng := New()
	eng.ScriptProgram(0x400000, []sleigh.Instruction{
		{Length: 1, Mnemonic: "PUSH", Body: "RBP"},
		{Length: 3, Mnemonic: "MOV", Body: "RBP,RSP"},
		{Length: 1, Mnemonic: "RET"},
	})
	if err := eng.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	want := []struct {
		addr     uint64
		mnemonic string
	}{
		{0x400000, "PUSH"},
		{0x400001, "MOV"},
		{0x400004, "RET"},
	}
	for _, w := range want {
		insn, err := eng.Lift(w.addr)
		if err != nil {
			t.Fatalf("Lift %#x: %v", w.addr, err)
		}
		if insn.Mnemonic != w.mnemonic || insn.Address != w.addr {
			t.Fatalf("Lift %#x got %+v", w.addr, insn)
		}
	}
}

func TestScriptErr(t *testing.T) {
	eng := New()
	boom := errors.New("boom")
	eng.ScriptErr(0x10, boom)
	if err := eng.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := eng.Lift(0x10); !errors.Is(err, boom) {
		t.Fatalf("expected scripted error, got %v", err)
	}
}

func TestJournal(t *testing.T) {
	eng := New()
	if err := eng.LoadRegion(0x10, []byte{0x90, 0x90}); err != nil {
		t.Fatalf("LoadRegion: %v", err)
	}
	if err := eng.SetSpecFile("x86-64.sla"); err != nil {
		t.Fatalf("SetSpecFile: %v", err)
	}
	if err := eng.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := eng.SetContextDefault("opsize", 1); err != nil {
		t.Fatalf("SetContextDefault: %v", err)
	}

	if got := eng.SpecPath(); got != "x86-64.sla" {
		t.Fatalf("SpecPath = %q", got)
	}
	loads := eng.Loads()
	if len(loads) != 1 || loads[0].Base != 0x10 || loads[0].Size != 2 {
		t.Fatalf("unexpected loads: %+v", loads)
	}
	if v, ok := eng.ContextDefault("opsize"); !ok || v != 1 {
		t.Fatalf("ContextDefault = %d, %v", v, ok)
	}
	if !eng.Began() {
		t.Fatalf("Began should be true")
	}

	if err := eng.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if eng.Resets() != 1 {
		t.Fatalf("Resets = %d", eng.Resets())
	}

	if err := eng.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !eng.Closed() {
		t.Fatalf("Closed should be true")
	}
	if err := eng.Begin(); err == nil {
		t.Fatalf("expected begin-after-close error")
	}
}

func TestCatalogs(t *testing.T) {
	eng := New()
	eng.SetRegisters([]sleigh.Register{
		{Name: "RAX", Varnode: sleigh.Varnode{Space: "register", Offset: 0, Size: 8}},
		{Name: "RBX", Varnode: sleigh.Varnode{Space: "register", Offset: 8, Size: 8}},
	})
	eng.SetUserOps([]string{"syscall", "cpuid"})

	if _, err := eng.Registers(); err == nil {
		t.Fatalf("expected registers-before-begin error")
	}
	if err := eng.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	regs, err := eng.Registers()
	if err != nil {
		t.Fatalf("Registers: %v", err)
	}
	if len(regs) != 2 || regs[0].Name != "RAX" || regs[1].Varnode.Offset != 8 {
		t.Fatalf("unexpected registers: %+v", regs)
	}

	ops, err := eng.UserOps()
	if err != nil {
		t.Fatalf("UserOps: %v", err)
	}
	if len(ops) != 2 || ops[0] != "syscall" || ops[1] != "cpuid" {
		t.Fatalf("unexpected user ops: %+v", ops)
	}
}

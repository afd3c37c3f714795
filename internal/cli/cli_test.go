package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockbox/sleigh-go/pkg/sleigh"
)

func TestParseCtxPair(t *testing.T) {
	name, value, err := parseCtxPair("addrsize=2")
	require.NoError(t, err)
	assert.Equal(t, "addrsize", name)
	assert.Equal(t, uint32(2), value)

	name, value, err = parseCtxPair("opsize=0x10")
	require.NoError(t, err)
	assert.Equal(t, "opsize", name)
	assert.Equal(t, uint32(16), value)
}

func TestParseCtxPairRejectsMalformed(t *testing.T) {
	for _, pair := range []string{"", "addrsize", "=2", "addrsize=", "addrsize=ten", "addrsize=0x100000000"} {
		_, _, err := parseCtxPair(pair)
		assert.Error(t, err, "pair %q", pair)
	}
}

func TestResolveCatalogPath(t *testing.T) {
	t.Setenv(catalogEnv, "")
	assert.Equal(t, "langs.yaml", resolveCatalogPath(""))

	t.Setenv(catalogEnv, "/etc/sleigh/langs.yaml")
	assert.Equal(t, "/etc/sleigh/langs.yaml", resolveCatalogPath(""))

	// The flag wins over the environment.
	assert.Equal(t, "here.yaml", resolveCatalogPath("here.yaml"))
}

func TestSpecSearchPath(t *testing.T) {
	t.Setenv(specPathEnv, "")
	assert.Equal(t, []string{"/cat", "."}, specSearchPath("/cat/langs.yaml"))

	t.Setenv(specPathEnv, "/usr/share/specs")
	assert.Equal(t, []string{"/cat", ".", "/usr/share/specs"}, specSearchPath("/cat/langs.yaml"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "_Z3addii", displayName("_Z3addii", false))
	assert.Equal(t, "add(int, int)", displayName("_Z3addii", true))
	// Names that do not demangle pass through.
	assert.Equal(t, "_start", displayName("_start", true))
}

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf, plain: true}

	assert.Equal(t, "text", p.styled(headerStyle, "text"))

	p.printf("%s=%d\n", "n", 7)
	assert.Equal(t, "n=7\n", buf.String())
}

func TestPrinterInsn(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf, plain: true}

	insn := &sleigh.Instruction{
		Address:  0x401000,
		Length:   4,
		Mnemonic: "ENDBR64",
		Ops: []sleigh.PcodeOp{
			{
				Opcode: sleigh.OpCopy,
				Inputs: []sleigh.Varnode{{Space: "register", Offset: 0x28, Size: 8}},
				Output: &sleigh.Varnode{Space: "register", Offset: 0x20, Size: 8},
			},
		},
	}

	p.insn(insn, true)
	assert.Equal(t,
		"0x00401000  ENDBR64\n    (register,0x20,8) = COPY (register,0x28,8)\n",
		buf.String())

	buf.Reset()
	p.insn(insn, false)
	assert.Equal(t, "0x00401000  ENDBR64\n", buf.String())
}

func TestPrinterInsnBody(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf, plain: true}

	p.insn(&sleigh.Instruction{Address: 0x1000, Length: 1, Mnemonic: "PUSH", Body: "RBP"}, true)
	assert.Equal(t, "0x00001000  PUSH RBP\n", buf.String())
}

func TestNoteDecodeStop(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf, plain: true}

	require.NoError(t, noteDecodeStop(p, 0x2000, sleigh.ErrBadData))
	assert.Equal(t, "0x00002000  (bytes do not decode)\n", buf.String())

	buf.Reset()
	require.NoError(t, noteDecodeStop(p, 0, sleigh.ErrUnimplemented))
	assert.Equal(t, "(decoded, semantics unimplemented)\n", buf.String())

	boom := errors.New("boom")
	assert.ErrorIs(t, noteDecodeStop(p, 0x2000, boom), boom)
}

//go:build !cgo && (linux || darwin || freebsd) && (amd64 || arm64)

package bindings

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// The bridge ABI is fixed by slabridge.h. These sizes and offsets pin
// the Go mirror structs to the 64-bit C layout.
func TestMirrorStructLayout(t *testing.T) {
	require.EqualValues(t, 48, unsafe.Sizeof(cVarnode{}))
	require.EqualValues(t, 32, unsafe.Offsetof(cVarnode{}.offset))
	require.EqualValues(t, 40, unsafe.Offsetof(cVarnode{}.size))

	require.EqualValues(t, 24, unsafe.Sizeof(cOp{}))
	require.EqualValues(t, 4, unsafe.Offsetof(cOp{}.inputCount))
	require.EqualValues(t, 8, unsafe.Offsetof(cOp{}.inputs))
	require.EqualValues(t, 16, unsafe.Offsetof(cOp{}.output))

	require.EqualValues(t, 48, unsafe.Sizeof(cInsn{}))
	require.EqualValues(t, 16, unsafe.Offsetof(cInsn{}.mnemonic))
	require.EqualValues(t, 24, unsafe.Offsetof(cInsn{}.body))
	require.EqualValues(t, 32, unsafe.Offsetof(cInsn{}.opCount))
	require.EqualValues(t, 40, unsafe.Offsetof(cInsn{}.ops))

	require.EqualValues(t, 56, unsafe.Sizeof(cRegister{}))
	require.EqualValues(t, 8, unsafe.Offsetof(cRegister{}.varnode))

	require.EqualValues(t, 16, unsafe.Sizeof(cRegisterList{}))
	require.EqualValues(t, 16, unsafe.Sizeof(cStringList{}))
}

func TestGoString(t *testing.T) {
	require.Equal(t, "", goString(nil))

	b := []byte{'r', 'e', 'g', 'i', 's', 't', 'e', 'r', 0, 'x'}
	require.Equal(t, "register", goString(&b[0]))
}

func TestSpaceName(t *testing.T) {
	var buf [32]byte
	copy(buf[:], "ram")
	require.Equal(t, "ram", spaceName(buf[:]))

	// Name exactly fills the array: no NUL to find.
	full := make([]byte, 32)
	for i := range full {
		full[i] = 'a'
	}
	require.Equal(t, string(full), spaceName(full))
}

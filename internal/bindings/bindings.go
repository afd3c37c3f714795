//go:build cgo && !windows

package bindings

/*
#cgo CFLAGS: -I${SRCDIR}/../../slabridge/include
#cgo LDFLAGS: -L${SRCDIR}/../../slabridge/lib -lslabridge -lstdc++
#include <stdlib.h>
#include "slabridge.h"
*/
import "C"

import (
	"bytes"
	"runtime"
	"unsafe"
)

// Available reports whether the native engine is linked in.
func Available() bool { return true }

// Version returns the native engine's version string.
func Version() string { return C.GoString(C.slabridge_version()) }

func cmgr(m Manager) *C.slabridge_mgr_t {
	return (*C.slabridge_mgr_t)(unsafe.Pointer(uintptr(m)))
}

// lastErr reads the manager's status and message left by the previous
// bridge call.
func lastErr(m Manager) error {
	code := int32(C.slabridge_status(cmgr(m)))
	msg := C.GoString(C.slabridge_last_error(cmgr(m)))
	return statusErr(code, msg)
}

// NewManager allocates a native decode session.
func NewManager() (Manager, error) {
	mgr := C.slabridge_new()
	if mgr == nil {
		return 0, statusErr(statusInternal, "manager allocation failed")
	}
	return Manager(uintptr(unsafe.Pointer(mgr))), nil
}

// FreeManager releases a native decode session. Passing the zero
// Manager is a no-op.
func FreeManager(m Manager) {
	if m != 0 {
		C.slabridge_free(cmgr(m))
	}
}

// LoadRegion hands one byte region to the native loader. The bridge
// copies the bytes, so data need not stay alive after the call.
func LoadRegion(m Manager, base uint64, data []byte) error {
	var ptr *C.uint8_t
	if len(data) > 0 {
		ptr = (*C.uint8_t)(unsafe.Pointer(&data[0]))
	}
	rc := C.slabridge_load_region(cmgr(m), C.uint64_t(base), ptr, C.uint64_t(len(data)))
	runtime.KeepAlive(data)
	if rc != 0 {
		return lastErr(m)
	}
	return nil
}

// SetSpecFile points the session at a compiled spec document.
func SetSpecFile(m Manager, path string) error {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	if rc := C.slabridge_set_specfile(cmgr(m), cPath); rc != 0 {
		return lastErr(m)
	}
	return nil
}

// Begin builds the decoder from the bound spec and loaded regions.
func Begin(m Manager) error {
	if rc := C.slabridge_begin(cmgr(m)); rc != 0 {
		return lastErr(m)
	}
	return nil
}

// Reset rebuilds the decoder, dropping accumulated decode state.
func Reset(m Manager) error {
	if rc := C.slabridge_reset(cmgr(m)); rc != 0 {
		return lastErr(m)
	}
	return nil
}

// SetContextDefault sets the default value of a spec context variable.
func SetContextDefault(m Manager, name string, value uint32) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	if rc := C.slabridge_set_context_default(cmgr(m), cName, C.uint32_t(value)); rc != 0 {
		return lastErr(m)
	}
	return nil
}

// Lift decodes one instruction at addr and returns a Go copy of the
// result. The native result is freed before returning.
func Lift(m Manager, addr uint64) (*Insn, error) {
	raw := C.slabridge_lift(cmgr(m), C.uint64_t(addr))
	if raw == nil {
		err := lastErr(m)
		if err == nil {
			err = ErrBadData
		}
		return nil, err
	}
	defer C.slabridge_insn_free(raw)
	return goInsn(raw), nil
}

// Registers returns the spec's register catalog.
func Registers(m Manager) ([]Register, error) {
	list := C.slabridge_registers(cmgr(m))
	if list == nil {
		return nil, lastErr(m)
	}
	defer C.slabridge_register_list_free(list)

	n := int(list.count)
	regs := make([]Register, 0, n)
	if n > 0 {
		items := unsafe.Slice(list.items, n)
		for i := range items {
			regs = append(regs, Register{
				Name:    C.GoString(items[i].name),
				Varnode: goVarnode(&items[i].varnode),
			})
		}
	}
	return regs, nil
}

// UserOps returns the spec's pseudo-operation names in index order.
func UserOps(m Manager) ([]string, error) {
	list := C.slabridge_user_ops(cmgr(m))
	if list == nil {
		return nil, lastErr(m)
	}
	defer C.slabridge_string_list_free(list)

	n := int(list.count)
	names := make([]string, 0, n)
	if n > 0 {
		items := unsafe.Slice(list.items, n)
		for i := range items {
			names = append(names, C.GoString(items[i]))
		}
	}
	return names, nil
}

func goInsn(raw *C.sla_insn_t) *Insn {
	insn := &Insn{
		Address:  uint64(raw.address),
		Length:   uint64(raw.length),
		Mnemonic: C.GoString(raw.mnemonic),
		Body:     C.GoString(raw.body),
	}
	n := int(raw.op_count)
	if n == 0 {
		return insn
	}
	ops := unsafe.Slice(raw.ops, n)
	insn.Ops = make([]Op, n)
	for i := range ops {
		insn.Ops[i] = goOp(&ops[i])
	}
	return insn
}

func goOp(raw *C.sla_op_t) Op {
	op := Op{Opcode: int32(raw.opcode)}
	if n := int(raw.input_count); n > 0 {
		inputs := unsafe.Slice(raw.inputs, n)
		op.Inputs = make([]Varnode, n)
		for i := range inputs {
			op.Inputs[i] = goVarnode(&inputs[i])
		}
	}
	if raw.output != nil {
		v := goVarnode(raw.output)
		op.Output = &v
	}
	return op
}

func goVarnode(raw *C.sla_varnode_t) Varnode {
	return Varnode{
		Space:  spaceName(raw),
		Offset: uint64(raw.offset),
		Size:   uint64(raw.size),
	}
}

// spaceName reads the fixed space-name array, which the bridge may
// leave without a terminating NUL when the name fills it.
func spaceName(raw *C.sla_varnode_t) string {
	b := C.GoBytes(unsafe.Pointer(&raw.space[0]), C.int(len(raw.space)))
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

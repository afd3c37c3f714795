//go:build !cgo && (linux || darwin || freebsd) && (amd64 || arm64)

package bindings

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Mirror structs for the bridge ABI. Field order and padding must match
// slabridge.h on 64-bit platforms; bindings_purego_test.go checks the
// resulting sizes and offsets.
type cVarnode struct {
	space  [32]byte
	offset uint64
	size   uint64
}

type cOp struct {
	opcode     int32
	inputCount int32
	inputs     *cVarnode
	output     *cVarnode
}

type cInsn struct {
	address  uint64
	length   uint64
	mnemonic *byte
	body     *byte
	opCount  uint64
	ops      *cOp
}

type cRegister struct {
	name    *byte
	varnode cVarnode
}

type cRegisterList struct {
	count uint64
	items *cRegister
}

type cStringList struct {
	count uint64
	items **byte
}

var (
	loadOnce sync.Once
	loadErr  error

	bridgeLib uintptr

	slabridgeVersion          func() string
	slabridgeNew              func() unsafe.Pointer
	slabridgeFree             func(unsafe.Pointer)
	slabridgeStatus           func(unsafe.Pointer) int32
	slabridgeLastError        func(unsafe.Pointer) string
	slabridgeLoadRegion       func(unsafe.Pointer, uint64, unsafe.Pointer, uint64) int32
	slabridgeSetSpecfile      func(unsafe.Pointer, string) int32
	slabridgeBegin            func(unsafe.Pointer) int32
	slabridgeReset            func(unsafe.Pointer) int32
	slabridgeSetContextDeflt  func(unsafe.Pointer, string, uint32) int32
	slabridgeLift             func(unsafe.Pointer, uint64) unsafe.Pointer
	slabridgeInsnFree         func(unsafe.Pointer)
	slabridgeRegisters        func(unsafe.Pointer) unsafe.Pointer
	slabridgeRegisterListFree func(unsafe.Pointer)
	slabridgeUserOps          func(unsafe.Pointer) unsafe.Pointer
	slabridgeStringListFree   func(unsafe.Pointer)
)

// libName resolves the bridge library path. SLABRIDGE_LIBRARY overrides
// the platform default so tests and packagers can point at a build tree.
func libName() string {
	if v := os.Getenv("SLABRIDGE_LIBRARY"); v != "" {
		return v
	}
	if runtime.GOOS == "darwin" {
		return "libslabridge.dylib"
	}
	return "libslabridge.so"
}

func load() error {
	loadOnce.Do(func() {
		var err error
		bridgeLib, err = purego.Dlopen(libName(), purego.RTLD_GLOBAL|purego.RTLD_NOW)
		if err != nil {
			loadErr = fmt.Errorf("%w: dlopen %s: %v", ErrNotBuilt, libName(), err)
			return
		}

		// Session lifecycle
		purego.RegisterLibFunc(&slabridgeVersion, bridgeLib, "slabridge_version")
		purego.RegisterLibFunc(&slabridgeNew, bridgeLib, "slabridge_new")
		purego.RegisterLibFunc(&slabridgeFree, bridgeLib, "slabridge_free")
		purego.RegisterLibFunc(&slabridgeStatus, bridgeLib, "slabridge_status")
		purego.RegisterLibFunc(&slabridgeLastError, bridgeLib, "slabridge_last_error")

		// Session setup
		purego.RegisterLibFunc(&slabridgeLoadRegion, bridgeLib, "slabridge_load_region")
		purego.RegisterLibFunc(&slabridgeSetSpecfile, bridgeLib, "slabridge_set_specfile")
		purego.RegisterLibFunc(&slabridgeBegin, bridgeLib, "slabridge_begin")
		purego.RegisterLibFunc(&slabridgeReset, bridgeLib, "slabridge_reset")
		purego.RegisterLibFunc(&slabridgeSetContextDeflt, bridgeLib, "slabridge_set_context_default")

		// Decode and catalogs
		purego.RegisterLibFunc(&slabridgeLift, bridgeLib, "slabridge_lift")
		purego.RegisterLibFunc(&slabridgeInsnFree, bridgeLib, "slabridge_insn_free")
		purego.RegisterLibFunc(&slabridgeRegisters, bridgeLib, "slabridge_registers")
		purego.RegisterLibFunc(&slabridgeRegisterListFree, bridgeLib, "slabridge_register_list_free")
		purego.RegisterLibFunc(&slabridgeUserOps, bridgeLib, "slabridge_user_ops")
		purego.RegisterLibFunc(&slabridgeStringListFree, bridgeLib, "slabridge_string_list_free")
	})
	return loadErr
}

// Available reports whether the bridge library could be loaded.
func Available() bool { return load() == nil }

// Version returns the native engine's version string, or "" when the
// bridge is unavailable.
func Version() string {
	if load() != nil {
		return ""
	}
	return slabridgeVersion()
}

func mptr(m Manager) unsafe.Pointer {
	return unsafe.Pointer(uintptr(m))
}

// lastErr reads the manager's status and message left by the previous
// bridge call.
func lastErr(m Manager) error {
	return statusErr(slabridgeStatus(mptr(m)), slabridgeLastError(mptr(m)))
}

// NewManager allocates a native decode session.
func NewManager() (Manager, error) {
	if err := load(); err != nil {
		return 0, err
	}
	mgr := slabridgeNew()
	if mgr == nil {
		return 0, statusErr(statusInternal, "manager allocation failed")
	}
	return Manager(uintptr(mgr)), nil
}

// FreeManager releases a native decode session. Passing the zero
// Manager is a no-op.
func FreeManager(m Manager) {
	if m == 0 || load() != nil {
		return
	}
	slabridgeFree(mptr(m))
}

// LoadRegion hands one byte region to the native loader. The bridge
// copies the bytes, so data need not stay alive after the call.
func LoadRegion(m Manager, base uint64, data []byte) error {
	if err := load(); err != nil {
		return err
	}
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	rc := slabridgeLoadRegion(mptr(m), base, ptr, uint64(len(data)))
	runtime.KeepAlive(data)
	if rc != 0 {
		return lastErr(m)
	}
	return nil
}

// SetSpecFile points the session at a compiled spec document.
func SetSpecFile(m Manager, path string) error {
	if err := load(); err != nil {
		return err
	}
	if rc := slabridgeSetSpecfile(mptr(m), path); rc != 0 {
		return lastErr(m)
	}
	return nil
}

// Begin builds the decoder from the bound spec and loaded regions.
func Begin(m Manager) error {
	if err := load(); err != nil {
		return err
	}
	if rc := slabridgeBegin(mptr(m)); rc != 0 {
		return lastErr(m)
	}
	return nil
}

// Reset rebuilds the decoder, dropping accumulated decode state.
func Reset(m Manager) error {
	if err := load(); err != nil {
		return err
	}
	if rc := slabridgeReset(mptr(m)); rc != 0 {
		return lastErr(m)
	}
	return nil
}

// SetContextDefault sets the default value of a spec context variable.
func SetContextDefault(m Manager, name string, value uint32) error {
	if err := load(); err != nil {
		return err
	}
	if rc := slabridgeSetContextDeflt(mptr(m), name, value); rc != 0 {
		return lastErr(m)
	}
	return nil
}

// Lift decodes one instruction at addr and returns a Go copy of the
// result. The native result is freed before returning.
func Lift(m Manager, addr uint64) (*Insn, error) {
	if err := load(); err != nil {
		return nil, err
	}
	raw := slabridgeLift(mptr(m), addr)
	if raw == nil {
		err := lastErr(m)
		if err == nil {
			err = ErrBadData
		}
		return nil, err
	}
	defer slabridgeInsnFree(raw)
	return goInsn((*cInsn)(raw)), nil
}

// Registers returns the spec's register catalog.
func Registers(m Manager) ([]Register, error) {
	if err := load(); err != nil {
		return nil, err
	}
	raw := slabridgeRegisters(mptr(m))
	if raw == nil {
		return nil, lastErr(m)
	}
	defer slabridgeRegisterListFree(raw)

	list := (*cRegisterList)(raw)
	n := int(list.count)
	regs := make([]Register, 0, n)
	if n > 0 {
		items := unsafe.Slice(list.items, n)
		for i := range items {
			regs = append(regs, Register{
				Name:    goString(items[i].name),
				Varnode: goVarnode(&items[i].varnode),
			})
		}
	}
	return regs, nil
}

// UserOps returns the spec's pseudo-operation names in index order.
func UserOps(m Manager) ([]string, error) {
	if err := load(); err != nil {
		return nil, err
	}
	raw := slabridgeUserOps(mptr(m))
	if raw == nil {
		return nil, lastErr(m)
	}
	defer slabridgeStringListFree(raw)

	list := (*cStringList)(raw)
	n := int(list.count)
	names := make([]string, 0, n)
	if n > 0 {
		items := unsafe.Slice(list.items, n)
		for i := range items {
			names = append(names, goString(items[i]))
		}
	}
	return names, nil
}

func goInsn(raw *cInsn) *Insn {
	insn := &Insn{
		Address:  raw.address,
		Length:   raw.length,
		Mnemonic: goString(raw.mnemonic),
		Body:     goString(raw.body),
	}
	n := int(raw.opCount)
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

func goOp(raw *cOp) Op {
	op := Op{Opcode: raw.opcode}
	if n := int(raw.inputCount); n > 0 {
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

func goVarnode(raw *cVarnode) Varnode {
	return Varnode{
		Space:  spaceName(raw.space[:]),
		Offset: raw.offset,
		Size:   raw.size,
	}
}

// spaceName reads the fixed space-name array, which the bridge may
// leave without a terminating NUL when the name fills it.
func spaceName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// goString copies a NUL-terminated C string into Go memory.
func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// libsleigh is the c-shared foreign-call surface over the decoding
// session API:
//
//	go build -buildmode=c-shared -o libsleigh.so ./bindings/c
//
// Sessions are referenced through opaque uint64 handles, never raw Go
// pointers. Every function that can fail takes a sleigh_error out
// parameter and returns its code; pass NULL to ignore the detail.
// Results are heap-allocated C structures owned by the caller and
// released with their paired free function. Calls on one session are
// serialized internally; distinct sessions are independent.
package main

/*
#include <stdlib.h>
#include <stdint.h>
#include <string.h>

// Handle types
typedef struct { uint64_t _h; } sleigh_session;

// Error codes (must match libsleigh.h)
typedef enum {
    SLEIGH_OK = 0,
    SLEIGH_ERR_INVALID_HANDLE = 1,
    SLEIGH_ERR_INVALID_ARGUMENT = 2,
    SLEIGH_ERR_BAD_STATE = 3,
    SLEIGH_ERR_BAD_DATA = 4,
    SLEIGH_ERR_UNIMPL = 5,
    SLEIGH_ERR_NOT_BUILT = 6,
    SLEIGH_ERR_UNKNOWN = 99
} sleigh_error_code;

typedef struct {
    sleigh_error_code code;
    char* message;
} sleigh_error;

// One storage location: address space name, offset within the space,
// size in bytes.
typedef struct {
    char*    space;
    uint64_t offset;
    uint64_t size;
} sleigh_varnode;

// One p-code micro-operation. output is NULL for operations that
// produce no result.
typedef struct {
    int32_t         opcode;
    sleigh_varnode* output;
    sleigh_varnode* inputs;
    size_t          input_count;
} sleigh_op;

// One decoded machine instruction. Released with sleigh_insn_free.
typedef struct {
    uint64_t   address;
    uint64_t   length;
    char*      mnemonic;
    char*      body;
    sleigh_op* ops;
    size_t     op_count;
} sleigh_insn;

typedef struct {
    char*          name;
    sleigh_varnode varnode;
} sleigh_register;

// Register catalog. Released with sleigh_registers_free.
typedef struct {
    sleigh_register* items;
    size_t           count;
} sleigh_registers;

// User-defined operation names, indexed by pseudo-op number. Released
// with sleigh_user_ops_free.
typedef struct {
    char** items;
    size_t count;
} sleigh_user_ops;

static inline void set_error(sleigh_error* err, sleigh_error_code code, const char* message) {
    if (err == NULL) return;
    err->code = code;
    err->message = message ? strdup(message) : NULL;
}

static inline void clear_error(sleigh_error* err) {
    if (err == NULL) return;
    err->code = SLEIGH_OK;
    err->message = NULL;
}
*/
import "C"

import (
	"errors"
	"unsafe"

	"github.com/lockbox/sleigh-go/pkg/sleigh"
)

// ==========================================================================
// Library info
// ==========================================================================

//export sleigh_version
func sleigh_version() *C.char {
	return C.CString(sleigh.WrapperVersion())
}

//export sleigh_engine_version
func sleigh_engine_version() *C.char {
	return C.CString(sleigh.EngineVersion())
}

// sleigh_opcode_name returns the canonical name of a p-code opcode,
// for example "INT_ADD", or NULL for numbers the engine never emits.
//
//export sleigh_opcode_name
func sleigh_opcode_name(opcode C.int32_t) *C.char {
	op := sleigh.OpCode(opcode)
	if !op.Valid() {
		return nil
	}
	return C.CString(op.String())
}

//export sleigh_string_free
func sleigh_string_free(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

// sleigh_error_free releases the message inside a sleigh_error and
// resets the code. The struct itself is caller-owned.
//
//export sleigh_error_free
func sleigh_error_free(err *C.sleigh_error) {
	if err == nil {
		return
	}
	if err.message != nil {
		C.free(unsafe.Pointer(err.message))
		err.message = nil
	}
	err.code = C.SLEIGH_OK
}

// ==========================================================================
// Session lifecycle
// ==========================================================================

//export sleigh_session_new
func sleigh_session_new(out *C.sleigh_session, cErr *C.sleigh_error) C.sleigh_error_code {
	if out == nil {
		return setInvalidArgument(cErr, "out is NULL")
	}

	tr, err := sleigh.New(sleigh.Config{})
	if err != nil {
		return setError(err, cErr)
	}

	h := registerSession(&session{tr: tr})
	out._h = C.uint64_t(h)
	C.clear_error(cErr)
	return C.SLEIGH_OK
}

//export sleigh_session_free
func sleigh_session_free(sess C.sleigh_session) {
	s := releaseSession(uint64(sess._h))
	if s == nil {
		return
	}
	s.mu.Lock()
	_ = s.tr.Close()
	s.mu.Unlock()
}

//export sleigh_session_load_region
func sleigh_session_load_region(sess C.sleigh_session, base C.uint64_t, data *C.uint8_t, length C.size_t, cErr *C.sleigh_error) C.sleigh_error_code {
	s := lookupSession(uint64(sess._h))
	if s == nil {
		return setInvalidHandle(cErr)
	}
	if data == nil {
		return setInvalidArgument(cErr, "data is NULL")
	}
	if length == 0 {
		return setInvalidArgument(cErr, "length is zero")
	}

	buf := C.GoBytes(unsafe.Pointer(data), C.int(length))

	s.mu.Lock()
	err := s.tr.LoadRegion(uint64(base), buf)
	s.mu.Unlock()
	if err != nil {
		return setError(err, cErr)
	}
	C.clear_error(cErr)
	return C.SLEIGH_OK
}

//export sleigh_session_use_specfile
func sleigh_session_use_specfile(sess C.sleigh_session, path *C.char, cErr *C.sleigh_error) C.sleigh_error_code {
	s := lookupSession(uint64(sess._h))
	if s == nil {
		return setInvalidHandle(cErr)
	}
	if path == nil {
		return setInvalidArgument(cErr, "path is NULL")
	}

	s.mu.Lock()
	err := s.tr.UseSpecFile(C.GoString(path))
	s.mu.Unlock()
	if err != nil {
		return setError(err, cErr)
	}
	C.clear_error(cErr)
	return C.SLEIGH_OK
}

//export sleigh_session_begin
func sleigh_session_begin(sess C.sleigh_session, cErr *C.sleigh_error) C.sleigh_error_code {
	s := lookupSession(uint64(sess._h))
	if s == nil {
		return setInvalidHandle(cErr)
	}

	s.mu.Lock()
	err := s.tr.Begin()
	s.mu.Unlock()
	if err != nil {
		return setError(err, cErr)
	}
	C.clear_error(cErr)
	return C.SLEIGH_OK
}

//export sleigh_session_reset
func sleigh_session_reset(sess C.sleigh_session, cErr *C.sleigh_error) C.sleigh_error_code {
	s := lookupSession(uint64(sess._h))
	if s == nil {
		return setInvalidHandle(cErr)
	}

	s.mu.Lock()
	err := s.tr.Reset()
	s.mu.Unlock()
	if err != nil {
		return setError(err, cErr)
	}
	C.clear_error(cErr)
	return C.SLEIGH_OK
}

//export sleigh_session_set_context_default
func sleigh_session_set_context_default(sess C.sleigh_session, name *C.char, value C.uint32_t, cErr *C.sleigh_error) C.sleigh_error_code {
	s := lookupSession(uint64(sess._h))
	if s == nil {
		return setInvalidHandle(cErr)
	}
	if name == nil {
		return setInvalidArgument(cErr, "name is NULL")
	}

	s.mu.Lock()
	err := s.tr.SetContextDefault(C.GoString(name), uint32(value))
	s.mu.Unlock()
	if err != nil {
		return setError(err, cErr)
	}
	C.clear_error(cErr)
	return C.SLEIGH_OK
}

// ==========================================================================
// Decoding
// ==========================================================================

// sleigh_session_next decodes at the session cursor and advances past
// the decoded instruction. Bytes that do not decode report
// SLEIGH_ERR_BAD_DATA and leave the cursor in place.
//
//export sleigh_session_next
func sleigh_session_next(sess C.sleigh_session, out **C.sleigh_insn, cErr *C.sleigh_error) C.sleigh_error_code {
	s := lookupSession(uint64(sess._h))
	if s == nil {
		return setInvalidHandle(cErr)
	}
	if out == nil {
		return setInvalidArgument(cErr, "out is NULL")
	}

	s.mu.Lock()
	insn, err := s.tr.Next()
	s.mu.Unlock()
	if err != nil {
		*out = nil
		return setError(err, cErr)
	}
	*out = cInsn(insn)
	C.clear_error(cErr)
	return C.SLEIGH_OK
}

// sleigh_session_lift decodes at addr without moving the session
// cursor. Bytes that do not decode are a probe miss, not a fault: the
// call returns SLEIGH_OK with *out set to NULL.
//
//export sleigh_session_lift
func sleigh_session_lift(sess C.sleigh_session, addr C.uint64_t, out **C.sleigh_insn, cErr *C.sleigh_error) C.sleigh_error_code {
	s := lookupSession(uint64(sess._h))
	if s == nil {
		return setInvalidHandle(cErr)
	}
	if out == nil {
		return setInvalidArgument(cErr, "out is NULL")
	}

	s.mu.Lock()
	insn, err := s.tr.LiftAt(uint64(addr))
	s.mu.Unlock()
	if err != nil {
		*out = nil
		if errors.Is(err, sleigh.ErrBadData) {
			C.clear_error(cErr)
			return C.SLEIGH_OK
		}
		return setError(err, cErr)
	}
	*out = cInsn(insn)
	C.clear_error(cErr)
	return C.SLEIGH_OK
}

//export sleigh_insn_free
func sleigh_insn_free(insn *C.sleigh_insn) {
	if insn == nil {
		return
	}
	if insn.mnemonic != nil {
		C.free(unsafe.Pointer(insn.mnemonic))
	}
	if insn.body != nil {
		C.free(unsafe.Pointer(insn.body))
	}
	if insn.ops != nil {
		ops := unsafe.Slice(insn.ops, int(insn.op_count))
		for i := range ops {
			if ops[i].output != nil {
				freeVarnodeFields(ops[i].output)
				C.free(unsafe.Pointer(ops[i].output))
			}
			if ops[i].inputs != nil {
				inputs := unsafe.Slice(ops[i].inputs, int(ops[i].input_count))
				for j := range inputs {
					freeVarnodeFields(&inputs[j])
				}
				C.free(unsafe.Pointer(ops[i].inputs))
			}
		}
		C.free(unsafe.Pointer(insn.ops))
	}
	C.free(unsafe.Pointer(insn))
}

// ==========================================================================
// Catalogs
// ==========================================================================

//export sleigh_session_registers
func sleigh_session_registers(sess C.sleigh_session, out **C.sleigh_registers, cErr *C.sleigh_error) C.sleigh_error_code {
	s := lookupSession(uint64(sess._h))
	if s == nil {
		return setInvalidHandle(cErr)
	}
	if out == nil {
		return setInvalidArgument(cErr, "out is NULL")
	}

	s.mu.Lock()
	regs, err := s.tr.Registers()
	s.mu.Unlock()
	if err != nil {
		*out = nil
		return setError(err, cErr)
	}
	*out = cRegisters(regs)
	C.clear_error(cErr)
	return C.SLEIGH_OK
}

//export sleigh_registers_free
func sleigh_registers_free(regs *C.sleigh_registers) {
	if regs == nil {
		return
	}
	if regs.items != nil {
		items := unsafe.Slice(regs.items, int(regs.count))
		for i := range items {
			if items[i].name != nil {
				C.free(unsafe.Pointer(items[i].name))
			}
			freeVarnodeFields(&items[i].varnode)
		}
		C.free(unsafe.Pointer(regs.items))
	}
	C.free(unsafe.Pointer(regs))
}

//export sleigh_session_user_ops
func sleigh_session_user_ops(sess C.sleigh_session, out **C.sleigh_user_ops, cErr *C.sleigh_error) C.sleigh_error_code {
	s := lookupSession(uint64(sess._h))
	if s == nil {
		return setInvalidHandle(cErr)
	}
	if out == nil {
		return setInvalidArgument(cErr, "out is NULL")
	}

	s.mu.Lock()
	names, err := s.tr.UserOps()
	s.mu.Unlock()
	if err != nil {
		*out = nil
		return setError(err, cErr)
	}
	*out = cUserOps(names)
	C.clear_error(cErr)
	return C.SLEIGH_OK
}

//export sleigh_user_ops_free
func sleigh_user_ops_free(ops *C.sleigh_user_ops) {
	if ops == nil {
		return
	}
	if ops.items != nil {
		items := unsafe.Slice(ops.items, int(ops.count))
		for i := range items {
			if items[i] != nil {
				C.free(unsafe.Pointer(items[i]))
			}
		}
		C.free(unsafe.Pointer(ops.items))
	}
	C.free(unsafe.Pointer(ops))
}

// ==========================================================================
// C struct builders
// ==========================================================================

func cVarnode(v sleigh.Varnode) C.sleigh_varnode {
	return C.sleigh_varnode{
		space:  C.CString(v.Space),
		offset: C.uint64_t(v.Offset),
		size:   C.uint64_t(v.Size),
	}
}

func freeVarnodeFields(v *C.sleigh_varnode) {
	if v.space != nil {
		C.free(unsafe.Pointer(v.space))
	}
}

func cInsn(insn *sleigh.Instruction) *C.sleigh_insn {
	ci := (*C.sleigh_insn)(C.calloc(1, C.sizeof_sleigh_insn))
	ci.address = C.uint64_t(insn.Address)
	ci.length = C.uint64_t(insn.Length)
	ci.mnemonic = C.CString(insn.Mnemonic)
	ci.body = C.CString(insn.Body)
	if n := len(insn.Ops); n > 0 {
		ci.op_count = C.size_t(n)
		ci.ops = (*C.sleigh_op)(C.calloc(C.size_t(n), C.sizeof_sleigh_op))
		ops := unsafe.Slice(ci.ops, n)
		for i, op := range insn.Ops {
			ops[i].opcode = C.int32_t(op.Opcode)
			if op.Output != nil {
				out := (*C.sleigh_varnode)(C.calloc(1, C.sizeof_sleigh_varnode))
				*out = cVarnode(*op.Output)
				ops[i].output = out
			}
			if m := len(op.Inputs); m > 0 {
				ops[i].input_count = C.size_t(m)
				ops[i].inputs = (*C.sleigh_varnode)(C.calloc(C.size_t(m), C.sizeof_sleigh_varnode))
				inputs := unsafe.Slice(ops[i].inputs, m)
				for j, in := range op.Inputs {
					inputs[j] = cVarnode(in)
				}
			}
		}
	}
	return ci
}

func cRegisters(regs []sleigh.Register) *C.sleigh_registers {
	cr := (*C.sleigh_registers)(C.calloc(1, C.sizeof_sleigh_registers))
	if n := len(regs); n > 0 {
		cr.count = C.size_t(n)
		cr.items = (*C.sleigh_register)(C.calloc(C.size_t(n), C.sizeof_sleigh_register))
		items := unsafe.Slice(cr.items, n)
		for i, r := range regs {
			items[i].name = C.CString(r.Name)
			items[i].varnode = cVarnode(r.Varnode)
		}
	}
	return cr
}

func cUserOps(names []string) *C.sleigh_user_ops {
	cu := (*C.sleigh_user_ops)(C.calloc(1, C.sizeof_sleigh_user_ops))
	if n := len(names); n > 0 {
		cu.count = C.size_t(n)
		cu.items = (**C.char)(C.calloc(C.size_t(n), C.size_t(unsafe.Sizeof((*C.char)(nil)))))
		items := unsafe.Slice(cu.items, n)
		for i, name := range names {
			items[i] = C.CString(name)
		}
	}
	return cu
}

package main

/*
#include <stdlib.h>
#include <string.h>

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

// errorCode maps a Go error to a C error code.
func errorCode(err error) C.sleigh_error_code {
	switch {
	case err == nil:
		return C.SLEIGH_OK
	case errors.Is(err, sleigh.ErrBadData):
		return C.SLEIGH_ERR_BAD_DATA
	case errors.Is(err, sleigh.ErrUnimplemented):
		return C.SLEIGH_ERR_UNIMPL
	case errors.Is(err, sleigh.ErrNotBuilt):
		return C.SLEIGH_ERR_NOT_BUILT
	case errors.Is(err, sleigh.ErrNotRunning),
		errors.Is(err, sleigh.ErrRunning),
		errors.Is(err, sleigh.ErrNoSpec),
		errors.Is(err, sleigh.ErrSpecBound),
		errors.Is(err, sleigh.ErrNoImage),
		errors.Is(err, sleigh.ErrClosed):
		return C.SLEIGH_ERR_BAD_STATE
	default:
		return C.SLEIGH_ERR_UNKNOWN
	}
}

// setError populates a sleigh_error from a Go error and returns the
// mapped code.
func setError(err error, cErr *C.sleigh_error) C.sleigh_error_code {
	if err == nil {
		C.clear_error(cErr)
		return C.SLEIGH_OK
	}
	code := errorCode(err)
	msg := C.CString(err.Error())
	C.set_error(cErr, code, msg)
	// set_error duplicates the message.
	C.free(unsafe.Pointer(msg))
	return code
}

func setInvalidHandle(cErr *C.sleigh_error) C.sleigh_error_code {
	msg := C.CString("invalid session handle")
	C.set_error(cErr, C.SLEIGH_ERR_INVALID_HANDLE, msg)
	C.free(unsafe.Pointer(msg))
	return C.SLEIGH_ERR_INVALID_HANDLE
}

func setInvalidArgument(cErr *C.sleigh_error, msg string) C.sleigh_error_code {
	cMsg := C.CString(msg)
	C.set_error(cErr, C.SLEIGH_ERR_INVALID_ARGUMENT, cMsg)
	C.free(unsafe.Pointer(cMsg))
	return C.SLEIGH_ERR_INVALID_ARGUMENT
}

// Package bindings contains the foreign-call surface to the native
// decode engine bridge (libslabridge).
//
// # Design Principles
//
// 1. Isolation: all engine FFI lives in this package. No other package
//    imports "C" for the engine; pkg/objfile holds the separate BFD
//    surface. internalcheck enforces the split.
//
// 2. Minimal Surface: expose only what the session layer needs. Don't
//    wrap every bridge function.
//
// 3. Error Handling: convert bridge status codes to Go errors
//    immediately. Sentinels (ErrBadData, ErrUnimplemented, ErrBadState)
//    let callers probe without string matching.
//
// 4. Memory Management: every bridge result is copied into Go values
//    and the native allocation freed before the call returns. Nothing
//    native outlives its call except the Manager itself.
//
// 5. No Callbacks: the bridge never calls back into Go. The loader
//    image is handed over region by region instead.
//
// # Backends
//
// Three mutually exclusive backends implement the same functions: a
// cgo link against libslabridge, a purego dlopen of the same library
// for cgo-free builds on unix-likes, and a stub that returns
// ErrNotBuilt everywhere else.
//
// # Memory Layout
//
// Sessions are opaque handles (Manager, a uintptr). The native pointer
// never escapes this package.
//
// # Threading
//
// The native engine is NOT thread-safe. Callers must ensure proper
// synchronization per Manager.
package bindings

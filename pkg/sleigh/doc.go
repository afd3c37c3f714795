// Package sleigh exposes a Go API over the SLEIGH instruction decoding
// engine. The engine consumes a compiled processor specification (.sla
// file) and turns raw instruction bytes into assembly text plus p-code,
// the engine's register-transfer micro-operations.
//
// The package contributes marshalling, lifetime management, a memory image
// adapter, and session management; instruction-set semantics always come
// from the native engine reached through internal bindings.
//
// # Sessions
//
// A Translator owns one decoding session. Regions of program memory are
// registered first, then a spec file is bound and the session started:
//
//	tr, err := sleigh.New(sleigh.Config{})
//	if err != nil {
//	    // native engine not linked into this binary
//	}
//	defer tr.Close()
//
//	tr.LoadRegion(0x400000, code)
//	tr.UseSpecFile("x86-64.sla")
//	tr.Begin()
//
//	for {
//	    insn, err := tr.Next()
//	    if err != nil {
//	        break
//	    }
//	    fmt.Printf("%#x: %s %s\n", insn.Address, insn.Mnemonic, insn.Body)
//	}
//
// Every decode call returns a fresh *Instruction owned by the caller;
// results never alias session state and never need explicit release.
//
// # Probing
//
// LiftAt decodes at an arbitrary address without moving the session
// cursor. Addresses that do not decode report ErrBadData, which makes
// sweep-style probing cheap:
//
//	if _, err := tr.LiftAt(addr); errors.Is(err, sleigh.ErrBadData) {
//	    // not an instruction boundary
//	}
//
// # Backends
//
// The default engine requires the native bridge library. Binaries built
// without it get ErrNotBuilt from New; tests and downstream callers can
// substitute any Engine implementation (see the mocksla subpackage)
// through Config.Engine.
//
// A Translator is not safe for concurrent use. Callers that share one
// across goroutines must provide their own synchronization.
package sleigh

// Package mocksla provides a scripted engine implementation for testing and examples.
//
// Mocksla implements the sleigh.Engine interface with preloaded decode
// results, allowing translator and session tests to run without the native
// bridge library. Tests script an instruction (or an error) per address
// and hand the engine to sleigh.New; the recorded call journal then backs
// assertions on what the translator did.
//
// # Features
//
//   - Per-address scripting of instructions and decode errors
//   - ScriptProgram lays out contiguous runs from instruction lengths
//   - Unscripted addresses decode to sleigh.ErrBadData, like real holes
//   - Records every LoadRegion, spec bind, Begin, Reset, and Close
//   - Thread-safe concurrent operations
//   - No native bridge required (pure Go)
//
// # Usage
//
// Script a program and walk it through a translator:
//
//	import (
//	    "github.com/lockbox/sleigh-go/pkg/sleigh"
//	    "github.com/lockbox/sleigh-go/pkg/sleigh/mocksla"
//	)
//
//	eng := mocksla.New()
//	eng.ScriptProgram(0x1000, []sleigh.Instruction{
//	    {Length: 1, Mnemonic: "PUSH", Body: "RBP"},
//	    {Length: 3, Mnemonic: "MOV", Body: "RBP,RSP"},
//	})
//
//	tr, _ := sleigh.New(sleigh.Config{Engine: eng})
//	defer tr.Close()
//	_ = tr.UseSpecFile("x86-64.sla")
//	_ = tr.Begin()
//
//	insn, _ := tr.Next() // PUSH at 0x1000
//	insn, _ = tr.Next()  // MOV at 0x1001
//
// Recorded calls back the assertions:
//
//	eng.SpecPath()            // "x86-64.sla"
//	eng.Loads()               // every LoadRegion in order
//	eng.ContextDefault("opsize")
//
// # Limitations
//
// Mocksla is designed for testing and examples only:
//   - No real decoding; results are whatever the test scripted
//   - No pcode generation beyond the scripted operations
//   - Not suitable for lifting actual machine code
//
// For real decoding, build the bridge library and use sleigh.NewNativeEngine,
// or let sleigh.New construct it by leaving Config.Engine nil.
package mocksla

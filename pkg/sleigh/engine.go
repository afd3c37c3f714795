package sleigh

// Engine is the decoding backend a Translator drives. The default
// implementation binds the native decode library; the mocksla subpackage
// provides a scripted in-memory implementation for tests.
//
// Engines hold the authoritative copy of loaded memory and spec state.
// Call order is enforced by the Translator, not the Engine; custom
// implementations may assume LoadRegion/SetSpecFile/Begin arrive in a
// legal order.
type Engine interface {
	// LoadRegion registers program bytes at the given address.
	LoadRegion(base uint64, data []byte) error

	// SetSpecFile binds the compiled processor spec document.
	SetSpecFile(path string) error

	// Begin initializes the engine with the bound spec. Regions loaded
	// afterwards are still visible to subsequent decodes.
	Begin() error

	// Reset reinitializes the engine, keeping loaded regions, the bound
	// spec, and context defaults.
	Reset() error

	// Lift decodes the instruction at addr. Undecodable bytes report
	// ErrBadData; decodable instructions without semantics report
	// ErrUnimplemented.
	Lift(addr uint64) (*Instruction, error)

	// SetContextDefault sets the global default of a context variable
	// declared by the spec, for example "addrsize" or "opsize".
	SetContextDefault(name string, value uint32) error

	// Registers returns the spec's register catalog.
	Registers() ([]Register, error)

	// UserOps returns the spec's user-defined operation names, indexed
	// by the pseudo-op number CALLOTHER carries in its first input.
	UserOps() ([]string, error)

	// Close releases backend resources. Close is idempotent.
	Close() error
}

//go:build (cgo && windows) || (!cgo && !((linux || darwin || freebsd) && (amd64 || arm64)))

package bindings

// Stub implementations for platforms with neither a cgo link against
// the bridge nor a loadable shared library. These allow the package to
// compile but return ErrNotBuilt when called.

func Available() bool { return false }

func Version() string { return "" }

func NewManager() (Manager, error) { return 0, ErrNotBuilt }

func FreeManager(Manager) {}

func LoadRegion(Manager, uint64, []byte) error { return ErrNotBuilt }

func SetSpecFile(Manager, string) error { return ErrNotBuilt }

func Begin(Manager) error { return ErrNotBuilt }

func Reset(Manager) error { return ErrNotBuilt }

func SetContextDefault(Manager, string, uint32) error { return ErrNotBuilt }

func Lift(Manager, uint64) (*Insn, error) { return nil, ErrNotBuilt }

func Registers(Manager) ([]Register, error) { return nil, ErrNotBuilt }

func UserOps(Manager) ([]string, error) { return nil, ErrNotBuilt }

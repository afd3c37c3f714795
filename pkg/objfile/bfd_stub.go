//go:build !cgo || windows

package objfile

// Stub implementations for builds without the BFD library. The ELF
// reader in this package remains available.

// Available reports whether the BFD backend is linked in.
func Available() bool { return false }

// Open reports ErrNotBuilt; use OpenELF instead.
func Open(string) (*File, error) { return nil, ErrNotBuilt }

// Targets reports ErrNotBuilt.
func Targets() ([]string, error) { return nil, ErrNotBuilt }

package sleigh

import "github.com/lockbox/sleigh-go/internal/bindings"

// Version is the wrapper's semantic version, populated at build time via
// ldflags. In development it defaults to v0.0.0-dev.
var Version = "v0.0.0-dev"

// WrapperVersion returns the version of this Go wrapper.
func WrapperVersion() string {
	return Version
}

// EngineVersion returns the version string reported by the native decode
// library, or "unknown" when the library is not linked in.
func EngineVersion() string {
	if v := bindings.Version(); v != "" {
		return v
	}
	return "unknown"
}

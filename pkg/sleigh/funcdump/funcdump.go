// Package funcdump loads function dumps produced by the companion
// analyzer script: a JSON array of functions, each carrying its name,
// entry address, and raw bytes as a hex string.
package funcdump

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lockbox/sleigh-go/pkg/sleigh/image"
)

// Function is one dumped function.
type Function struct {
	// Name as the analyzer reported it, possibly mangled.
	Name string
	// Base is the entry-point address of the function.
	Base uint64
	// Data holds the function bytes starting at Base.
	Data []byte
}

// Region returns the function bytes as a loadable image region.
func (f *Function) Region() image.Region {
	return image.Region{Base: f.Base, Data: f.Data}
}

// Functions is a parsed dump in file order.
type Functions []Function

// Find returns the first function with the given name.
func (fns Functions) Find(name string) (*Function, bool) {
	for i := range fns {
		if fns[i].Name == name {
			return &fns[i], true
		}
	}
	return nil, false
}

// Names returns the function names in file order.
func (fns Functions) Names() []string {
	names := make([]string, len(fns))
	for i := range fns {
		names[i] = fns[i].Name
	}
	return names
}

// rawFunction matches the dump schema. Pointer fields distinguish a
// missing key from a zero value.
type rawFunction struct {
	Name *string      `json:"name"`
	Base *json.Number `json:"base_address"`
	Data *string      `json:"data"`
}

// Decode parses a dump from r.
func Decode(r io.Reader) (Functions, error) {
	var raw []rawFunction
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("funcdump: parse: %w", err)
	}

	fns := make(Functions, 0, len(raw))
	for i, rf := range raw {
		if rf.Name == nil {
			return nil, fmt.Errorf("funcdump: entry %d: missing name", i)
		}
		if rf.Base == nil {
			return nil, fmt.Errorf("funcdump: entry %d (%s): missing base_address", i, *rf.Name)
		}
		if rf.Data == nil {
			return nil, fmt.Errorf("funcdump: entry %d (%s): missing data", i, *rf.Name)
		}
		base, err := parseBase(*rf.Base)
		if err != nil {
			return nil, fmt.Errorf("funcdump: entry %d (%s): %w", i, *rf.Name, err)
		}
		data, err := hex.DecodeString(*rf.Data)
		if err != nil {
			return nil, fmt.Errorf("funcdump: entry %d (%s): data: %w", i, *rf.Name, err)
		}
		fns = append(fns, Function{Name: *rf.Name, Base: base, Data: data})
	}
	return fns, nil
}

// Load reads and parses the dump file at path.
func Load(path string) (Functions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("funcdump: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// parseBase reads an entry address. The dump script writes Java longs,
// so addresses at or above 2^63 arrive as negative numbers.
func parseBase(n json.Number) (uint64, error) {
	if v, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return v, nil
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("base_address %q is not an integer", n.String())
	}
	return uint64(v), nil
}

// Package objfile inspects object files: their format, entry point, and
// section layout. The primary backend wraps the system BFD library and
// understands every format that library was built with; a pure-Go ELF
// reader covers binaries built without it.
package objfile

import (
	"errors"
	"strings"

	"github.com/lockbox/sleigh-go/pkg/sleigh/image"
)

// ErrNotBuilt reports that the BFD backend is not linked into this
// binary. OpenELF remains available.
var ErrNotBuilt = errors.New("objfile: BFD backend not built")

// SectionFlag is a bitmask describing section placement and contents.
type SectionFlag uint32

const (
	// FlagAlloc marks sections that occupy memory at run time.
	FlagAlloc SectionFlag = 1 << iota
	// FlagLoad marks sections whose contents load from the file.
	FlagLoad
	// FlagReadOnly marks sections mapped without write access.
	FlagReadOnly
	// FlagCode marks executable sections.
	FlagCode
	// FlagData marks initialized data sections.
	FlagData
)

var flagNames = []struct {
	flag SectionFlag
	name string
}{
	{FlagAlloc, "ALLOC"},
	{FlagLoad, "LOAD"},
	{FlagReadOnly, "READONLY"},
	{FlagCode, "CODE"},
	{FlagData, "DATA"},
}

// Has reports whether every bit of mask is set.
func (f SectionFlag) Has(mask SectionFlag) bool { return f&mask == mask }

func (f SectionFlag) String() string {
	if f == 0 {
		return "NONE"
	}
	parts := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Section is one section of an object file.
type Section struct {
	Name  string
	Addr  uint64
	Size  uint64
	Flags SectionFlag
	// Index is the backend's section number.
	Index int
	// Data holds the contents of sections the file carries; nil for
	// bss-like sections.
	Data []byte
}

// File is a parsed object file. All fields are plain Go values; the
// backend handle is released before Open returns.
type File struct {
	Path      string
	Format    string
	StartAddr uint64
	Sections  []Section
}

// Section returns the first section with the given name.
func (f *File) Section(name string) (*Section, bool) {
	for i := range f.Sections {
		if f.Sections[i].Name == name {
			return &f.Sections[i], true
		}
	}
	return nil, false
}

// CodeRegions returns the executable sections as loadable image
// regions, in section order.
func (f *File) CodeRegions() []image.Region {
	var regions []image.Region
	for i := range f.Sections {
		s := &f.Sections[i]
		if !s.Flags.Has(FlagAlloc|FlagCode) || len(s.Data) == 0 {
			continue
		}
		regions = append(regions, image.Region{Base: s.Addr, Data: s.Data})
	}
	return regions
}

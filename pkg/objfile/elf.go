package objfile

import (
	"debug/elf"
	"fmt"
	"io"
	"strings"
)

// OpenELF parses the file at path with the pure-Go ELF reader. It
// produces the same File shape as Open and works in every build.
func OpenELF(path string) (*File, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objfile: %w", err)
	}
	defer f.Close()

	out, err := elfFile(f)
	if err != nil {
		return nil, err
	}
	out.Path = path
	return out, nil
}

// NewELF parses an ELF image from r.
func NewELF(r io.ReaderAt) (*File, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, fmt.Errorf("objfile: %w", err)
	}
	return elfFile(f)
}

func elfFile(f *elf.File) (*File, error) {
	out := &File{
		Format:    elfFormat(f),
		StartAddr: f.Entry,
	}
	for i, s := range f.Sections {
		if s.Type == elf.SHT_NULL {
			continue
		}
		sec := Section{
			Name:  s.Name,
			Addr:  s.Addr,
			Size:  s.Size,
			Flags: elfFlags(s),
			Index: i,
		}
		if sec.Flags.Has(FlagLoad) && s.Size > 0 {
			data, err := s.Data()
			if err != nil {
				return nil, fmt.Errorf("objfile: section %s: %w", s.Name, err)
			}
			sec.Data = data
		}
		out.Sections = append(out.Sections, sec)
	}
	return out, nil
}

// elfFlags maps section header bits onto the package's flag model, with
// the same meaning the BFD backend reports for ELF inputs.
func elfFlags(s *elf.Section) SectionFlag {
	var f SectionFlag
	if s.Flags&elf.SHF_ALLOC != 0 {
		f |= FlagAlloc
		if s.Type != elf.SHT_NOBITS {
			f |= FlagLoad
		}
		if s.Flags&elf.SHF_WRITE == 0 {
			f |= FlagReadOnly
		}
	}
	if s.Flags&elf.SHF_EXECINSTR != 0 {
		f |= FlagCode
	} else if s.Flags&elf.SHF_ALLOC != 0 && s.Type == elf.SHT_PROGBITS {
		f |= FlagData
	}
	return f
}

var elfMachineNames = map[elf.Machine]string{
	elf.EM_X86_64:  "x86-64",
	elf.EM_386:     "i386",
	elf.EM_AARCH64: "aarch64",
	elf.EM_ARM:     "arm",
	elf.EM_RISCV:   "riscv",
	elf.EM_PPC64:   "powerpc64",
	elf.EM_MIPS:    "mips",
	elf.EM_S390:    "s390",
}

func elfFormat(f *elf.File) string {
	class := "32"
	if f.Class == elf.ELFCLASS64 {
		class = "64"
	}
	name := elfMachineNames[f.Machine]
	if name == "" {
		name = strings.ToLower(strings.TrimPrefix(f.Machine.String(), "EM_"))
	}
	return "elf" + class + "-" + name
}

//go:build cgo && !windows

package objfile

/*
#cgo LDFLAGS: -lbfd

#include <stdlib.h>
#include <stdint.h>

// binutils ships bfd.h behind a config.h guard; defining the PACKAGE
// macros is the sanctioned way to include it standalone.
#ifndef PACKAGE
#define PACKAGE "sleigh-go"
#define PACKAGE_VERSION "0"
#include <bfd.h>
#undef PACKAGE
#undef PACKAGE_VERSION
#else
#include <bfd.h>
#endif

// bfd's boolean type changed across binutils releases; route every call
// with a boolean result through helpers with fixed C types. Section
// attributes come straight off the struct, which is stable, unlike the
// accessor macros.
static int go_bfd_check_object(bfd *abfd) {
	return bfd_check_format(abfd, bfd_object) ? 1 : 0;
}
static int go_bfd_section_contents(bfd *abfd, struct bfd_section *s, void *buf, uint64_t n) {
	return bfd_get_section_contents(abfd, s, buf, 0, (bfd_size_type)n) ? 1 : 0;
}
static const char *go_bfd_format_name(bfd *abfd) { return abfd->xvec->name; }
static uint64_t go_bfd_start_address(bfd *abfd) { return (uint64_t)bfd_get_start_address(abfd); }
static uint64_t go_bfd_section_count(bfd *abfd) { return (uint64_t)bfd_count_sections(abfd); }
static struct bfd_section *go_bfd_first_section(bfd *abfd) { return abfd->sections; }
static struct bfd_section *go_bfd_section_next(struct bfd_section *s) { return s->next; }
static const char *go_bfd_section_name(struct bfd_section *s) { return s->name; }
static uint64_t go_bfd_section_vma(struct bfd_section *s) { return (uint64_t)s->vma; }
static uint64_t go_bfd_section_size(struct bfd_section *s) { return (uint64_t)s->size; }
static unsigned int go_bfd_section_flags(struct bfd_section *s) { return (unsigned int)s->flags; }
static int go_bfd_section_index(struct bfd_section *s) { return s->index; }
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

var bfdOnce sync.Once

func bfdInit() {
	bfdOnce.Do(func() { C.bfd_init() })
}

// Available reports whether the BFD backend is linked in.
func Available() bool { return true }

func bfdErr(op, path string) error {
	msg := C.GoString(C.bfd_errmsg(C.bfd_get_error()))
	return fmt.Errorf("objfile: %s %s: %s", op, path, msg)
}

// Open parses the object file at path through BFD, auto-detecting its
// format. The returned File owns no native state.
func Open(path string) (*File, error) {
	bfdInit()

	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	abfd := C.bfd_openr(cPath, nil)
	if abfd == nil {
		return nil, bfdErr("open", path)
	}
	defer C.bfd_close(abfd)

	if C.go_bfd_check_object(abfd) == 0 {
		return nil, bfdErr("detect format of", path)
	}

	f := &File{
		Path:      path,
		Format:    C.GoString(C.go_bfd_format_name(abfd)),
		StartAddr: uint64(C.go_bfd_start_address(abfd)),
	}
	f.Sections = make([]Section, 0, int(C.go_bfd_section_count(abfd)))
	for s := C.go_bfd_first_section(abfd); s != nil; s = C.go_bfd_section_next(s) {
		sec := Section{
			Name:  C.GoString(C.go_bfd_section_name(s)),
			Addr:  uint64(C.go_bfd_section_vma(s)),
			Size:  uint64(C.go_bfd_section_size(s)),
			Flags: bfdFlags(uint32(C.go_bfd_section_flags(s))),
			Index: int(C.go_bfd_section_index(s)),
		}
		if sec.Flags.Has(FlagLoad) && sec.Size > 0 {
			buf := make([]byte, sec.Size)
			if C.go_bfd_section_contents(abfd, s, unsafe.Pointer(&buf[0]), C.uint64_t(sec.Size)) == 0 {
				return nil, bfdErr("read section "+sec.Name+" of", path)
			}
			sec.Data = buf
		}
		f.Sections = append(f.Sections, sec)
	}
	return f, nil
}

// Targets returns the names of every object format this BFD build
// understands.
func Targets() ([]string, error) {
	bfdInit()

	list := C.bfd_target_list()
	if list == nil {
		return nil, fmt.Errorf("objfile: target list unavailable")
	}
	defer C.free(unsafe.Pointer(list))

	var names []string
	for i := uintptr(0); ; i++ {
		p := *(**C.char)(unsafe.Add(unsafe.Pointer(list), i*unsafe.Sizeof((*C.char)(nil))))
		if p == nil {
			break
		}
		names = append(names, C.GoString(p))
	}
	return names, nil
}

func bfdFlags(raw uint32) SectionFlag {
	var f SectionFlag
	if raw&C.SEC_ALLOC != 0 {
		f |= FlagAlloc
	}
	if raw&C.SEC_LOAD != 0 {
		f |= FlagLoad
	}
	if raw&C.SEC_READONLY != 0 {
		f |= FlagReadOnly
	}
	if raw&C.SEC_CODE != 0 {
		f |= FlagCode
	}
	if raw&C.SEC_DATA != 0 {
		f |= FlagData
	}
	return f
}

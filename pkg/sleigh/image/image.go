package image

// Region is one registered chunk of program memory. Regions are immutable
// once added to an Image.
type Region struct {
	// Base is the load address of the first byte in Data.
	Base uint64
	// Data holds the region contents.
	Data []byte
}

// Contains reports whether addr falls inside this region.
func (r Region) Contains(addr uint64) bool {
	return addr >= r.Base && addr < r.Base+uint64(len(r.Data))
}

// End returns the address immediately after the last byte in this region.
func (r Region) End() uint64 {
	return r.Base + uint64(len(r.Data))
}

// Image presents a set of registered regions as a single logical address
// space. Addresses between regions read as zero. Regions may overlap; the
// region registered first wins for every address it covers.
//
// An Image is append-only: regions cannot be removed or resized.
type Image struct {
	regions []Region
	min     uint64
	max     uint64
}

// New returns an empty Image.
func New() *Image {
	return &Image{min: ^uint64(0)}
}

// AddRegion registers data at the given base address. The bytes are copied,
// so the caller may reuse the slice afterwards.
func (im *Image) AddRegion(base uint64, data []byte) {
	buf := make([]byte, len(data))
	copy(buf, data)
	im.regions = append(im.regions, Region{Base: base, Data: buf})

	if base < im.min {
		im.min = base
	}
	if end := base + uint64(len(data)); end > im.max {
		im.max = end
	}
}

// Len returns the number of registered regions.
func (im *Image) Len() int { return len(im.regions) }

// Empty reports whether no regions have been registered.
func (im *Image) Empty() bool { return len(im.regions) == 0 }

// Min returns the lowest mapped address. On an empty Image it returns the
// maximum uint64 value.
func (im *Image) Min() uint64 { return im.min }

// Max returns the address one past the highest mapped byte, or zero on an
// empty Image.
func (im *Image) Max() uint64 { return im.max }

// Base returns the lowest base address across all regions. It is the default
// starting point for sequential decoding. On an empty Image it returns the
// maximum uint64 value.
func (im *Image) Base() uint64 { return im.min }

// Regions returns a snapshot of the registered regions in registration
// order. The region data is shared, not copied.
func (im *Image) Regions() []Region {
	out := make([]Region, len(im.regions))
	copy(out, im.regions)
	return out
}

// ReadFill fills buf with the bytes visible at addr. Bytes covered by a
// region come from that region; bytes covered by no region are written as
// zero. When addr is strictly greater than Max the call returns immediately
// and buf is left untouched.
func (im *Image) ReadFill(addr uint64, buf []byte) {
	if addr > im.max {
		return
	}
	filled := 0
	for filled < len(buf) {
		cur := addr + uint64(filled)
		r, ok := im.find(cur)
		if !ok {
			buf[filled] = 0
			filled++
			continue
		}
		// Copy through the end of the owning region, then rescan.
		filled += copy(buf[filled:], r.Data[cur-r.Base:])
	}
}

func (im *Image) find(addr uint64) (Region, bool) {
	for _, r := range im.regions {
		if r.Contains(addr) {
			return r, true
		}
	}
	return Region{}, false
}

package funcdump

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample mirrors the analyzer script's pretty-printed output.
const sample = `[
  {
    "name": "_start",
    "base_address": 4198400,
    "data": "F30F1EFA31ED"
  },
  {
    "name": "_Z3addii",
    "base_address": 4198416,
    "data": "8D0437C3"
  }
]`

func TestDecode(t *testing.T) {
	fns, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, fns, 2)

	assert.Equal(t, "_start", fns[0].Name)
	assert.Equal(t, uint64(0x401000), fns[0].Base)
	assert.Equal(t, []byte{0xf3, 0x0f, 0x1e, 0xfa, 0x31, 0xed}, fns[0].Data)

	assert.Equal(t, "_Z3addii", fns[1].Name)
	assert.Equal(t, uint64(0x401010), fns[1].Base)
	assert.Equal(t, []byte{0x8d, 0x04, 0x37, 0xc3}, fns[1].Data)
}

func TestDecodeOddHex(t *testing.T) {
	_, err := Decode(strings.NewReader(`[{"name":"f","base_address":1,"data":"8D043"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data")
}

func TestDecodeLowercaseHex(t *testing.T) {
	fns, err := Decode(strings.NewReader(`[{"name":"f","base_address":16,"data":"c3"}]`))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc3}, fns[0].Data)
}

func TestDecodeNegativeBase(t *testing.T) {
	// Entry addresses past 2^63 come out of the dump script as negative
	// Java longs.
	fns, err := Decode(strings.NewReader(
		`[{"name":"interrupt_entry","base_address":-9223372036854775808,"data":"90"}]`))
	require.NoError(t, err)
	assert.Equal(t, uint64(0x8000000000000000), fns[0].Base)
}

func TestDecodeMissingFields(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"name", `[{"base_address":1,"data":"90"}]`, "missing name"},
		{"base", `[{"name":"f","data":"90"}]`, "missing base_address"},
		{"data", `[{"name":"f","base_address":1}]`, "missing data"},
		{"float base", `[{"name":"f","base_address":1.5,"data":"90"}]`, "not an integer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"name": "not an array"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "funcdump: parse")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "functions.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	fns, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, fns, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	fns := Functions{
		{Name: "a", Base: 1},
		{Name: "b", Base: 2},
		{Name: "a", Base: 3},
	}

	f, ok := fns.Find("b")
	require.True(t, ok)
	assert.Equal(t, uint64(2), f.Base)

	// First match wins for duplicate names.
	f, ok = fns.Find("a")
	require.True(t, ok)
	assert.Equal(t, uint64(1), f.Base)

	_, ok = fns.Find("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b", "a"}, fns.Names())
}

func TestRegion(t *testing.T) {
	f := &Function{Name: "f", Base: 0x401000, Data: []byte{0x55, 0xc3}}
	r := f.Region()
	assert.Equal(t, uint64(0x401000), r.Base)
	assert.Equal(t, []byte{0x55, 0xc3}, r.Data)
	assert.Equal(t, uint64(0x401002), r.End())
	assert.True(t, r.Contains(0x401001))
	assert.False(t, r.Contains(0x401002))
}

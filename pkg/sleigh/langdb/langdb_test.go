package langdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
languages:
  - id: x86:LE:64:default
    description: Intel/AMD 64-bit
    specfile: x86-64.sla
    context:
      addrsize: 2
      opsize: 1
  - id: ARM:LE:32:v8
    description: ARM v8 little endian
    specfile: ARM8_le.sla
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, c.Languages, 2)

	assert.Equal(t, []string{"x86:LE:64:default", "ARM:LE:32:v8"}, c.IDs())

	l, ok := c.Find("x86:LE:64:default")
	require.True(t, ok)
	assert.Equal(t, "x86-64.sla", l.SpecFile)
	assert.Equal(t, uint32(2), l.Context["addrsize"])
	assert.Equal(t, uint32(1), l.Context["opsize"])
	assert.Equal(t, []string{"addrsize", "opsize"}, l.ContextNames())

	l, ok = c.Find("ARM:LE:32:v8")
	require.True(t, ok)
	assert.Empty(t, l.Context)
	assert.Empty(t, l.ContextNames())

	_, ok = c.Find("MIPS:BE:32:default")
	assert.False(t, ok)
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"missing id",
			"languages:\n  - specfile: a.sla\n",
			"missing id",
		},
		{
			"missing specfile",
			"languages:\n  - id: a\n",
			"missing specfile",
		},
		{
			"duplicate id",
			"languages:\n  - id: a\n    specfile: a.sla\n  - id: a\n    specfile: b.sla\n",
			"duplicate id",
		},
		{
			"non-numeric context value",
			"languages:\n  - id: a\n    specfile: a.sla\n    context:\n      opsize: wide\n",
			"parse",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Languages, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestResolveSpec(t *testing.T) {
	specs := t.TempDir()
	other := t.TempDir()
	specPath := filepath.Join(specs, "x86-64.sla")
	require.NoError(t, os.WriteFile(specPath, []byte("sleigh"), 0o644))

	l := &Language{ID: "x86:LE:64:default", SpecFile: "x86-64.sla"}

	// Search directories are tried in order.
	got, err := l.ResolveSpec(other, specs)
	require.NoError(t, err)
	assert.Equal(t, specPath, got)

	_, err = l.ResolveSpec(other)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	// Absolute specfile paths bypass the search path.
	abs := &Language{ID: "abs", SpecFile: specPath}
	got, err = abs.ResolveSpec()
	require.NoError(t, err)
	assert.Equal(t, specPath, got)

	missing := &Language{ID: "gone", SpecFile: filepath.Join(specs, "gone.sla")}
	_, err = missing.ResolveSpec()
	require.Error(t, err)
}

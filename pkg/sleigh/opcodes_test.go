package sleigh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpCodeNames(t *testing.T) {
	assert.Equal(t, "COPY", OpCopy.String())
	assert.Equal(t, "LOAD", OpLoad.String())
	assert.Equal(t, "STORE", OpStore.String())
	assert.Equal(t, "INT_ADD", OpIntAdd.String())
	assert.Equal(t, "INT_SLESS", OpIntSLess.String())
	assert.Equal(t, "FLOAT_FLOAT2FLOAT", OpFloatFloat2Float.String())
	assert.Equal(t, "CALLOTHER", OpCallOther.String())
	assert.Equal(t, "POPCOUNT", OpPopCount.String())
	assert.Equal(t, "LZCOUNT", OpLzCount.String())
}

func TestOpCodeValid(t *testing.T) {
	assert.False(t, OpCode(0).Valid())
	assert.False(t, OpCode(opMax).Valid())
	assert.False(t, OpCode(-1).Valid())
	assert.False(t, OpCode(999).Valid())

	// Slot 45 is the engine's retired opcode number.
	assert.False(t, OpCode(45).Valid())

	for c := OpCode(1); c < opMax; c++ {
		if c == 45 {
			continue
		}
		assert.True(t, c.Valid(), "opcode %d", c)
	}
}

func TestOpCodeNamesUnique(t *testing.T) {
	seen := make(map[string]OpCode)
	for c := OpCode(1); c < opMax; c++ {
		name := opcodeNames[c]
		if name == "" {
			continue
		}
		prev, dup := seen[name]
		require.False(t, dup, "name %q used by %d and %d", name, prev, c)
		seen[name] = c
	}
}

func TestOpCodeStringFallback(t *testing.T) {
	assert.Equal(t, "OpCode(999)", OpCode(999).String())
	assert.Equal(t, "OpCode(45)", OpCode(45).String())
	assert.Equal(t, "OpCode(0)", OpCode(0).String())
}

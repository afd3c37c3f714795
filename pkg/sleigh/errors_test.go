package sleigh

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockbox/sleigh-go/internal/bindings"
)

func TestRemapError(t *testing.T) {
	assert.NoError(t, remapError(nil))
	assert.ErrorIs(t, remapError(bindings.ErrBadData), ErrBadData)
	assert.ErrorIs(t, remapError(bindings.ErrUnimplemented), ErrUnimplemented)
	assert.ErrorIs(t, remapError(bindings.ErrBadState), ErrNotRunning)

	// Wrapped bindings errors still remap.
	wrapped := fmt.Errorf("lift at %#x: %w", 0x1000, bindings.ErrBadData)
	assert.ErrorIs(t, remapError(wrapped), ErrBadData)

	// Unrelated errors pass through untouched.
	other := errors.New("boom")
	assert.Equal(t, other, remapError(other))
}

func TestOpErr(t *testing.T) {
	err := opErr("Begin", ErrNoSpec)
	assert.EqualError(t, err, "sleigh.Begin: sleigh: no spec file bound")
	assert.ErrorIs(t, err, ErrNoSpec)

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Begin", serr.Op)
}

func TestErrNotBuiltAlias(t *testing.T) {
	assert.ErrorIs(t, ErrNotBuilt, bindings.ErrNotBuilt)
}

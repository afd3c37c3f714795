package sleigh_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lockbox/sleigh-go/pkg/sleigh"
)

func TestNativeEngine(t *testing.T) {
	if !sleigh.NativeAvailable() {
		// Without the bridge library the native constructor and the
		// default-engine path both report ErrNotBuilt.
		_, err := sleigh.NewNativeEngine()
		require.ErrorIs(t, err, sleigh.ErrNotBuilt)

		_, err = sleigh.New(sleigh.Config{})
		require.ErrorIs(t, err, sleigh.ErrNotBuilt)
		return
	}

	eng, err := sleigh.NewNativeEngine()
	require.NoError(t, err)
	require.NoError(t, eng.Close())
	require.NoError(t, eng.Close())
}

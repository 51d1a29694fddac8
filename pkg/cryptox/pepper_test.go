package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreatePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := cryptox.LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := cryptox.LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrCreatePepper_EmptyPathDisablesPepper(t *testing.T) {
	pepper, err := cryptox.LoadOrCreatePepper("")
	require.NoError(t, err)
	require.Empty(t, pepper)
}

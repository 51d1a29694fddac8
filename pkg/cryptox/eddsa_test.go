package cryptox_test

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateEd25519Key(t *testing.T) {
	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	block, _ := pem.Decode(pemBytes)
	require.NotNil(t, block)
	require.Equal(t, "PRIVATE KEY", block.Type)

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	require.NoError(t, err)

	key, ok := parsed.(ed25519.PrivateKey)
	require.True(t, ok)
	require.Len(t, key, ed25519.PrivateKeySize)
}

func TestLoadOrCreateEd25519Key(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "signing.pem")

	created, fresh, err := cryptox.LoadOrCreateEd25519Key(path)
	require.NoError(t, err)
	require.True(t, fresh)

	loaded, fresh, err := cryptox.LoadOrCreateEd25519Key(path)
	require.NoError(t, err)
	require.False(t, fresh)
	require.Equal(t, created, loaded)
}

package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewEphemeralKeyManager(t *testing.T) {
	tests := []struct {
		name    string
		numKeys int
		want    int
	}{
		{"default", 0, 1},
		{"three keys", 3, 3},
		{"capped", 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: exampleIssuer, NumKeys: tt.numKeys})
			require.NoError(t, err)
			require.True(t, km.IsReady())
			require.Equal(t, tt.want, km.NumSigners())
			require.Len(t, km.KeySet.PublicJWKS().Keys, tt.want)
			require.Equal(t, jwtx.AlgorithmEdDSA, km.Algorithm())
		})
	}
}

func TestKeyManager_RequiresIssuer(t *testing.T) {
	_, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{})
	require.Error(t, err)
}

func TestKeyManager_EverySignerVerifies(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: exampleIssuer, NumKeys: 3})
	require.NoError(t, err)

	for range 20 {
		tok, err := km.GetSigner().Sign(jwtx.NewSessionClaims("bob", []string{"CLIENT"}, time.Minute, exampleIssuer, time.Now().UTC()))
		require.NoError(t, err)
		claims, err := km.Verifier.Verify(tok)
		require.NoError(t, err)
		require.Equal(t, "bob", claims.Subject)
	}
}

func TestKeyManagerFromPEM_SurvivesRestart(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	before, err := jwtx.NewKeyManagerFromPEM(jwtx.KeyManagerOptions{Issuer: exampleIssuer}, pemKey)
	require.NoError(t, err)
	tok, err := before.GetSigner().Sign(jwtx.NewSessionClaims("carol", nil, time.Minute, exampleIssuer, time.Now().UTC()))
	require.NoError(t, err)

	after, err := jwtx.NewKeyManagerFromPEM(jwtx.KeyManagerOptions{Issuer: exampleIssuer}, pemKey)
	require.NoError(t, err)
	_, err = after.Verifier.Verify(tok)
	require.NoError(t, err)
}

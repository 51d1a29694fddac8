//go:build e2e

package identity_test

import (
	"testing"

	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies the probes and the published key set.
func TestHealthEndpoints(t *testing.T) {
	s := setupIdentityContainer(t, nil)
	client := authsdk.NewSDKClient(s.baseURL)

	live, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.NotEmpty(t, live.Version)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)
	require.Equal(t, "ok", ready.Checks.Cache)

	jwks, err := client.GetJWKS(t.Context())
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "EdDSA", jwks.Keys[0].Alg)
}

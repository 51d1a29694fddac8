package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "identity-test"

func TestNewSessionClaims(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	c := jwtx.NewSessionClaims("alice", []string{"CLIENT"}, 10*time.Minute, exampleIssuer, now)

	require.Equal(t, "alice", c.Subject)
	require.Equal(t, exampleIssuer, c.Issuer)
	require.Equal(t, []string{"CLIENT"}, c.Roles)
	require.Equal(t, now, c.IssuedAt.Time)
	require.Equal(t, now.Add(10*time.Minute), c.ExpiresAt.Time)
	require.NotEmpty(t, c.ID)
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "identity"}}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("identity"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("someone-else"), jwtx.ErrIssuer)
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		}}
		require.NoError(t, c.ValidateExpiry(now))
	})

	t.Run("expired token", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		}}
		require.ErrorIs(t, c.ValidateExpiry(now), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(now.Add(time.Minute)),
		}}
		require.ErrorIs(t, c.ValidateExpiry(now), jwtx.ErrNotYetValid)
	})

	t.Run("no exp or nbf", func(t *testing.T) {
		require.NoError(t, (&jwtx.Claims{}).ValidateExpiry(now))
	})
}

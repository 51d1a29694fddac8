package app

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "identity", cfg.Issuer)
	require.Equal(t, 15*time.Minute, cfg.TokenTTL)
	require.Equal(t, "identity.db", cfg.DatabaseFile)
	require.Equal(t, "memory", cfg.CacheBackend)
	require.Equal(t, "log", cfg.MailMode)
	require.Equal(t, 256, cfg.MailQueueSize)
	require.Equal(t, 50, cfg.InvitationPageSize)
	require.Equal(t, 100, cfg.ExportPageSize)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Empty(t, cfg.BootstrapToken)
	require.Empty(t, cfg.S3Bucket)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("IDENTITY_ISSUER", "bartab")
	t.Setenv("TOKEN_TTL", "30") // bare integers are minutes
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MAIL_RATE", "0.5")
	t.Setenv("PORT", "not-a-number")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "90s")

	cfg := LoadConfig()

	require.Equal(t, "bartab", cfg.Issuer)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, "redis", cfg.CacheBackend)
	require.Equal(t, 3, cfg.RedisDB)
	require.InDelta(t, 0.5, cfg.MailRate, 1e-9)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 90*time.Second, cfg.ShutdownGracePeriod)
}

func TestInitSigningKeysPersists(t *testing.T) {
	path := t.TempDir() + "/keys/signing.pem"
	cfg := Config{Issuer: "identity", SigningKeyFile: path}
	logger := slogx.Discard()

	first, err := InitSigningKeys(cfg, logger)
	require.NoError(t, err)
	second, err := InitSigningKeys(cfg, logger)
	require.NoError(t, err)

	require.Equal(t, first.KeySet.PublicJWKS(), second.KeySet.PublicJWKS())
}

func TestInitSigningKeysEphemeral(t *testing.T) {
	logger := slogx.Discard()

	first, err := InitSigningKeys(Config{Issuer: "identity"}, logger)
	require.NoError(t, err)
	second, err := InitSigningKeys(Config{Issuer: "identity"}, logger)
	require.NoError(t, err)

	require.True(t, first.IsReady())
	require.NotEqual(t, first.KeySet.PublicJWKS(), second.KeySet.PublicJWKS())
}

package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

// InitSigningKeys builds the KeyManager that signs session tokens.
//
// With SigningKeyFile set the Ed25519 key is read from disk, or generated and
// written there on first start, so tokens survive restarts. Without it a key
// is generated in memory and every restart invalidates outstanding tokens.
func InitSigningKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{Issuer: cfg.Issuer}

	if cfg.SigningKeyFile == "" {
		km, err := jwtx.NewEphemeralKeyManager(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
		}
		logger.Info("generated ephemeral signing key",
			"algorithm", km.Algorithm(),
			"issuer", cfg.Issuer,
		)
		logger.Warn("session tokens will not survive a restart")
		return km, nil
	}

	pemKey, created, err := cryptox.LoadOrCreateEd25519Key(cfg.SigningKeyFile)
	if err != nil {
		return nil, err
	}
	km, err := jwtx.NewKeyManagerFromPEM(opts, pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	logger.Info("signing key loaded",
		"algorithm", km.Algorithm(),
		"issuer", cfg.Issuer,
		"path", cfg.SigningKeyFile,
		"created", created,
	)
	return km, nil
}

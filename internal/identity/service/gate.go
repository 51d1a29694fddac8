package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/identity/internal/identity/cache"
	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// Gate resolves bearer tokens to accounts and enforces role requirements.
//
// The account is re-read (through the cache) on every call and RequireRole
// is checked against its current roles. The roles claim in the token is
// only the snapshot taken at issuance.
type Gate struct {
	Tokens   *TokenService
	Accounts *cache.Repository
}

func (g *Gate) Authenticate(ctx context.Context, token string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the token itself
	id, err := g.Tokens.Validate(token)
	if err != nil {
		log.Debug("rejected session token", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 2. Resolve the subject
	a, err := g.Accounts.Get(ctx, id.Username)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("valid token for missing account", slog.String("username", id.Username))
		return domain.Account{}, ErrAccountVanished
	}
	if err != nil {
		log.Error("failed to resolve token subject", slog.String("username", id.Username), slog.Any("error", err))
		return domain.Account{}, err
	}
	return a, nil
}

// RequireRole fails with ErrForbidden unless a holds one of allowed. An
// empty allowed set admits any authenticated account.
func (g *Gate) RequireRole(a domain.Account, allowed ...domain.Role) error {
	if len(allowed) == 0 || a.Roles.Intersects(allowed...) {
		return nil
	}
	return ErrForbidden
}

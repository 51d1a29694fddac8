package service

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// BootstrapService creates the first administrator. It is only usable when
// a bootstrap token is configured and no ADMIN exists yet.
type BootstrapService struct {
	Accounts *AccountService
	Token    string
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	return s.Accounts.Store.Accounts().AnyWithRole(ctx, domain.RoleAdmin)
}

// Bootstrap creates an enabled ADMIN account without email verification.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, data domain.SignupData) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	// 1. Validate provided token
	if s.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.Account{}, ErrBootstrapUnauthorized
	}

	// 2. Check if already bootstrapped
	done, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	if done {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.Account{}, ErrBootstrapComplete
	}

	// 3. Create the administrator
	data.Roles = domain.Roles{domain.RoleAdmin, domain.RoleClient}
	a, err := s.Accounts.create(ctx, data, true)
	if err != nil {
		return domain.Account{}, err
	}

	l.Info("bootstrap administrator created", slog.String("username", a.Username))
	return a, nil
}

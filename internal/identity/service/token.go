package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

// Identity is what a valid session token asserts.
type Identity struct {
	Username string
	// Roles as they were when the token was issued.
	Roles     domain.Roles
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService mints and checks session tokens. It never touches the store.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	Issuer     string
	TTL        time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) ttl() time.Duration {
	if s.TTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.TTL
}

// Issue signs a token for username carrying roles, valid for TTL.
func (s *TokenService) Issue(username string, roles domain.Roles) (string, time.Time, error) {
	signer := s.KeyManager.GetSigner()
	if signer == nil {
		return "", time.Time{}, errors.New("no signing key available")
	}

	claims := jwtx.NewSessionClaims(username, roles.Strings(), s.ttl(), s.Issuer, s.now())
	token, err := signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// Validate checks signature, issuer and expiry. Any failure is reported as
// ErrInvalidToken with the cause attached.
func (s *TokenService) Validate(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	claims, err := s.KeyManager.Verifier.Verify(token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if err := claims.ValidateExpiry(s.now()); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return Identity{}, fmt.Errorf("%w: missing sub or exp", ErrInvalidToken)
	}

	roles, err := domain.ParseRoles(claims.Roles)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id := Identity{
		Username:  claims.Subject,
		Roles:     roles,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	return id, nil
}

package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Verifier validates a token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// EdDSAVerifier validates tokens against the Ed25519 keys in a KeySet.
type EdDSAVerifier struct {
	keys   *KeySet
	issuer string
}

// NewVerifierEdDSA returns a verifier that also enforces iss when issuer is set.
func NewVerifierEdDSA(keys *KeySet, issuer string) *EdDSAVerifier {
	return &EdDSAVerifier{keys: keys, issuer: issuer}
}

// Verify checks structure, signature, issuer and time bounds. Every failure
// wraps one of the package sentinels.
func (v *EdDSAVerifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrUnknownKID
		}
		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return pub, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownKID):
			return Claims{}, err
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(time.Now().UTC()); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

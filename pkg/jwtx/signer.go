package jwtx

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can sign session tokens.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

// EdDSASigner signs with an Ed25519 private key.
type EdDSASigner struct {
	kid string
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// NewSignerEdDSA loads a PKCS8 PEM Ed25519 key. An empty kid is replaced by
// the RFC 7638 thumbprint of the public key, which keeps the kid stable for a
// key loaded from disk across restarts.
func NewSignerEdDSA(kid string, pemKey []byte) (*EdDSASigner, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM for Ed25519 key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: expected PRIVATE KEY, got %q (Ed25519 requires PKCS8)", block.Type)
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}
	key, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwtx: not Ed25519 private key")
	}

	s := &EdDSASigner{kid: kid, key: key, pub: key.Public().(ed25519.PublicKey)}
	if s.kid == "" {
		s.kid = NewEd25519JWK("", "sig", s.Alg(), s.pub).Thumbprint()
	}
	return s, nil
}

func (s *EdDSASigner) Alg() string { return jwt.SigningMethodEdDSA.Alg() }
func (s *EdDSASigner) KID() string { return s.kid }

// Sign serialises claims into a compact JWS with the kid header set.
func (s *EdDSASigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

func (s *EdDSASigner) PublicJWK() JWK {
	return NewEd25519JWK(s.kid, "sig", s.Alg(), s.pub)
}

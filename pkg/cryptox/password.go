package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
	ErrMalformedHash    = errors.New("cryptox: malformed password hash")
)

// Argon2Params are the cost parameters encoded into every hash.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
	SaltLength  int
}

// DefaultArgon2Params follows the OWASP argon2id baseline (19 MiB, t=2, p=1).
var DefaultArgon2Params = Argon2Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// PasswordHasher hashes passwords into PHC strings with argon2id. The pepper
// is appended to the password and never stored alongside the hash.
type PasswordHasher struct {
	Pepper string
	Params Argon2Params
}

// NewPasswordHasher returns a hasher using DefaultArgon2Params.
func NewPasswordHasher(pepper string) *PasswordHasher {
	return &PasswordHasher{Pepper: pepper, Params: DefaultArgon2Params}
}

// Hash returns "$argon2id$v=19$m=..,t=..,p=..$salt$hash".
func (h *PasswordHasher) Hash(password string) (string, error) {
	p := h.Params
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: read salt: %w", err)
	}

	key := argon2.IDKey([]byte(password+h.Pepper), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory,
		p.Iterations,
		p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks password against an encoded hash. The parameters stored in
// the hash are used, so hashes survive a change of Params.
func (h *PasswordHasher) Verify(password, encoded string) error {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return ErrMalformedHash
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return ErrMalformedHash
	}

	var (
		mem, iters uint32
		par        uint8
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: salt: %w", ErrMalformedHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return ErrMalformedHash
	}

	got := argon2.IDKey([]byte(password+h.Pepper), salt, iters, mem, par, uint32(len(want))) // #nosec G115
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

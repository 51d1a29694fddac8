package cryptox_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast; the format is identical.
func testHasher(pepper string) *cryptox.PasswordHasher {
	return &cryptox.PasswordHasher{
		Pepper: pepper,
		Params: cryptox.Argon2Params{Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16},
	}
}

func TestHash_PHCFormat(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
	}

	h := testHasher("pepper")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=64,t=1,p=1", parts[3])

			require.NoError(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h := testHasher("")
	a, err := h.Hash("samepassword")
	require.NoError(t, err)
	b, err := h.Hash("samepassword")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerify_WrongPassword(t *testing.T) {
	h := testHasher("")
	hash, err := h.Hash("Secret123!")
	require.NoError(t, err)

	require.ErrorIs(t, h.Verify("secret123!", hash), cryptox.ErrPasswordMismatch)
	require.ErrorIs(t, h.Verify("", hash), cryptox.ErrPasswordMismatch)
}

func TestVerify_PepperMatters(t *testing.T) {
	hash, err := testHasher("one").Hash("Secret123!")
	require.NoError(t, err)

	require.NoError(t, testHasher("one").Verify("Secret123!", hash))
	require.ErrorIs(t, testHasher("two").Verify("Secret123!", hash), cryptox.ErrPasswordMismatch)
}

func TestVerify_UsesEncodedParams(t *testing.T) {
	hash, err := testHasher("").Hash("Secret123!")
	require.NoError(t, err)

	// A hasher configured with other costs still verifies older hashes.
	require.NoError(t, cryptox.NewPasswordHasher("").Verify("Secret123!", hash))
}

func TestVerify_MalformedHash(t *testing.T) {
	h := testHasher("")
	for _, in := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=64,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=64,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=64,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=64,t=1,p=1$c2FsdA$",
	} {
		require.ErrorIs(t, h.Verify("x", in), cryptox.ErrMalformedHash, in)
	}
}

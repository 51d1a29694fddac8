package jwtx

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
)

// AlgorithmEdDSA is the only signing algorithm issued.
const AlgorithmEdDSA = "EdDSA"

// KeyManager ties the signing keys, the published KeySet and the Verifier
// together.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	mu      sync.RWMutex
	signers []Signer
}

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	// Issuer is written into and enforced on every token.
	Issuer string

	// NumKeys is the number of ephemeral keys to generate (default 1, max 10).
	NumKeys int
}

// NewEphemeralKeyManager generates keys that only live in memory. Tokens do
// not survive a restart.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	n := opts.NumKeys
	if n <= 0 {
		n = 1
	}
	if n > 10 {
		n = 10
	}

	pems := make([][]byte, 0, n)
	for i := range n {
		pemKey, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate key %d: %w", i+1, err)
		}
		pems = append(pems, pemKey)
	}
	return NewKeyManagerFromPEM(opts, pems...)
}

// NewKeyManagerFromPEM builds a KeyManager from PKCS8 Ed25519 keys. Key IDs are
// the key thumbprints so they are stable across restarts.
func NewKeyManagerFromPEM(opts KeyManagerOptions, pems ...[]byte) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}
	if len(pems) == 0 {
		return nil, fmt.Errorf("jwtx: at least one key is required")
	}

	km := &KeyManager{KeySet: NewKeySet()}
	for i, p := range pems {
		signer, err := NewSignerEdDSA("", p)
		if err != nil {
			return nil, fmt.Errorf("jwtx: load key %d: %w", i+1, err)
		}
		if err := km.KeySet.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: add key %d: %w", i+1, err)
		}
		km.signers = append(km.signers, signer)
	}
	km.Verifier = NewVerifierEdDSA(km.KeySet, opts.Issuer)
	return km, nil
}

func (km *KeyManager) Algorithm() string { return AlgorithmEdDSA }

func (km *KeyManager) IsReady() bool { return km.KeySet.IsReady() }

// GetSigner picks one of the signing keys at random.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	default:
		return km.signers[rand.IntN(len(km.signers))]
	}
}

func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

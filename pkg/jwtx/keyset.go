package jwtx

import (
	"crypto/ed25519"
	"errors"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds the public verification keys and the JWKS published for them.
// It is safe for concurrent use.
type KeySet struct {
	mu  sync.RWMutex
	jks JWKS
	pub map[string]ed25519.PublicKey
}

func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]ed25519.PublicKey)}
}

// AddSigner registers a Signer's public JWK.
func (k *KeySet) AddSigner(s Signer) error {
	return k.AddJWK(s.PublicJWK())
}

// AddJWK adds j, replacing any key already registered under the same kid.
func (k *KeySet) AddJWK(j JWK) error {
	key, err := j.PublicKey()
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if _, dup := k.pub[j.Kid]; dup {
		for i := range k.jks.Keys {
			if k.jks.Keys[i].Kid == j.Kid {
				k.jks.Keys[i] = j
			}
		}
	} else {
		k.jks.Keys = append(k.jks.Keys, j)
	}
	k.pub[j.Kid] = key
	return nil
}

// Get returns the public key for kid.
func (k *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pk, ok := k.pub[kid]; ok {
		return pk, nil
	}
	return nil, ErrNoKey
}

// PublicJWKS returns a copy of the published key set.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return JWKS{Keys: append([]JWK(nil), k.jks.Keys...)}
}

// IsReady reports whether at least one key is loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}

package jwtx

import (
	"crypto/ed25519"
	"fmt"
	"sync"
)

// KeySet holds the Ed25519 public keys the verifier may encounter, keyed by
// kid. The portal signs with a single key, but keeping a set means a future
// key rollover only needs to add the new key here.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string]ed25519.PublicKey
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]ed25519.PublicKey)}
}

// Add registers a public key under the given kid, replacing any previous one.
func (ks *KeySet) Add(kid string, pub ed25519.PublicKey) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	ks.keys[kid] = pub
}

// Get returns the public key for kid or an error if it is unknown.
func (ks *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	pub, ok := ks.keys[kid]
	if !ok {
		return nil, fmt.Errorf("jwtx: unknown kid %q", kid)
	}
	return pub, nil
}

// IsReady reports whether at least one verification key is loaded.
func (ks *KeySet) IsReady() bool {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return len(ks.keys) > 0
}

// KIDs returns the registered key identifiers.
func (ks *KeySet) KIDs() []string {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	out := make([]string, 0, len(ks.keys))
	for kid := range ks.keys {
		out = append(out, kid)
	}
	return out
}

// Package fingerprint derives the one-way values under which issued
// passwords are remembered. Plaintext passwords are never stored.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// DefaultIterations is the PBKDF2 work factor used when none is configured.
const DefaultIterations = 4096

const keyLen = 32

// Hasher maps a password to a deterministic fingerprint. The same password
// and pepper always produce the same fingerprint, so it can be looked up.
type Hasher struct {
	pepper     []byte
	iterations int
}

// NewHasher returns a Hasher keyed by pepper. A non-positive iterations
// count selects DefaultIterations.
func NewHasher(pepper string, iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{pepper: []byte(pepper), iterations: iterations}
}

// Fingerprint returns the hex-encoded PBKDF2-SHA256 digest of password.
func (h *Hasher) Fingerprint(password string) string {
	key := pbkdf2.Key([]byte(password), h.pepper, h.iterations, keyLen, sha256.New)
	return hex.EncodeToString(key)
}

// Package passwords derives salted password hashes and mints session tokens.
package passwords

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 work factor used unless configured otherwise
	DefaultIterations = 100000

	keyLength   = 64
	saltLength  = 16
	tokenLength = 32
)

// Hasher derives PBKDF2-SHA512 password hashes.
// Changing Iterations invalidates every stored hash.
type Hasher struct {
	iterations int
}

// NewHasher returns a hasher using the given iteration count, or DefaultIterations when it is not positive
func NewHasher(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{iterations: iterations}
}

// GenerateSalt returns a fresh random per-user salt
func (h *Hasher) GenerateSalt() (string, error) {
	return randomHex(saltLength)
}

// Hash derives the hex-encoded hash of password with salt
func (h *Hasher) Hash(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), h.iterations, keyLength, sha512.New)
	return hex.EncodeToString(key)
}

// Verify reports whether password hashes to expected under salt
func (h *Hasher) Verify(password, salt, expected string) bool {
	actual := h.Hash(password, salt)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(expected)) == 1
}

// GenerateSessionToken returns a new opaque session token
func GenerateSessionToken() (string, error) {
	return randomHex(tokenLength)
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Package cryptox provides the password digest helpers used by the
// credential store. Digests are deterministic so verification can recompute
// and compare; the comparison itself is constant-time.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex-encoded SHA-256 digest of password.
// The cleartext is never stored; callers must not log it either.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether password matches the stored digest.
// The comparison is constant-time to avoid a timing side channel.
func VerifyPassword(storedDigest, password string) bool {
	candidate := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(storedDigest), []byte(candidate)) == 1
}

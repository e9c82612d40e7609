package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// credentialBytes is the length of raw session credentials (rendered
// as twice as many hex characters).
const credentialBytes = 32

// HashVerificationToken computes the at-rest digest of a plaintext
// verification token, salted with the server secret so that a database
// compromise alone does not reveal usable tokens.
//
// This is deliberately a plain salted hash, not a password-hashing
// function: the same (token, secret) pair must always yield the same
// digest, because the digest is the lookup key. Known limitation.
func HashVerificationToken(token, secret string) string {
	sum := sha256.Sum256([]byte(token + secret))
	return hex.EncodeToString(sum[:])
}

// GenerateCredential produces a cryptographically random session
// credential as a 64-character hexadecimal string. Collisions are
// treated as negligible; there is no uniqueness retry loop.
func GenerateCredential() (string, error) {
	b := make([]byte, credentialBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate credential: %w", err)
	}
	return hex.EncodeToString(b), nil
}

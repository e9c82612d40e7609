package domain

import "time"

// VerificationRequest is a single-use proof that a claimant controls an
// identifier (typically an email address). TokenHash holds the salted
// one-way digest of the issued token; the plaintext is never persisted.
// (Identifier, TokenHash) is the lookup key.
type VerificationRequest struct {
	ID         string     `json:"id"`
	Identifier string     `json:"identifier"`
	TokenHash  string     `json:"token_hash"`
	Expires    *time.Time `json:"expires,omitempty"`
}

// ExpiredAt reports whether the request is expired at the given instant.
func (v *VerificationRequest) ExpiredAt(now time.Time) bool {
	return v.Expires != nil && now.After(*v.Expires)
}

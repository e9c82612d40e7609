package domain

import "time"

// Session is a server-side credential pair bound to a User.
// SessionToken is unique and is the sole lookup key. A nil Expires
// means the session never expires.
type Session struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	SessionToken string     `json:"session_token"`
	AccessToken  string     `json:"access_token"`
	Expires      *time.Time `json:"expires,omitempty"`

	// User is the resolved owner, populated on session reads.
	User *User `json:"user,omitempty"`
}

// ExpiredAt reports whether the session is expired at the given instant.
// Sessions without an expiry never expire.
func (s *Session) ExpiredAt(now time.Time) bool {
	return s.Expires != nil && now.After(*s.Expires)
}

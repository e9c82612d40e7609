package domain

import "time"

// User is an identity record. The store assigns the ID on first
// creation; optional fields are omitted from the persisted document
// when empty.
type User struct {
	ID            string     `json:"id"`
	Name          string     `json:"name,omitempty"`
	Username      string     `json:"username,omitempty"`
	Email         string     `json:"email,omitempty"`
	Image         string     `json:"image,omitempty"`
	EmailVerified *time.Time `json:"email_verified,omitempty"`
}

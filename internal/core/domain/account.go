package domain

import "time"

// Account links a User to one external identity provider. The pair
// (ProviderID, ProviderAccountID) is unique and is the lookup key for
// repeat sign-ins with the same provider.
type Account struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	ProviderID         string     `json:"provider_id"`
	ProviderType       string     `json:"provider_type"`
	ProviderAccountID  string     `json:"provider_account_id"`
	RefreshToken       string     `json:"refresh_token,omitempty"`
	AccessToken        string     `json:"access_token,omitempty"`
	AccessTokenExpires *time.Time `json:"access_token_expires,omitempty"`
}

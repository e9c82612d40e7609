package services

import (
	"time"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
)

// Persisted document field names. These are the wire names inside the
// document store, kept distinct from the Go struct fields so no caller
// ever sees the store's internal shape.
const (
	fieldName          = "name"
	fieldUsername      = "username"
	fieldEmail         = "email"
	fieldImage         = "image"
	fieldEmailVerified = "emailVerified"

	fieldUserID             = "userId"
	fieldProviderID         = "providerId"
	fieldProviderType       = "providerType"
	fieldProviderAccountID  = "providerAccountId"
	fieldRefreshToken       = "refreshToken"
	fieldAccessToken        = "accessToken"
	fieldAccessTokenExpires = "accessTokenExpires"

	fieldSessionToken = "sessionToken"
	fieldExpires      = "expires"

	fieldIdentifier = "identifier"
	fieldToken      = "token"
)

// timeValue renders a timestamp for persistence.
func timeValue(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func docFromUser(u domain.User) domain.Document {
	fields := make(map[string]any)
	if u.Name != "" {
		fields[fieldName] = u.Name
	}
	if u.Username != "" {
		fields[fieldUsername] = u.Username
	}
	if u.Email != "" {
		fields[fieldEmail] = u.Email
	}
	if u.Image != "" {
		fields[fieldImage] = u.Image
	}
	if u.EmailVerified != nil {
		fields[fieldEmailVerified] = timeValue(*u.EmailVerified)
	}
	return domain.Document{Type: domain.TypeUser, Fields: fields}
}

// userFields builds the full field set for an update, clearing fields
// that became empty.
func userFields(u *domain.User) map[string]any {
	fields := map[string]any{
		fieldName:     u.Name,
		fieldUsername: u.Username,
		fieldEmail:    u.Email,
		fieldImage:    u.Image,
	}
	if u.EmailVerified != nil {
		fields[fieldEmailVerified] = timeValue(*u.EmailVerified)
	} else {
		fields[fieldEmailVerified] = ""
	}
	return fields
}

func userFromDoc(doc domain.Document) *domain.User {
	return &domain.User{
		ID:            doc.ID,
		Name:          doc.StringField(fieldName),
		Username:      doc.StringField(fieldUsername),
		Email:         doc.StringField(fieldEmail),
		Image:         doc.StringField(fieldImage),
		EmailVerified: doc.TimeField(fieldEmailVerified),
	}
}

func docFromAccount(a domain.Account) domain.Document {
	fields := map[string]any{
		fieldUserID:            a.UserID,
		fieldProviderID:        a.ProviderID,
		fieldProviderType:      a.ProviderType,
		fieldProviderAccountID: a.ProviderAccountID,
	}
	if a.RefreshToken != "" {
		fields[fieldRefreshToken] = a.RefreshToken
	}
	if a.AccessToken != "" {
		fields[fieldAccessToken] = a.AccessToken
	}
	if a.AccessTokenExpires != nil {
		fields[fieldAccessTokenExpires] = timeValue(*a.AccessTokenExpires)
	}
	return domain.Document{Type: domain.TypeAccount, Fields: fields}
}

func accountFromDoc(doc domain.Document) *domain.Account {
	return &domain.Account{
		ID:                 doc.ID,
		UserID:             doc.StringField(fieldUserID),
		ProviderID:         doc.StringField(fieldProviderID),
		ProviderType:       doc.StringField(fieldProviderType),
		ProviderAccountID:  doc.StringField(fieldProviderAccountID),
		RefreshToken:       doc.StringField(fieldRefreshToken),
		AccessToken:        doc.StringField(fieldAccessToken),
		AccessTokenExpires: doc.TimeField(fieldAccessTokenExpires),
	}
}

func docFromSession(s domain.Session) domain.Document {
	fields := map[string]any{
		fieldUserID:       s.UserID,
		fieldSessionToken: s.SessionToken,
		fieldAccessToken:  s.AccessToken,
	}
	if s.Expires != nil {
		fields[fieldExpires] = timeValue(*s.Expires)
	}
	return domain.Document{Type: domain.TypeSession, Fields: fields}
}

func sessionFromDoc(doc domain.Document) *domain.Session {
	return &domain.Session{
		ID:           doc.ID,
		UserID:       doc.StringField(fieldUserID),
		SessionToken: doc.StringField(fieldSessionToken),
		AccessToken:  doc.StringField(fieldAccessToken),
		Expires:      doc.TimeField(fieldExpires),
	}
}

func docFromVerification(v domain.VerificationRequest) domain.Document {
	fields := map[string]any{
		fieldIdentifier: v.Identifier,
		fieldToken:      v.TokenHash,
	}
	if v.Expires != nil {
		fields[fieldExpires] = timeValue(*v.Expires)
	}
	return domain.Document{Type: domain.TypeVerificationRequest, Fields: fields}
}

func verificationFromDoc(doc domain.Document) *domain.VerificationRequest {
	return &domain.VerificationRequest{
		ID:         doc.ID,
		Identifier: doc.StringField(fieldIdentifier),
		TokenHash:  doc.StringField(fieldToken),
		Expires:    doc.TimeField(fieldExpires),
	}
}

package driving

import (
	"context"
	"time"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
)

// DeliveryConfig carries the per-request settings of the verification
// message provider. MaxAge of zero means issued requests never expire.
type DeliveryConfig struct {
	MaxAge time.Duration `json:"max_age"`
}

// AuthPersistence is the operation set exposed to the authentication
// framework, one operation per lifecycle event.
//
// Read operations report absence as a nil result with a nil error so
// callers can branch on "not found" without error handling. Expired
// sessions and verification requests are deleted on read and reported
// as absent.
type AuthPersistence interface {
	// Users
	CreateUser(ctx context.Context, profile domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByProviderAccountID(ctx context.Context, providerID, providerAccountID string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Accounts
	LinkAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	UnlinkAccount(ctx context.Context, userID, providerID, providerAccountID string) error

	// Sessions
	CreateSession(ctx context.Context, user *domain.User) (*domain.Session, error)
	GetSession(ctx context.Context, sessionToken string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session, force bool) (*domain.Session, error)
	DeleteSession(ctx context.Context, sessionToken string) error

	// Verification requests
	CreateVerificationRequest(ctx context.Context, identifier, url, token string, delivery DeliveryConfig) (*domain.VerificationRequest, error)
	GetVerificationRequest(ctx context.Context, identifier, token string) (*domain.VerificationRequest, error)
	DeleteVerificationRequest(ctx context.Context, identifier, token string) error
}

package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/halyard-auth/halyard-core/internal/core/ports/driven"
	"github.com/halyard-auth/halyard-core/internal/core/ports/driving"
)

// Ensure persistenceService implements AuthPersistence
var _ driving.AuthPersistence = (*persistenceService)(nil)

// Default session policy, matching the framework defaults.
const (
	DefaultSessionMaxAge    = 30 * 24 * time.Hour
	DefaultSessionUpdateAge = 0
)

// Config holds the adapter-wide settings, fixed at construction.
type Config struct {
	// SessionMaxAge is the sliding session lifetime. Zero selects the
	// 30-day default; a negative value disables session expiry.
	SessionMaxAge time.Duration

	// SessionUpdateAge throttles session renewal writes: a session is
	// only renewed once it is older than SessionUpdateAge past its last
	// renewal point. Zero renews on every read.
	SessionUpdateAge time.Duration

	// Secret salts the verification-token digest.
	Secret string

	// BaseURL is forwarded to the delivery collaborator.
	BaseURL string

	// Debug gates per-operation diagnostic output.
	Debug bool

	// Logger receives diagnostic output. Defaults to slog.Default().
	Logger *slog.Logger
}

// persistenceService implements the AuthPersistence interface. It
// composes the entity mapper, the token codec and the lifecycle rules
// over an injected DocumentStore; it holds no cross-call state.
type persistenceService struct {
	store  driven.DocumentStore
	sender driven.VerificationSender
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewAuthPersistence creates the persistence adapter over the given
// document store and verification delivery collaborator.
func NewAuthPersistence(store driven.DocumentStore, sender driven.VerificationSender, cfg Config) driving.AuthPersistence {
	if cfg.SessionMaxAge == 0 {
		cfg.SessionMaxAge = DefaultSessionMaxAge
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &persistenceService{
		store:  store,
		sender: sender,
		cfg:    cfg,
		logger: cfg.Logger,
		now:    time.Now,
	}
}

// debug emits diagnostic output when the Debug flag is set.
func (s *persistenceService) debug(op string, args ...any) {
	if s.cfg.Debug {
		s.logger.Debug(op, args...)
	}
}

// opErr tags a failure with the operation it came from.
func opErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

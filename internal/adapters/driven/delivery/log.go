package delivery

import (
	"context"
	"log/slog"

	"github.com/halyard-auth/halyard-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VerificationSender = (*LogSender)(nil)

// LogSender logs verification deliveries instead of sending them.
// Development use only: the plaintext token ends up in the log.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a new LogSender
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the delivery payload
func (s *LogSender) Send(ctx context.Context, d driven.VerificationDelivery) error {
	s.logger.Info("verification request issued",
		"identifier", d.Identifier,
		"url", d.URL,
		"token", d.Token,
	)
	return nil
}

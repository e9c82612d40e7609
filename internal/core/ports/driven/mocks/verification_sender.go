package mocks

import (
	"context"
	"sync"

	"github.com/halyard-auth/halyard-core/internal/core/ports/driven"
)

// MockVerificationSender records deliveries and can be forced to fail.
type MockVerificationSender struct {
	mu      sync.Mutex
	sent    []driven.VerificationDelivery
	SendErr error
}

// NewMockVerificationSender creates a new MockVerificationSender
func NewMockVerificationSender() *MockVerificationSender {
	return &MockVerificationSender{}
}

func (m *MockVerificationSender) Send(ctx context.Context, d driven.VerificationDelivery) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, d)
	return nil
}

// Sent returns a copy of the recorded deliveries.
func (m *MockVerificationSender) Sent() []driven.VerificationDelivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]driven.VerificationDelivery, len(m.sent))
	copy(out, m.sent)
	return out
}

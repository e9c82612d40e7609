package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
	"github.com/halyard-auth/halyard-core/internal/core/ports/driving"
)

func TestVerificationRequest_IssueAndConsume(t *testing.T) {
	store, sender, svc := newTestService(Config{Secret: "server-secret", BaseURL: "https://app.example.com"})
	ctx := context.Background()

	created, err := svc.CreateVerificationRequest(ctx, "ada@example.com", "https://app.example.com/verify?token=raw-token", "raw-token", driving.DeliveryConfig{MaxAge: 90 * time.Second})
	require.NoError(t, err)
	require.NotNil(t, created)

	// Plaintext never persisted; digest is.
	assert.Equal(t, HashVerificationToken("raw-token", "server-secret"), created.TokenHash)
	assert.NotNil(t, created.Expires)

	// Delivery collaborator got the plaintext token.
	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].Identifier)
	assert.Equal(t, "raw-token", sent[0].Token)
	assert.Equal(t, "https://app.example.com", sent[0].BaseURL)

	// Immediate consume with the same plaintext finds it.
	got, err := svc.GetVerificationRequest(ctx, "ada@example.com", "raw-token")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ada@example.com", got.Identifier)

	// After expiry: absent, and the record is gone.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	expired, err := svc.GetVerificationRequest(ctx, "ada@example.com", "raw-token")
	require.NoError(t, err)
	assert.Nil(t, expired)
	assert.False(t, store.Has(created.ID), "expired request must be deleted on read")
}

func TestVerificationRequest_NoMaxAgeNeverExpires(t *testing.T) {
	_, _, svc := newTestService(Config{Secret: "server-secret"})
	ctx := context.Background()

	created, err := svc.CreateVerificationRequest(ctx, "ada@example.com", "https://x/verify", "raw-token", driving.DeliveryConfig{})
	require.NoError(t, err)
	assert.Nil(t, created.Expires)

	svc.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	got, err := svc.GetVerificationRequest(ctx, "ada@example.com", "raw-token")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestVerificationRequest_WrongTokenIsNil(t *testing.T) {
	_, _, svc := newTestService(Config{Secret: "server-secret"})
	ctx := context.Background()

	_, err := svc.CreateVerificationRequest(ctx, "ada@example.com", "https://x/verify", "raw-token", driving.DeliveryConfig{})
	require.NoError(t, err)

	got, err := svc.GetVerificationRequest(ctx, "ada@example.com", "other-token")
	require.NoError(t, err)
	assert.Nil(t, got, "a different plaintext hashes to a different digest and must miss")
}

func TestVerificationRequest_DeliveryFailurePropagates(t *testing.T) {
	store, sender, svc := newTestService(Config{Secret: "server-secret"})
	sender.SendErr = errors.New("smtp unreachable")
	ctx := context.Background()

	_, err := svc.CreateVerificationRequest(ctx, "ada@example.com", "https://x/verify", "raw-token", driving.DeliveryConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)

	// Best-effort semantics: the persisted request is not rolled back.
	assert.Equal(t, 1, store.Len())
	got, gerr := svc.GetVerificationRequest(ctx, "ada@example.com", "raw-token")
	require.NoError(t, gerr)
	assert.NotNil(t, got)
}

func TestVerificationRequest_Delete(t *testing.T) {
	store, _, svc := newTestService(Config{Secret: "server-secret"})
	ctx := context.Background()

	created, err := svc.CreateVerificationRequest(ctx, "ada@example.com", "https://x/verify", "raw-token", driving.DeliveryConfig{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVerificationRequest(ctx, "ada@example.com", "raw-token"))
	assert.False(t, store.Has(created.ID))

	// Idempotent.
	require.NoError(t, svc.DeleteVerificationRequest(ctx, "ada@example.com", "raw-token"))
}

func TestVerificationRequest_InvalidInput(t *testing.T) {
	_, _, svc := newTestService(Config{Secret: "server-secret"})

	_, err := svc.CreateVerificationRequest(context.Background(), "", "https://x/verify", "raw-token", driving.DeliveryConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

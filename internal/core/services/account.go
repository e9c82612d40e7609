package services

import (
	"context"
	"errors"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
)

// LinkAccount persists a new provider account link for a user.
func (s *persistenceService) LinkAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	if account.UserID == "" || account.ProviderID == "" || account.ProviderAccountID == "" {
		return nil, opErr("linkAccount", domain.ErrInvalidInput)
	}
	s.debug("linkAccount", "userId", account.UserID, "providerId", account.ProviderID)

	created, err := s.store.Create(ctx, docFromAccount(account))
	if err != nil {
		return nil, opErr("linkAccount", err)
	}
	return accountFromDoc(created), nil
}

// UnlinkAccount removes the account linked to (providerID,
// providerAccountID). Unlinking an absent account is not an error.
func (s *persistenceService) UnlinkAccount(ctx context.Context, userID, providerID, providerAccountID string) error {
	s.debug("unlinkAccount", "userId", userID, "providerId", providerID)

	doc, err := s.store.FetchOne(ctx, domain.Query{
		Type: domain.TypeAccount,
		Where: map[string]any{
			fieldProviderID:        providerID,
			fieldProviderAccountID: providerAccountID,
		},
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return opErr("unlinkAccount", err)
	}

	if err := s.store.Delete(ctx, doc.ID); err != nil {
		return opErr("unlinkAccount", err)
	}
	return nil
}

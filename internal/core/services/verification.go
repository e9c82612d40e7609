package services

import (
	"context"
	"errors"
	"time"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
	"github.com/halyard-auth/halyard-core/internal/core/ports/driven"
	"github.com/halyard-auth/halyard-core/internal/core/ports/driving"
)

// CreateVerificationRequest persists the salted digest of the token and
// hands the plaintext to the delivery collaborator. A delivery failure
// propagates; the already-persisted request is kept, so the identifier
// can retry verification without the store and the outbox disagreeing
// about issued tokens.
func (s *persistenceService) CreateVerificationRequest(ctx context.Context, identifier, url, token string, delivery driving.DeliveryConfig) (*domain.VerificationRequest, error) {
	if identifier == "" || token == "" {
		return nil, opErr("createVerificationRequest", domain.ErrInvalidInput)
	}
	s.debug("createVerificationRequest", "identifier", identifier)

	var expires *time.Time
	if delivery.MaxAge > 0 {
		t := s.now().Add(delivery.MaxAge)
		expires = &t
	}

	created, err := s.store.Create(ctx, docFromVerification(domain.VerificationRequest{
		Identifier: identifier,
		TokenHash:  HashVerificationToken(token, s.cfg.Secret),
		Expires:    expires,
	}))
	if err != nil {
		return nil, opErr("createVerificationRequest", err)
	}

	if err := s.sender.Send(ctx, driven.VerificationDelivery{
		Identifier: identifier,
		URL:        url,
		Token:      token,
		BaseURL:    s.cfg.BaseURL,
	}); err != nil {
		return nil, opErr("createVerificationRequest", errors.Join(domain.ErrDeliveryFailed, err))
	}
	return verificationFromDoc(created), nil
}

// GetVerificationRequest looks up a pending request by identifier and
// token digest. An expired request is deleted on read and reported as
// absent; a live one is returned unconsumed.
func (s *persistenceService) GetVerificationRequest(ctx context.Context, identifier, token string) (*domain.VerificationRequest, error) {
	s.debug("getVerificationRequest", "identifier", identifier)

	doc, err := s.fetchVerification(ctx, identifier, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, opErr("getVerificationRequest", err)
	}

	request := verificationFromDoc(doc)
	if request.ExpiredAt(s.now()) {
		if err := s.store.Delete(ctx, doc.ID); err != nil {
			return nil, opErr("getVerificationRequest", err)
		}
		return nil, nil
	}
	return request, nil
}

// DeleteVerificationRequest consumes a request by identifier and token
// digest. Deleting an absent request is not an error.
func (s *persistenceService) DeleteVerificationRequest(ctx context.Context, identifier, token string) error {
	s.debug("deleteVerificationRequest", "identifier", identifier)

	doc, err := s.fetchVerification(ctx, identifier, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return opErr("deleteVerificationRequest", err)
	}

	if err := s.store.Delete(ctx, doc.ID); err != nil {
		return opErr("deleteVerificationRequest", err)
	}
	return nil
}

func (s *persistenceService) fetchVerification(ctx context.Context, identifier, token string) (domain.Document, error) {
	return s.store.FetchOne(ctx, domain.Query{
		Type: domain.TypeVerificationRequest,
		Where: map[string]any{
			fieldIdentifier: identifier,
			fieldToken:      HashVerificationToken(token, s.cfg.Secret),
		},
	})
}

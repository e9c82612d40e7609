package services

import (
	"context"
	"errors"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
)

// CreateUser persists a new user record built from the given profile.
func (s *persistenceService) CreateUser(ctx context.Context, profile domain.User) (*domain.User, error) {
	s.debug("createUser", "email", profile.Email)

	created, err := s.store.Create(ctx, docFromUser(profile))
	if err != nil {
		return nil, opErr("createUser", err)
	}
	return userFromDoc(created), nil
}

// GetUser retrieves a user by ID. Absence is not an error.
func (s *persistenceService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.debug("getUser", "id", id)

	doc, err := s.store.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, opErr("getUser", err)
	}
	if doc.Type != domain.TypeUser {
		return nil, nil
	}
	return userFromDoc(doc), nil
}

// GetUserByEmail retrieves a user by email. Absence is not an error.
func (s *persistenceService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.debug("getUserByEmail", "email", email)

	doc, err := s.store.FetchOne(ctx, domain.Query{
		Type:  domain.TypeUser,
		Where: map[string]any{fieldEmail: email},
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, opErr("getUserByEmail", err)
	}
	return userFromDoc(doc), nil
}

// GetUserByProviderAccountID resolves the user owning the account
// linked to (providerID, providerAccountID). Absence of either the
// account or its user is not an error.
func (s *persistenceService) GetUserByProviderAccountID(ctx context.Context, providerID, providerAccountID string) (*domain.User, error) {
	s.debug("getUserByProviderAccountId", "providerId", providerID, "providerAccountId", providerAccountID)

	accountDoc, err := s.store.FetchOne(ctx, domain.Query{
		Type: domain.TypeAccount,
		Where: map[string]any{
			fieldProviderID:        providerID,
			fieldProviderAccountID: providerAccountID,
		},
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, opErr("getUserByProviderAccountId", err)
	}

	userDoc, err := s.store.Get(ctx, accountDoc.StringField(fieldUserID))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, opErr("getUserByProviderAccountId", err)
	}
	return userFromDoc(userDoc), nil
}

// UpdateUser commits the full user field set under the user's ID.
func (s *persistenceService) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.ID == "" {
		return nil, opErr("updateUser", domain.ErrInvalidInput)
	}
	s.debug("updateUser", "id", user.ID)

	doc, err := s.store.Patch(ctx, user.ID, userFields(user))
	if err != nil {
		return nil, opErr("updateUser", err)
	}
	return userFromDoc(doc), nil
}

// DeleteUser is a deliberate no-op: users are never implicitly deleted,
// and the framework does not rely on cascading deletion here.
func (s *persistenceService) DeleteUser(ctx context.Context, id string) error {
	s.debug("deleteUser", "id", id)
	return nil
}

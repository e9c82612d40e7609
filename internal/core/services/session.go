package services

import (
	"context"
	"errors"
	"time"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
)

// CreateSession issues a fresh credential pair for the user and
// persists the session. When session expiry is enabled the session
// expires SessionMaxAge from now; otherwise it never expires.
func (s *persistenceService) CreateSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	if user == nil || user.ID == "" {
		return nil, opErr("createSession", domain.ErrInvalidInput)
	}
	s.debug("createSession", "userId", user.ID)

	sessionToken, err := GenerateCredential()
	if err != nil {
		return nil, opErr("createSession", err)
	}
	accessToken, err := GenerateCredential()
	if err != nil {
		return nil, opErr("createSession", err)
	}

	var expires *time.Time
	if s.cfg.SessionMaxAge > 0 {
		t := s.now().Add(s.cfg.SessionMaxAge)
		expires = &t
	}

	created, err := s.store.Create(ctx, docFromSession(domain.Session{
		UserID:       user.ID,
		SessionToken: sessionToken,
		AccessToken:  accessToken,
		Expires:      expires,
	}))
	if err != nil {
		return nil, opErr("createSession", err)
	}
	return sessionFromDoc(created), nil
}

// GetSession retrieves a session by its token and resolves the linked
// user. An expired session is deleted on read and reported as absent.
func (s *persistenceService) GetSession(ctx context.Context, sessionToken string) (*domain.Session, error) {
	s.debug("getSession", "sessionToken", sessionToken)

	doc, err := s.store.FetchOne(ctx, domain.Query{
		Type:  domain.TypeSession,
		Where: map[string]any{fieldSessionToken: sessionToken},
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, opErr("getSession", err)
	}

	session := sessionFromDoc(doc)
	if session.ExpiredAt(s.now()) {
		if err := s.store.Delete(ctx, doc.ID); err != nil {
			return nil, opErr("getSession", err)
		}
		return nil, nil
	}

	userDoc, err := s.store.Get(ctx, session.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// Dangling user reference; the session itself is still valid.
	case err != nil:
		return nil, opErr("getSession", err)
	case userDoc.Type == domain.TypeUser:
		session.User = userFromDoc(userDoc)
	}
	return session, nil
}

// UpdateSession pushes the session expiry forward. To throttle write
// amplification the renewal is skipped until the session is past its
// due date:
//
//	dueDate = (expires - SessionMaxAge) + SessionUpdateAge
//
// so a session read shortly after its last renewal is a no-op, while a
// session idle past SessionUpdateAge gets a fresh expiry of
// now + SessionMaxAge. force bypasses the throttle, but a session
// without expiry has nothing to push forward, forced or not.
//
// A skipped renewal returns (nil, nil).
func (s *persistenceService) UpdateSession(ctx context.Context, session *domain.Session, force bool) (*domain.Session, error) {
	if session == nil || session.ID == "" {
		return nil, opErr("updateSession", domain.ErrInvalidInput)
	}
	s.debug("updateSession", "id", session.ID, "force", force)

	maxAge := s.cfg.SessionMaxAge
	updateAge := s.cfg.SessionUpdateAge

	renewable := maxAge > 0 && updateAge >= 0 && session.Expires != nil
	if !renewable && !force {
		return nil, nil
	}
	if maxAge <= 0 || session.Expires == nil {
		// Never-expiring session; stamping now+maxAge here would move
		// the expiry backwards.
		return nil, nil
	}
	if !force {
		dueDate := session.Expires.Add(-maxAge).Add(updateAge)
		if s.now().Before(dueDate) {
			return nil, nil
		}
	}

	expires := s.now().Add(maxAge)
	doc, err := s.store.Patch(ctx, session.ID, map[string]any{
		fieldExpires: timeValue(expires),
	})
	if err != nil {
		return nil, opErr("updateSession", err)
	}
	return sessionFromDoc(doc), nil
}

// DeleteSession removes the session with the given token. Deleting an
// absent session is not an error.
func (s *persistenceService) DeleteSession(ctx context.Context, sessionToken string) error {
	s.debug("deleteSession", "sessionToken", sessionToken)

	doc, err := s.store.FetchOne(ctx, domain.Query{
		Type:  domain.TypeSession,
		Where: map[string]any{fieldSessionToken: sessionToken},
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return opErr("deleteSession", err)
	}

	if err := s.store.Delete(ctx, doc.ID); err != nil {
		return opErr("deleteSession", err)
	}
	return nil
}

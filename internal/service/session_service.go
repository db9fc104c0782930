package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

// SessionStore persists portal sessions.
type SessionStore interface {
	Save(ctx context.Context, session models.Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionService owns the mapping from portal cookie to API credential.
type SessionService struct {
	store  SessionStore
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu           sync.RWMutex
	onInvalidate []func(sessionID string)
}

// NewSessionService constructs a SessionService. ttl caps the lifetime of any session.
func NewSessionService(store SessionStore, ttl time.Duration, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionService{store: store, ttl: ttl, logger: logger, now: time.Now}
}

// OnInvalidate registers fn to run whenever a session is dropped.
func (s *SessionService) OnInvalidate(fn func(sessionID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalidate = append(s.onInvalidate, fn)
}

// Create stores a new session for token. The session never outlives the credential.
func (s *SessionService) Create(ctx context.Context, id, token string, claims models.CredentialClaims, role models.UserRole) (*models.Session, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(expiresAt) {
		expiresAt = claims.ExpiresAt.Time.UTC()
	}
	session := models.Session{
		ID:        id,
		Token:     token,
		UserID:    claims.UserID,
		Role:      role,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if err := s.store.Save(ctx, session, expiresAt.Sub(now)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}
	return &session, nil
}

// Resolve returns the live session for id or a MISSING_CREDENTIAL error.
func (s *SessionService) Resolve(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, appErrors.ErrMissingCredential
	}
	session, err := s.store.Find(ctx, id)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrNotFound.Code) {
			return nil, appErrors.ErrMissingCredential
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session.Expired(s.now()) {
		s.Invalidate(ctx, id)
		return nil, appErrors.ErrMissingCredential
	}
	return session, nil
}

// Invalidate deletes the session and notifies listeners.
func (s *SessionService) Invalidate(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("failed to delete session", zap.String("session_id", id), zap.Error(err))
	}
	s.mu.RLock()
	listeners := append([]func(string){}, s.onInvalidate...)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(id)
	}
	s.logger.Info("session invalidated", zap.String("session_id", id))
}

// Bind returns Credentials backed by the session id.
func (s *SessionService) Bind(id string) Credentials {
	return &sessionCredentials{sessions: s, id: id}
}

type sessionCredentials struct {
	sessions *SessionService
	id       string
}

func (c *sessionCredentials) Token(ctx context.Context) (string, error) {
	session, err := c.sessions.Resolve(ctx, c.id)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

func (c *sessionCredentials) Invalidate(ctx context.Context) {
	c.sessions.Invalidate(ctx, c.id)
}

package mocks

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// MockSessionManager implements auth.SessionManager for testing.
type MockSessionManager struct {
	CreateFn           func(ctx context.Context, userID uuid.UUID) (*auth.Session, error)
	GetFn              func(ctx context.Context, token string) (*auth.Session, error)
	DeleteFn           func(ctx context.Context, token string) error
	DeleteAllForUserFn func(ctx context.Context, userID uuid.UUID) error

	// Sessions backs the default implementation, keyed by session token.
	Sessions map[string]*auth.Session
	TTL      time.Duration
}

// NewMockSessionManager creates a mock session manager with a one-hour TTL.
func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		Sessions: make(map[string]*auth.Session),
		TTL:      time.Hour,
	}
}

func randomToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// Create implements the SessionManager interface.
func (m *MockSessionManager) Create(ctx context.Context, userID uuid.UUID) (*auth.Session, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID)
	}

	now := time.Now().UTC()
	session := &auth.Session{
		Token:     randomToken(),
		UserID:    userID,
		CSRFToken: randomToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.TTL),
	}
	m.Sessions[session.Token] = session
	return session, nil
}

// Get implements the SessionManager interface.
func (m *MockSessionManager) Get(ctx context.Context, token string) (*auth.Session, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, token)
	}

	session, ok := m.Sessions[token]
	if !ok || time.Now().After(session.ExpiresAt) {
		return nil, auth.ErrSessionNotFound
	}
	return session, nil
}

// Delete implements the SessionManager interface.
func (m *MockSessionManager) Delete(ctx context.Context, token string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, token)
	}

	delete(m.Sessions, token)
	return nil
}

// DeleteAllForUser implements the SessionManager interface.
func (m *MockSessionManager) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteAllForUserFn != nil {
		return m.DeleteAllForUserFn(ctx, userID)
	}

	for token, session := range m.Sessions {
		if session.UserID == userID {
			delete(m.Sessions, token)
		}
	}
	return nil
}

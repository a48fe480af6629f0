package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side authenticated state for one client. The client
// holds only the opaque Token; everything else lives in the session backend.
type Session struct {
	Token     string
	UserID    uuid.UUID
	CSRFToken string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionManager defines the interface for session persistence.
// Implementations must treat tokens as opaque and expire sessions after
// their TTL.
type SessionManager interface {
	// Create establishes a new session for the given user. A fresh session
	// token and CSRF token are generated; callers must never reuse a
	// pre-authentication session identifier (session fixation).
	Create(ctx context.Context, userID uuid.UUID) (*Session, error)

	// Get retrieves a session by its token.
	// Returns ErrSessionNotFound if the session does not exist or expired.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete destroys a single session. Deleting an absent session is a
	// no-op.
	Delete(ctx context.Context, token string) error

	// DeleteAllForUser destroys every session belonging to the user, e.g.
	// after account deletion or a password reset.
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

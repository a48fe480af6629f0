package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// MsgNotAuthenticated is the detail body for requests without a valid
// session on endpoints that require one.
const MsgNotAuthenticated = "Authentication credentials were not provided."

// SessionAuth resolves the session cookie into an authenticated principal.
type SessionAuth struct {
	sessions auth.SessionManager
}

// NewSessionAuth creates a new SessionAuth middleware with the given
// session backend.
func NewSessionAuth(sessions auth.SessionManager) *SessionAuth {
	return &SessionAuth{sessions: sessions}
}

// LoadSession reads the session cookie and, when it resolves to a live
// session, stores the session and user ID in the request context. Requests
// without a valid session pass through anonymously; RequireAuth decides
// whether that is acceptable per route.
func (m *SessionAuth) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(shared.SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, auth.ErrSessionNotFound) {
				log := logger.FromContext(r.Context())
				log.Error("failed to load session", "error", err)
				shared.RespondWithDetail(w, r, http.StatusInternalServerError,
					"Authentication error")
				return
			}
			// Stale cookie, continue anonymously.
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), shared.SessionContextKey, session)
		ctx = context.WithValue(ctx, shared.UserIDContextKey, session.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that did not resolve to an authenticated
// session.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserID(r); !ok {
			shared.RespondWithDetail(w, r, http.StatusForbidden, MsgNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID extracts the authenticated user's ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// GetSession extracts the authenticated session from the request context.
func GetSession(r *http.Request) (*auth.Session, bool) {
	session, ok := r.Context().Value(shared.SessionContextKey).(*auth.Session)
	return session, ok && session != nil
}

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

func TestLoadSession(t *testing.T) {
	t.Parallel()

	t.Run("resolves valid session cookie", func(t *testing.T) {
		t.Parallel()

		sessions := mocks.NewMockSessionManager()
		session, err := sessions.Create(context.Background(), uuid.New())
		require.NoError(t, err)

		var gotUserID uuid.UUID
		var gotSession *auth.Session
		handler := middleware.NewSessionAuth(sessions).
			LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = middleware.GetUserID(r)
				gotSession, _ = middleware.GetSession(r)
			}))

		req := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
		req.AddCookie(&http.Cookie{Name: shared.SessionCookieName, Value: session.Token})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, session.UserID, gotUserID)
		require.NotNil(t, gotSession)
		assert.Equal(t, session.Token, gotSession.Token)
	})

	t.Run("missing cookie passes through anonymously", func(t *testing.T) {
		t.Parallel()

		sessions := mocks.NewMockSessionManager()
		called := false
		handler := middleware.NewSessionAuth(sessions).
			LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				_, ok := middleware.GetUserID(r)
				assert.False(t, ok)
			}))

		handler.ServeHTTP(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, "/users/csrf/", nil))
		assert.True(t, called)
	})

	t.Run("stale cookie passes through anonymously", func(t *testing.T) {
		t.Parallel()

		sessions := mocks.NewMockSessionManager()
		called := false
		handler := middleware.NewSessionAuth(sessions).
			LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

		req := httptest.NewRequest(http.MethodGet, "/users/csrf/", nil)
		req.AddCookie(&http.Cookie{Name: shared.SessionCookieName, Value: "expired-token"})
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, called)
	})

	t.Run("backend failure is a server error", func(t *testing.T) {
		t.Parallel()

		sessions := mocks.NewMockSessionManager()
		sessions.GetFn = func(ctx context.Context, token string) (*auth.Session, error) {
			return nil, errors.New("redis unavailable")
		}

		handler := middleware.NewSessionAuth(sessions).
			LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))

		req := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
		req.AddCookie(&http.Cookie{Name: shared.SessionCookieName, Value: "some-token"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	t.Run("rejects anonymous request", func(t *testing.T) {
		t.Parallel()

		handler := middleware.RequireAuth(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me/", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t,
			`{"detail": "Authentication credentials were not provided."}`,
			rec.Body.String())
	})

	t.Run("passes authenticated request", func(t *testing.T) {
		t.Parallel()

		called := false
		handler := middleware.RequireAuth(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

		req := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, uuid.New())
		handler.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
		assert.True(t, called)
	})
}

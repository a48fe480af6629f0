package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// asUser injects an authenticated principal the way the auth middleware
// would.
func asUser(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// withSession injects a full session, for handlers that need the token.
func withSession(req *http.Request, session *auth.Session) *http.Request {
	ctx := context.WithValue(req.Context(), shared.SessionContextKey, session)
	ctx = context.WithValue(ctx, shared.UserIDContextKey, session.UserID)
	return req.WithContext(ctx)
}

// withURLParams attaches chi route parameters to the request context.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// decodeFields parses a field-keyed validation error body.
func decodeFields(t *testing.T, rec *httptest.ResponseRecorder) map[string][]string {
	t.Helper()

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	return fields
}

// decodeDetail parses a {"detail": ...} error body.
func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

// newStoredUser creates a user with the given password already hashed.
func newStoredUser(t *testing.T, hasher interface {
	Hash(password string) (string, error)
}, email, password string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "Alice", "Smith")
	require.NoError(t, err)

	user.HashedPassword, err = hasher.Hash(password)
	require.NoError(t, err)
	return user
}

// cookieByName finds a Set-Cookie header value by cookie name.
func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

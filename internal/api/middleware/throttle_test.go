package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
)

func TestThrottle(t *testing.T) {
	t.Parallel()

	t.Run("allowed request passes with client IP key", func(t *testing.T) {
		t.Parallel()

		var gotKey string
		throttle := &mocks.MockThrottle{
			AllowFn: func(ctx context.Context, clientKey string) (bool, error) {
				gotKey = clientKey
				return true, nil
			},
		}

		called := false
		handler := middleware.Throttle(throttle)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

		req := httptest.NewRequest(http.MethodPost, "/users/login/", nil)
		req.RemoteAddr = "203.0.113.9:54321"
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, called)
		assert.Equal(t, "203.0.113.9", gotKey)
	})

	t.Run("disallowed request gets 429", func(t *testing.T) {
		t.Parallel()

		throttle := &mocks.MockThrottle{
			AllowFn: func(ctx context.Context, clientKey string) (bool, error) {
				return false, nil
			},
		}

		handler := middleware.Throttle(throttle)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/login/", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"detail": "Request was throttled."}`, rec.Body.String())
	})

	t.Run("backend failure fails closed", func(t *testing.T) {
		t.Parallel()

		throttle := &mocks.MockThrottle{
			AllowFn: func(ctx context.Context, clientKey string) (bool, error) {
				return false, errors.New("redis unavailable")
			},
		}

		handler := middleware.Throttle(throttle)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/login/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

// MsgThrottled is the detail body for rate-limited requests.
const MsgThrottled = "Request was throttled."

// LoginThrottle decides whether another attempt from the given client key
// is allowed. The Redis implementation counts attempts in a fixed window.
type LoginThrottle interface {
	Allow(ctx context.Context, clientKey string) (bool, error)
}

// Throttle limits requests per anonymous client, keyed by remote IP. Apply
// only to the login route.
func Throttle(throttle LoginThrottle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := throttle.Allow(r.Context(), clientKey(r))
			if err != nil {
				// Failing open here would let an attacker disable the
				// throttle by overloading Redis.
				log := logger.FromContext(r.Context())
				log.Error("throttle check failed", "error", err)
				shared.RespondWithDetail(w, r, http.StatusInternalServerError,
					"Request could not be processed")
				return
			}
			if !allowed {
				shared.RespondWithDetail(w, r, http.StatusTooManyRequests, MsgThrottled)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the anonymous client. chi's RealIP middleware has
// already rewritten RemoteAddr from X-Forwarded-For when present.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

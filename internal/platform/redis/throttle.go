package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleKeyPrefix = "throttle:login:"

// LoginThrottle limits login attempts per anonymous client using a fixed
// Redis counter window: the first attempt creates the counter with the
// window as TTL, and once the counter passes the limit further attempts are
// rejected until the key expires.
type LoginThrottle struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginThrottle creates a throttle allowing limit attempts per window.
func NewLoginThrottle(client *redis.Client, limit int, window time.Duration) *LoginThrottle {
	if client == nil {
		panic("client cannot be nil")
	}
	return &LoginThrottle{
		client: client,
		limit:  int64(limit),
		window: window,
	}
}

// Allow records an attempt for the given client key and reports whether it
// is within the limit.
func (t *LoginThrottle) Allow(ctx context.Context, clientKey string) (bool, error) {
	key := throttleKeyPrefix + clientKey

	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment throttle counter: %w", err)
	}

	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set throttle window: %w", err)
		}
	}

	return count <= t.limit, nil
}

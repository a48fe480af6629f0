package redis

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

const (
	sessionKeyPrefix   = "session:"
	userIndexKeyPrefix = "user_sessions:"

	// sessionTokenBytes is the entropy of session and CSRF tokens before
	// base64 encoding.
	sessionTokenBytes = 32
)

// SessionStore implements auth.SessionManager on top of Redis.
// Each session is a hash under "session:<token>" with a TTL, and every user
// has an index set "user_sessions:<id>" so that all of a user's sessions can
// be destroyed at once.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Ensure SessionStore implements auth.SessionManager interface
var _ auth.SessionManager = (*SessionStore)(nil)

// NewSessionStore creates a Redis-backed session store. If logger is nil, a
// default logger will be used.
func NewSessionStore(client *redis.Client, ttl time.Duration, log *slog.Logger) *SessionStore {
	if client == nil {
		panic("client cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &SessionStore{
		client: client,
		ttl:    ttl,
		logger: log.With(slog.String("component", "session_store")),
	}
}

// Create implements auth.SessionManager.Create
func (s *SessionStore) Create(ctx context.Context, userID uuid.UUID) (*auth.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	csrfToken, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &auth.Session{
		Token:     token,
		UserID:    userID,
		CSRFToken: csrfToken,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	key := sessionKeyPrefix + session.Token
	fields := map[string]any{
		"user_id":    session.UserID.String(),
		"csrf_token": session.CSRFToken,
		"created_at": session.CreatedAt.Format(time.RFC3339),
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	pipe.SAdd(ctx, userIndexKeyPrefix+userID.String(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Error("failed to store session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	log.Debug("session created", slog.String("user_id", userID.String()))
	return session, nil
}

// Get implements auth.SessionManager.Get
func (s *SessionStore) Get(ctx context.Context, token string) (*auth.Session, error) {
	data, err := s.client.HGetAll(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(data) == 0 {
		return nil, auth.ErrSessionNotFound
	}

	userID, err := uuid.Parse(data["user_id"])
	if err != nil {
		return nil, fmt.Errorf("corrupt session record: %w", err)
	}

	createdAt, _ := time.Parse(time.RFC3339, data["created_at"])
	expiresAt, err := time.Parse(time.RFC3339, data["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("corrupt session record: %w", err)
	}

	// The TTL should expire the key first, but the stored expiry is
	// authoritative.
	if time.Now().After(expiresAt) {
		return nil, auth.ErrSessionNotFound
	}

	return &auth.Session{
		Token:     token,
		UserID:    userID,
		CSRFToken: data["csrf_token"],
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Delete implements auth.SessionManager.Delete
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	key := sessionKeyPrefix + token

	userID, err := s.client.HGet(ctx, key, "user_id").Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session for delete: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.SRem(ctx, userIndexKeyPrefix+userID, key)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// DeleteAllForUser implements auth.SessionManager.DeleteAllForUser
func (s *SessionStore) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	indexKey := userIndexKeyPrefix + userID.String()

	sessionKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list user sessions: %w", err)
	}

	if len(sessionKeys) > 0 {
		if err := s.client.Del(ctx, sessionKeys...).Err(); err != nil {
			return fmt.Errorf("failed to delete user sessions: %w", err)
		}
	}

	if err := s.client.Del(ctx, indexKey).Err(); err != nil {
		return fmt.Errorf("failed to delete user session index: %w", err)
	}

	return nil
}

// generateToken returns a URL-safe random token.
func generateToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

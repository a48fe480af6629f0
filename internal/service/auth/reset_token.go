package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

// resetTokenPurpose is the claim value distinguishing reset tokens from any
// other token this service might ever sign.
const resetTokenPurpose = "password_reset"

// ResetTokenService issues and validates password-reset tokens.
//
// Tokens are HMAC-SHA256 JWTs signed with a per-user key derived from the
// application secret and the user's current password hash. Consuming the
// token changes the hash, which rotates the key, so a token is single-use
// without any server-side token storage. Expiry is enforced through the
// standard exp claim.
type ResetTokenService struct {
	secret   []byte
	lifetime time.Duration
	timeFunc func() time.Time // Injectable for testing
}

// resetTokenClaims defines the structure of the JWT claims we use.
type resetTokenClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// NewResetTokenService creates a ResetTokenService.
func NewResetTokenService(secret string, lifetime time.Duration) (*ResetTokenService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("reset token secret must be at least 32 characters")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("reset token lifetime must be positive")
	}

	return &ResetTokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
		timeFunc: time.Now,
	}, nil
}

// Generate creates a signed reset token for the given user.
func (s *ResetTokenService) Generate(ctx context.Context, user *domain.User) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := resetTokenClaims{
		Purpose: resetTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.userKey(user))
	if err != nil {
		log.Error("failed to sign password reset token",
			"error", err,
			"user_id", user.ID)
		return "", fmt.Errorf("failed to sign password reset token: %w", err)
	}

	return signed, nil
}

// Validate checks a reset token against the user's current state.
// Returns ErrInvalidResetToken when the signature, purpose, subject, or
// expiry check fails. A token generated before a password change fails the
// signature check because the signing key includes the password hash.
func (s *ResetTokenService) Validate(ctx context.Context, user *domain.User, tokenString string) error {
	log := logger.FromContext(ctx)

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.timeFunc),
		jwt.WithExpirationRequired(),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&resetTokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return s.userKey(user), nil
		},
		parserOpts...)
	if err != nil {
		log.Debug("password reset token validation failed",
			"error", err,
			"user_id", user.ID)
		return ErrInvalidResetToken
	}

	claims, ok := token.Claims.(*resetTokenClaims)
	if !ok || claims.Purpose != resetTokenPurpose || claims.Subject != user.ID.String() {
		log.Debug("password reset token has wrong claims",
			"user_id", user.ID)
		return ErrInvalidResetToken
	}

	return nil
}

// userKey derives the per-user signing key. Binding the key to the stored
// password hash is what makes tokens single-use.
func (s *ResetTokenService) userKey(user *domain.User) []byte {
	key := make([]byte, 0, len(s.secret)+len(user.HashedPassword))
	key = append(key, s.secret...)
	key = append(key, user.HashedPassword...)
	return key
}

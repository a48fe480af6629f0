package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidResetToken indicates a password-reset token whose signature,
	// claims, or expiry check failed. A token also becomes invalid once the
	// password it was issued against has changed.
	ErrInvalidResetToken = errors.New("invalid password reset token")

	// ErrSessionNotFound indicates the session does not exist or has expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrIncorrectPassword indicates a password check against the stored
	// hash failed.
	ErrIncorrectPassword = errors.New("incorrect password")
)

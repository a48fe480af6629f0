package task

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Mailer sends the password-reset email. Implemented by the SendGrid
// platform package; tests provide fakes.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
}

// ResetEmailTask sends a password-reset email to one user. The handler that
// creates it has already generated the reset token; the task only performs
// delivery, so user credentials are never read from the worker goroutine.
type ResetEmailTask struct {
	id     uuid.UUID
	userID uuid.UUID
	email  string
	link   string
	mailer Mailer
}

// Ensure ResetEmailTask implements the Task interface
var _ Task = (*ResetEmailTask)(nil)

// NewResetEmailTask builds the reset email task. baseURL is the externally
// visible origin; the confirmation link follows the
// /users/reset-password-confirm/{userID}/ route with the token as a query
// parameter.
func NewResetEmailTask(userID uuid.UUID, email, token, baseURL string, mailer Mailer) *ResetEmailTask {
	link := fmt.Sprintf("%s/users/reset-password-confirm/%s/?token=%s",
		baseURL, userID, url.QueryEscape(token))

	return &ResetEmailTask{
		id:     uuid.New(),
		userID: userID,
		email:  email,
		link:   link,
		mailer: mailer,
	}
}

// ID returns the task's unique identifier.
func (t *ResetEmailTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier.
func (t *ResetEmailTask) Type() string {
	return TaskTypePasswordResetEmail
}

// Execute sends the email.
func (t *ResetEmailTask) Execute(ctx context.Context) error {
	if err := t.mailer.SendPasswordReset(ctx, t.email, t.link); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

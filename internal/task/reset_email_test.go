package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingMailer captures the last send without touching the network.
type recordingMailer struct {
	to   string
	link string
	err  error
}

func (m *recordingMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	m.to = to
	m.link = link
	return m.err
}

func TestResetEmailTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("builds confirmation link and sends", func(t *testing.T) {
		t.Parallel()

		mailer := &recordingMailer{}
		task := NewResetEmailTask(userID, "alice@example.com", "tok+abc",
			"https://app.example.com", mailer)

		assert.Equal(t, TaskTypePasswordResetEmail, task.Type())
		assert.NotEqual(t, uuid.Nil, task.ID())

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, "alice@example.com", mailer.to)
		assert.Equal(t,
			"https://app.example.com/users/reset-password-confirm/"+
				userID.String()+"/?token=tok%2Babc",
			mailer.link)
	})

	t.Run("propagates mailer failure", func(t *testing.T) {
		t.Parallel()

		mailer := &recordingMailer{err: errors.New("sendgrid down")}
		task := NewResetEmailTask(userID, "alice@example.com", "tok",
			"https://app.example.com", mailer)

		assert.Error(t, task.Execute(context.Background()))
	})
}

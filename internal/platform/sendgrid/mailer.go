// Package sendgrid implements outgoing email delivery via the SendGrid API.
package sendgrid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/taskdeck/taskdeck-api/internal/config"
)

// Mailer sends transactional email through SendGrid.
type Mailer struct {
	client *sendgrid.Client
	from   *mail.Email
	logger *slog.Logger
}

// NewMailer creates a SendGrid mailer from email configuration. If logger is
// nil, a default logger will be used.
func NewMailer(cfg config.EmailConfig, log *slog.Logger) *Mailer {
	if log == nil {
		log = slog.Default()
	}

	return &Mailer{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromAddress),
		logger: log.With(slog.String("component", "mailer")),
	}
}

// SendPasswordReset sends the password-reset email containing the
// confirmation link.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, link string) error {
	subject := "Reset your password"
	plain := fmt.Sprintf("Follow this link to reset your password: %s", link)
	html := fmt.Sprintf(`<p>Follow <a href=%q>this link</a> to reset your password.</p>`, link)

	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), plain, html)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		m.logger.Error("failed to send password reset email", "error", err)
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	if response.StatusCode >= 400 {
		m.logger.Error("sendgrid rejected password reset email",
			"status_code", response.StatusCode)
		return fmt.Errorf("sendgrid rejected password reset email: status %d", response.StatusCode)
	}

	m.logger.Info("password reset email sent", "status_code", response.StatusCode)
	return nil
}

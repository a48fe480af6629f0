package mocks

import (
	"context"
	"sync"
)

// SentEmail records one call to SendPasswordReset.
type SentEmail struct {
	To   string
	Link string
}

// MockMailer implements task.Mailer for testing. It records every send and
// is safe for concurrent use, since tasks execute on worker goroutines.
type MockMailer struct {
	SendPasswordResetFn func(ctx context.Context, to, link string) error

	mu   sync.Mutex
	sent []SentEmail
}

// SendPasswordReset implements the Mailer interface.
func (m *MockMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	if m.SendPasswordResetFn != nil {
		return m.SendPasswordResetFn(ctx, to, link)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentEmail{To: to, Link: link})
	return nil
}

// Sent returns a copy of the recorded sends.
func (m *MockMailer) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentEmail, len(m.sent))
	copy(out, m.sent)
	return out
}

// MockThrottle implements the login throttle interface for testing.
type MockThrottle struct {
	AllowFn func(ctx context.Context, clientKey string) (bool, error)
}

// Allow implements the throttle interface. The default allows everything.
func (m *MockThrottle) Allow(ctx context.Context, clientKey string) (bool, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientKey)
	}
	return true, nil
}

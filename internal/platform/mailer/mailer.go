// Package mailer abstracts outbound mail so services never depend on a
// delivery mechanism.
package mailer

import (
	"context"
	"log/slog"
)

// Mailer sends transactional mail to users.
type Mailer interface {
	// SendPasswordReset delivers a password recovery token to the address.
	SendPasswordReset(ctx context.Context, to string, token string) error
}

// LogMailer writes outgoing mail to the structured log instead of delivering
// it. It is the default backend until an SMTP provider is wired in.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer over the given logger.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

var _ Mailer = (*LogMailer)(nil)

func (m *LogMailer) SendPasswordReset(ctx context.Context, to string, token string) error {
	m.logger.Info("Password reset mail",
		slog.String("to", to),
		slog.String("reset_token", token),
	)
	return nil
}

package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// LogSender writes the confirmation and reset links to the log instead of
// delivering mail. It stands in for a real provider in development and tests;
// the links it logs are the same ones a mail template would embed.
type LogSender struct {
	logger  *zap.Logger
	from    string
	baseURL string
}

// NewLogSender creates a log-backed email sender
func NewLogSender(logger *zap.Logger, from, baseURL string) *LogSender {
	return &LogSender{logger: logger, from: from, baseURL: baseURL}
}

// SendVerification logs the email confirmation link
func (s *LogSender) SendVerification(ctx context.Context, email, token string) error {
	s.logger.Info("sending verification email",
		zap.String("from", s.from),
		zap.String("to", email),
		zap.String("link", fmt.Sprintf("%s/api/auth/confirmed_email/%s", s.baseURL, token)),
	)
	return nil
}

// SendPasswordReset logs the password reset link
func (s *LogSender) SendPasswordReset(ctx context.Context, email, token string) error {
	s.logger.Info("sending password reset email",
		zap.String("from", s.from),
		zap.String("to", email),
		zap.String("link", fmt.Sprintf("%s/api/auth/reset_password/%s", s.baseURL, token)),
	)
	return nil
}

// Package mail delivers transactional mail.
package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/shopline/backend/internal/domain/identity"
)

// LogMailer writes outgoing mail to the log instead of sending it.
// Used in development and test environments where no SMTP relay is
// available. The OTP itself is never logged.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

// SendPasswordResetOTP logs that a reset code was issued
func (m *LogMailer) SendPasswordResetOTP(ctx context.Context, email, otp string) error {
	m.logger.Info("Password reset OTP issued",
		zap.String("email", email),
		zap.Int("otp_length", len(otp)),
	)
	return nil
}

// Ensure LogMailer implements Mailer
var _ identity.Mailer = (*LogMailer)(nil)

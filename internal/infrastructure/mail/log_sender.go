package mail

import (
	"context"

	invoicingapp "github.com/invoicehub/backend/internal/application/invoicing"
	"go.uber.org/zap"
)

// Ensure LogSender implements EmailSender
var _ invoicingapp.EmailSender = (*LogSender)(nil)

// LogSender logs outbound emails instead of delivering them. It stands in
// for SES in development and when mail is disabled in configuration.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a logging email sender
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs the email and drops it
func (s *LogSender) Send(ctx context.Context, email *invoicingapp.InvoiceEmail) error {
	s.logger.Info("invoice email suppressed (mail disabled)",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("attachment", email.AttachmentName),
		zap.Int("attachment_bytes", len(email.Attachment)))
	return nil
}

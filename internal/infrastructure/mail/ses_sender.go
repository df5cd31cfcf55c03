// Package mail delivers outbound invoice emails.
package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	invoicingapp "github.com/invoicehub/backend/internal/application/invoicing"
	infraconfig "github.com/invoicehub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure SESSender implements EmailSender
var _ invoicingapp.EmailSender = (*SESSender)(nil)

// SESSender sends invoice emails through Amazon SES. Invoices carry a PDF
// attachment, so messages go out as raw MIME rather than the simple API.
type SESSender struct {
	client *sesv2.Client
	from   string
	logger *zap.Logger
}

// NewSESSender creates an SES backed email sender from configuration.
// Credentials come from the default AWS provider chain.
func NewSESSender(ctx context.Context, cfg *infraconfig.MailConfig, logger *zap.Logger) (*SESSender, error) {
	if cfg == nil {
		return nil, errors.New("mail configuration is required")
	}
	if cfg.From == "" {
		return nil, errors.New("mail sender address is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &SESSender{
		client: sesv2.NewFromConfig(awsCfg),
		from:   cfg.From,
		logger: logger,
	}, nil
}

// Send delivers an invoice email with its PDF attachment
func (s *SESSender) Send(ctx context.Context, email *invoicingapp.InvoiceEmail) error {
	if email == nil {
		return errors.New("email is required")
	}
	if email.To == "" {
		return errors.New("recipient address is required")
	}

	raw, err := buildRawMessage(s.from, email)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{email.To},
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("invoice email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

// buildRawMessage assembles a multipart/mixed MIME message with a plain text
// body and a base64-encoded PDF attachment
func buildRawMessage(from string, email *invoicingapp.InvoiceEmail) ([]byte, error) {
	boundary := fmt.Sprintf("invoicehub-%d", time.Now().UnixNano())

	var buf bytes.Buffer
	write := func(format string, args ...interface{}) {
		fmt.Fprintf(&buf, format, args...)
	}

	write("From: %s\r\n", from)
	write("To: %s\r\n", email.To)
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=utf-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n")
	write("\r\n")
	write("%s\r\n", email.Body)

	if len(email.Attachment) > 0 {
		name := email.AttachmentName
		if name == "" {
			name = "invoice.pdf"
		}
		write("--%s\r\n", boundary)
		write("Content-Type: application/pdf; name=\"%s\"\r\n", name)
		write("Content-Disposition: attachment; filename=\"%s\"\r\n", name)
		write("Content-Transfer-Encoding: base64\r\n")
		write("\r\n")

		encoded := base64.StdEncoding.EncodeToString(email.Attachment)
		// Fold the base64 payload at 76 characters per RFC 2045
		for len(encoded) > 76 {
			write("%s\r\n", encoded[:76])
			encoded = encoded[76:]
		}
		write("%s\r\n", encoded)
	}

	write("--%s--\r\n", boundary)

	return buf.Bytes(), nil
}

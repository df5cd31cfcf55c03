package invoicing

import (
	"context"
	"time"

	partnerapp "github.com/invoicehub/backend/internal/application/partner"
	settingsapp "github.com/invoicehub/backend/internal/application/settings"
	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/invoicehub/backend/internal/domain/settings"
)

// CustomerDirectory upserts the customer details captured alongside an
// invoice. Satisfied by the partner application service.
type CustomerDirectory interface {
	ManageCustomer(ctx context.Context, req partnerapp.ManageCustomerRequest) (*partnerapp.ManageCustomerResult, error)
}

// ConfigProvider exposes the configuration store and the invoice number
// counter. Satisfied by the settings application service.
type ConfigProvider interface {
	GetConfig(ctx context.Context) (*settingsapp.ConfigResponse, error)
	AllocateInvoiceNumber(ctx context.Context) (*settingsapp.AllocatedNumber, error)
}

// DocumentGenerator renders an invoice into a PDF document
type DocumentGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *invoicing.Invoice, cfg settings.Settings) ([]byte, error)
}

// DocumentStorage stores and serves generated invoice documents
type DocumentStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// InvoiceEmail is an outbound invoice notification with the PDF attached
type InvoiceEmail struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

// EmailSender delivers invoice emails to customers
type EmailSender interface {
	Send(ctx context.Context, email *InvoiceEmail) error
}

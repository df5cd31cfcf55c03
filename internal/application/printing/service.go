// Package printing turns invoices into rendered PDF documents.
package printing

import (
	"context"
	"errors"
	"fmt"
	"time"

	invoicingapp "github.com/invoicehub/backend/internal/application/invoicing"
	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/invoicehub/backend/internal/domain/settings"
	"github.com/invoicehub/backend/internal/domain/shared"
	infra "github.com/invoicehub/backend/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// companyData is the letterhead block on the rendered invoice
type companyData struct {
	Name          string
	Address       string
	Suburb        string
	City          string
	Tel           string
	Email         string
	GSTNo         string
	BankName      string
	BankAccountNo string
	PaymentTerms  string
}

// lineData is a single billed row on the rendered invoice
type lineData struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// invoiceTemplateData is the full binding for the invoice template
type invoiceTemplateData struct {
	Company       companyData
	InvoiceNumber string
	InvoiceDate   time.Time
	DueDate       time.Time
	CustomerName  string
	CustomerEmail string
	Lines         []lineData
	Subtotal      decimal.Decimal
	GST           decimal.Decimal
	Total         decimal.Decimal
}

// InvoiceDocumentService renders invoices into PDF documents using the
// built-in A4 template.
type InvoiceDocumentService struct {
	engine   *infra.TemplateEngine
	renderer infra.PDFRenderer
	logger   *zap.Logger
}

// NewInvoiceDocumentService creates a new InvoiceDocumentService
func NewInvoiceDocumentService(engine *infra.TemplateEngine, renderer infra.PDFRenderer, logger *zap.Logger) *InvoiceDocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceDocumentService{
		engine:   engine,
		renderer: renderer,
		logger:   logger,
	}
}

// GenerateInvoicePDF renders the invoice into a PDF document. Company
// details on the letterhead come from the configuration settings.
func (s *InvoiceDocumentService) GenerateInvoicePDF(ctx context.Context, invoice *invoicing.Invoice, cfg settings.Settings) ([]byte, error) {
	content, err := infra.InvoiceTemplateHTML()
	if err != nil {
		return nil, err
	}

	html, err := s.engine.RenderString(infra.InvoiceTemplateName, content, buildTemplateData(invoice, cfg))
	if err != nil {
		var renderErr *infra.RenderError
		if errors.As(err, &renderErr) {
			return nil, shared.NewDomainError(renderErr.Code, renderErr.Message)
		}
		return nil, fmt.Errorf("failed to render invoice template: %w", err)
	}

	result, err := s.renderer.Render(ctx, &infra.RenderRequest{
		HTML:        html,
		PaperSize:   infra.PaperSizeA4,
		Orientation: infra.OrientationPortrait,
		Margins:     infra.DefaultMargins(),
		Title:       "Invoice " + invoice.InvoiceNumber,
	})
	if err != nil {
		var renderErr *infra.RenderError
		if errors.As(err, &renderErr) {
			return nil, shared.NewDomainError(renderErr.Code, renderErr.Message)
		}
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}

	s.logger.Debug("invoice PDF generated",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Int("bytes", len(result.PDFData)),
		zap.Int("pages", result.PageCount))

	return result.PDFData, nil
}

func buildTemplateData(invoice *invoicing.Invoice, cfg settings.Settings) invoiceTemplateData {
	lines := make([]lineData, len(invoice.Lines))
	for i, l := range invoice.Lines {
		lines[i] = lineData{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
		}
	}
	return invoiceTemplateData{
		Company: companyData{
			Name:          cfg.CompanyName,
			Address:       cfg.CompanyAddress,
			Suburb:        cfg.Suburb,
			City:          cfg.City,
			Tel:           cfg.CompanyTel,
			Email:         cfg.CompanyEmail,
			GSTNo:         cfg.GSTNo,
			BankName:      cfg.BankName,
			BankAccountNo: cfg.BankAccountNo,
			PaymentTerms:  cfg.PaymentTerms,
		},
		InvoiceNumber: invoice.InvoiceNumber,
		InvoiceDate:   invoice.InvoiceDate,
		DueDate:       invoice.DueDate,
		CustomerName:  invoice.CustomerName,
		CustomerEmail: invoice.CustomerEmail,
		Lines:         lines,
		Subtotal:      invoice.SubtotalAmount,
		GST:           invoice.GSTAmount,
		Total:         invoice.TotalAmount,
	}
}

// Ensure InvoiceDocumentService satisfies the invoicing document port
var _ invoicingapp.DocumentGenerator = (*InvoiceDocumentService)(nil)

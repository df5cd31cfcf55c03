package invoicing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// documentURLTTL is how long generated download links stay valid
const documentURLTTL = 15 * time.Minute

// InvoiceService orchestrates the invoice lifecycle: creation with customer
// upsert and PDF generation, status transitions, comments and deletion.
type InvoiceService struct {
	invoiceRepo invoicing.InvoiceRepository
	commentRepo invoicing.CommentRepository
	customers   CustomerDirectory
	configs     ConfigProvider
	documents   DocumentGenerator
	storage     DocumentStorage
	mailer      EmailSender
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService. The mailer is optional;
// when nil, invoices are never emailed regardless of configuration.
func NewInvoiceService(
	invoiceRepo invoicing.InvoiceRepository,
	commentRepo invoicing.CommentRepository,
	customers CustomerDirectory,
	configs ConfigProvider,
	documents DocumentGenerator,
	storage DocumentStorage,
	mailer EmailSender,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		commentRepo: commentRepo,
		customers:   customers,
		configs:     configs,
		documents:   documents,
		storage:     storage,
		mailer:      mailer,
		logger:      logger,
	}
}

// Create builds a new invoice end to end: the customer is upserted by email
// when one is supplied, a fresh invoice number is allocated, the PDF is
// rendered and uploaded, and the invoice row is persisted with an audit
// comment. The number allocation happens before the upload, so a failed
// upload burns the number rather than ever reusing one. When enabled by
// configuration, the invoice is emailed to the customer; delivery failures
// are logged and do not fail the creation.
func (s *InvoiceService) Create(ctx context.Context, author string, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	cfg, err := s.configs.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	customerName := req.Customer.Name
	customerEmail := ""
	if req.Customer.Email != "" {
		upserted, err := s.customers.ManageCustomer(ctx, req.Customer.ToManageCustomerRequest())
		if err != nil {
			return nil, err
		}
		customerName = upserted.Customer.Name
		customerEmail = upserted.Customer.Email
	}

	lines := make([]invoicing.InvoiceLine, len(req.Lines))
	for i, l := range req.Lines {
		line, err := invoicing.NewInvoiceLine(l.Description, l.Quantity, l.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}

	invoiceDate := time.Now()
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}

	allocated, err := s.configs.AllocateInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice, err := invoicing.NewInvoice(allocated.InvoiceNumber, customerName, customerEmail, invoiceDate, lines)
	if err != nil {
		return nil, err
	}

	pdf, err := s.documents.GenerateInvoicePDF(ctx, invoice, cfg.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice PDF: %w", err)
	}

	key := documentKey(invoice)
	name := documentName(invoice.InvoiceNumber)
	if err := s.storage.Upload(ctx, key, pdf, "application/pdf"); err != nil {
		return nil, fmt.Errorf("failed to upload invoice PDF: %w", err)
	}
	invoice.AttachDocument(key, name)

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.addAuditComment(ctx, invoice.ID, author, "Invoice "+invoice.InvoiceNumber+" created")

	s.logger.Info("invoice created",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("customer_email", invoice.CustomerEmail),
		zap.String("document_key", key))
	invoice.ClearDomainEvents()

	if cfg.Settings.EmailToCustomer && s.mailer != nil {
		s.emailInvoice(ctx, invoice, cfg.Settings.CompanyName, pdf)
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// UpdateStatus transitions an invoice to a new status and records an audit
// comment. The status write and the comment are separate writes: a failed
// comment is logged but never rolls back the transition.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, author string, req UpdateStatusRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := invoice.Status
	if err := invoice.ChangeStatus(invoicing.InvoiceStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice status: %w", err)
	}

	s.addAuditComment(ctx, invoice.ID, author,
		fmt.Sprintf("Status changed from %s to %s", oldStatus, invoice.Status))

	s.logger.Info("invoice status updated",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(invoice.Status)))
	invoice.ClearDomainEvents()

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// AddComment appends a comment to an invoice
func (s *InvoiceService) AddComment(ctx context.Context, id uuid.UUID, author, text string) (*CommentResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment, err := invoicing.NewComment(invoice.ID, author, text)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	response := ToCommentResponse(comment)
	return &response, nil
}

// ListComments lists an invoice's comments newest-first
func (s *InvoiceService) ListComments(ctx context.Context, id uuid.UUID) ([]CommentResponse, error) {
	if _, err := s.invoiceRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByInvoiceID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = ToCommentResponse(&comments[i])
	}
	return responses, nil
}

// Delete removes the invoice row and its comments. The stored PDF is left
// behind deliberately; the orphaned key is logged for later cleanup.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	if invoice.DocumentKey != "" {
		s.logger.Warn("invoice deleted, stored document orphaned",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.String("document_key", invoice.DocumentKey))
	} else {
		s.logger.Info("invoice deleted",
			zap.String("invoice_number", invoice.InvoiceNumber))
	}
	return nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetDocumentURL returns a time-limited download link for the invoice PDF
func (s *InvoiceService) GetDocumentURL(ctx context.Context, id uuid.UUID) (*DocumentURLResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.DocumentKey == "" {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice has no stored document")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, invoice.DocumentKey, documentURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download URL: %w", err)
	}

	return &DocumentURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// List retrieves invoices with pagination. Search matches the invoice
// number and the customer name.
func (s *InvoiceService) List(ctx context.Context, req ListInvoicesRequest) (*ListInvoicesResponse, error) {
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "invoice_date"
		filter.OrderDir = "desc"
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}

	items := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		items[i] = ToInvoiceResponse(&invoices[i])
	}
	return &ListInvoicesResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// Stats summarizes the invoice book
func (s *InvoiceService) Stats(ctx context.Context) (*StatsResponse, error) {
	total, err := s.invoiceRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}
	billed, err := s.invoiceRepo.SumTotalAmount(ctx, shared.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to sum invoice totals: %w", err)
	}
	return &StatsResponse{TotalInvoices: total, TotalBilled: billed}, nil
}

// addAuditComment records a lifecycle comment. Failures are logged only;
// the triggering write is already committed and is not rolled back.
func (s *InvoiceService) addAuditComment(ctx context.Context, invoiceID uuid.UUID, author, text string) {
	comment, err := invoicing.NewComment(invoiceID, author, text)
	if err == nil {
		err = s.commentRepo.Save(ctx, comment)
	}
	if err != nil {
		s.logger.Error("failed to record audit comment",
			zap.String("invoice_id", invoiceID.String()),
			zap.String("text", text),
			zap.Error(err))
	}
}

func (s *InvoiceService) emailInvoice(ctx context.Context, invoice *invoicing.Invoice, companyName string, pdf []byte) {
	if invoice.CustomerEmail == "" {
		return
	}

	subject := fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, companyName)
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\nPlease find attached invoice %s for %s, due on %s.\r\n\r\nKind regards,\r\n%s\r\n",
		invoice.CustomerName,
		invoice.InvoiceNumber,
		invoice.TotalAmount.StringFixed(2),
		invoice.DueDate.Format("2 January 2006"),
		companyName,
	)

	err := s.mailer.Send(ctx, &InvoiceEmail{
		To:             invoice.CustomerEmail,
		Subject:        subject,
		Body:           body,
		AttachmentName: invoice.DocumentName,
		Attachment:     pdf,
	})
	if err != nil {
		s.logger.Error("failed to email invoice",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.String("to", invoice.CustomerEmail),
			zap.Error(err))
		return
	}

	s.logger.Info("invoice emailed",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("to", invoice.CustomerEmail))
}

// documentKey builds the storage key for an invoice PDF. Keys are derived
// from the aggregate ID, not the display number, which contains slashes.
func documentKey(invoice *invoicing.Invoice) string {
	return fmt.Sprintf("invoices/%d/%s.pdf", invoice.InvoiceDate.Year(), invoice.ID)
}

// documentName builds the user-facing file name for an invoice PDF
func documentName(invoiceNumber string) string {
	return "Invoice-" + strings.ReplaceAll(invoiceNumber, "/", "-") + ".pdf"
}

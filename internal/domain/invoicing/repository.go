package invoicing

import (
	"context"

	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByInvoiceNumber finds an invoice by its display number
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindAll finds invoices matching the filter, ordered by invoice date
	// descending by default. Search matches invoice number and customer name.
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves an invoice with an optimistic lock on the version.
	// Returns ErrConcurrencyConflict when the version has moved.
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// Delete deletes an invoice row and its comments. The stored document
	// is not touched.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumTotalAmount sums TotalAmount across invoices matching the filter
	SumTotalAmount(ctx context.Context, filter shared.Filter) (decimal.Decimal, error)

	// ExistsByInvoiceNumber checks whether a display number is already taken
	ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string) (bool, error)
}

// CommentRepository defines the interface for invoice comment persistence
type CommentRepository interface {
	// Save appends a comment
	Save(ctx context.Context, comment *Comment) error

	// FindByInvoiceID lists an invoice's comments newest-first
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]Comment, error)

	// DeleteByInvoiceID removes all comments for an invoice (cascade on
	// invoice delete)
	DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error
}

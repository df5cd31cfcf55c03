package invoicing

import (
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Comment is an append-only note attached to an invoice. Comments are never
// edited or deleted; they are listed newest-first.
type Comment struct {
	shared.BaseEntity
	InvoiceID uuid.UUID
	Author    string
	Text      string
}

// NewComment creates a new comment on an invoice
func NewComment(invoiceID uuid.UUID, author, text string) (*Comment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment must reference an invoice")
	}
	if text == "" {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment text cannot be empty")
	}
	if len(text) > 4000 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment text cannot exceed 4000 characters")
	}
	return &Comment{
		BaseEntity: shared.NewBaseEntity(),
		InvoiceID:  invoiceID,
		Author:     author,
		Text:       text,
	}, nil
}

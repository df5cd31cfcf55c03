package persistence

import (
	"context"

	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/invoicehub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save appends a comment. Comments are append-only, so this is always an insert.
func (r *GormCommentRepository) Save(ctx context.Context, comment *invoicing.Comment) error {
	model := models.InvoiceCommentModelFromDomain(comment)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByInvoiceID lists an invoice's comments newest-first
func (r *GormCommentRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]invoicing.Comment, error) {
	var commentModels []models.InvoiceCommentModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at DESC").
		Find(&commentModels).Error; err != nil {
		return nil, err
	}

	comments := make([]invoicing.Comment, len(commentModels))
	for i, model := range commentModels {
		comments[i] = *model.ToDomain()
	}
	return comments, nil
}

// DeleteByInvoiceID removes all comments for an invoice
func (r *GormCommentRepository) DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.InvoiceCommentModel{}, "invoice_id = ?", invoiceID).Error
}

// Ensure GormCommentRepository implements CommentRepository
var _ invoicing.CommentRepository = (*GormCommentRepository)(nil)

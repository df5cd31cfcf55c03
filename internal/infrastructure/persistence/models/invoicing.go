package models

import (
	"time"

	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// The display number is unique across the whole table; the allocator hands
// out each running number once, and the index backs that up.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber  string                  `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_number"`
	CustomerName   string                  `gorm:"type:varchar(200);not null;index"`
	CustomerEmail  string                  `gorm:"type:varchar(200)"`
	Lines          []InvoiceLineModel      `gorm:"foreignKey:InvoiceID;references:ID"`
	SubtotalAmount decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	GSTAmount      decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount    decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	InvoiceDate    time.Time               `gorm:"not null;index"`
	DueDate        time.Time               `gorm:"not null"`
	Status         invoicing.InvoiceStatus `gorm:"type:varchar(30);not null;index"`
	DocumentKey    string                  `gorm:"type:varchar(500)"`
	DocumentName   string                  `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	invoice := &invoicing.Invoice{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		InvoiceNumber:  m.InvoiceNumber,
		CustomerName:   m.CustomerName,
		CustomerEmail:  m.CustomerEmail,
		SubtotalAmount: m.SubtotalAmount,
		GSTAmount:      m.GSTAmount,
		TotalAmount:    m.TotalAmount,
		InvoiceDate:    m.InvoiceDate,
		DueDate:        m.DueDate,
		Status:         m.Status,
		DocumentKey:    m.DocumentKey,
		DocumentName:   m.DocumentName,
		Lines:          make([]invoicing.InvoiceLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		invoice.Lines[i] = line.ToDomain()
	}
	return invoice
}

// FromDomain populates the persistence model from a domain Invoice entity.
// Lines are value objects on the aggregate, so each save writes them fresh
// with new row IDs; the repository replaces the old rows in one transaction.
func (m *InvoiceModel) FromDomain(i *invoicing.Invoice) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.InvoiceNumber = i.InvoiceNumber
	m.CustomerName = i.CustomerName
	m.CustomerEmail = i.CustomerEmail
	m.SubtotalAmount = i.SubtotalAmount
	m.GSTAmount = i.GSTAmount
	m.TotalAmount = i.TotalAmount
	m.InvoiceDate = i.InvoiceDate
	m.DueDate = i.DueDate
	m.Status = i.Status
	m.DocumentKey = i.DocumentKey
	m.DocumentName = i.DocumentName
	m.Lines = make([]InvoiceLineModel, len(i.Lines))
	for idx, line := range i.Lines {
		m.Lines[idx] = InvoiceLineModelFromDomain(i.ID, idx, line)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(i *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(i)
	return m
}

// InvoiceLineModel is the persistence model for a single billed line.
// Lines have no identity in the domain; line_no preserves their order.
type InvoiceLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo      int             `gorm:"not null"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain InvoiceLine value.
func (m *InvoiceLineModel) ToDomain() invoicing.InvoiceLine {
	return invoicing.InvoiceLine{
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
	}
}

// InvoiceLineModelFromDomain creates a persistence model from a domain InvoiceLine value.
func InvoiceLineModelFromDomain(invoiceID uuid.UUID, lineNo int, l invoicing.InvoiceLine) InvoiceLineModel {
	return InvoiceLineModel{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		LineNo:      lineNo,
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Amount:      l.Amount,
	}
}

// InvoiceCommentModel is the persistence model for an invoice Comment entity.
type InvoiceCommentModel struct {
	BaseModel
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Author    string    `gorm:"type:varchar(100)"`
	Text      string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (InvoiceCommentModel) TableName() string {
	return "invoice_comments"
}

// ToDomain converts the persistence model to a domain Comment entity.
func (m *InvoiceCommentModel) ToDomain() *invoicing.Comment {
	return &invoicing.Comment{
		BaseEntity: m.BaseModel.ToDomain(),
		InvoiceID:  m.InvoiceID,
		Author:     m.Author,
		Text:       m.Text,
	}
}

// FromDomain populates the persistence model from a domain Comment entity.
func (m *InvoiceCommentModel) FromDomain(c *invoicing.Comment) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.InvoiceID = c.InvoiceID
	m.Author = c.Author
	m.Text = c.Text
}

// InvoiceCommentModelFromDomain creates a new persistence model from a domain Comment entity.
func InvoiceCommentModelFromDomain(c *invoicing.Comment) *InvoiceCommentModel {
	m := &InvoiceCommentModel{}
	m.FromDomain(c)
	return m
}

package invoicing

import (
	"time"

	partnerapp "github.com/invoicehub/backend/internal/application/partner"
	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is a single billed item on an incoming invoice
type InvoiceLineRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// InvoiceCustomerRequest is the customer block on an incoming invoice.
// Email is optional: when present it drives the directory upsert, without
// one the invoice never touches the customer directory.
type InvoiceCustomerRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	StreetAddress string `json:"street_address" binding:"max=500"`
	Suburb        string `json:"suburb" binding:"max=100"`
	City          string `json:"city" binding:"max=100"`
	Pin           string `json:"pin" binding:"max=20"`
	Phone         string `json:"phone" binding:"max=50"`
	Email         string `json:"email" binding:"omitempty,email"`
}

// ToManageCustomerRequest converts the customer block into a directory upsert request
func (r InvoiceCustomerRequest) ToManageCustomerRequest() partnerapp.ManageCustomerRequest {
	return partnerapp.ManageCustomerRequest{
		Name:          r.Name,
		StreetAddress: r.StreetAddress,
		Suburb:        r.Suburb,
		City:          r.City,
		Pin:           r.Pin,
		Phone:         r.Phone,
		Email:         r.Email,
	}
}

// CreateInvoiceRequest creates an invoice together with its customer
type CreateInvoiceRequest struct {
	Customer    InvoiceCustomerRequest `json:"customer" binding:"required"`
	Lines       []InvoiceLineRequest   `json:"lines" binding:"required,min=1,dive"`
	InvoiceDate *time.Time             `json:"invoice_date"`
}

// UpdateStatusRequest transitions an invoice to a new lifecycle status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CommentRequest appends a comment to an invoice
type CommentRequest struct {
	Text string `json:"text" binding:"required,max=4000"`
}

// ListInvoicesRequest filters and paginates the invoice list
type ListInvoicesRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// InvoiceLineResponse is the API representation of an invoice line
type InvoiceLineResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the API representation of an invoice
type InvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	InvoiceNumber  string                `json:"invoice_number"`
	CustomerName   string                `json:"customer_name"`
	CustomerEmail  string                `json:"customer_email"`
	Lines          []InvoiceLineResponse `json:"lines"`
	SubtotalAmount decimal.Decimal       `json:"subtotal_amount"`
	GSTAmount      decimal.Decimal       `json:"gst_amount"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	InvoiceDate    time.Time             `json:"invoice_date"`
	DueDate        time.Time             `json:"due_date"`
	Status         string                `json:"status"`
	DocumentName   string                `json:"document_name,omitempty"`
	HasDocument    bool                  `json:"has_document"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ListInvoicesResponse is a paginated invoice list
type ListInvoicesResponse struct {
	Items []InvoiceResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}

// CommentResponse is the API representation of an invoice comment
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	InvoiceID uuid.UUID `json:"invoice_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentURLResponse carries a time-limited download link for an invoice PDF
type DocumentURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StatsResponse summarizes the invoice book
type StatsResponse struct {
	TotalInvoices int64           `json:"total_invoices"`
	TotalBilled   decimal.Decimal `json:"total_billed"`
}

// ToInvoiceResponse converts a domain invoice to its API representation
func ToInvoiceResponse(inv *invoicing.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
		}
	}
	return InvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		CustomerName:   inv.CustomerName,
		CustomerEmail:  inv.CustomerEmail,
		Lines:          lines,
		SubtotalAmount: inv.SubtotalAmount,
		GSTAmount:      inv.GSTAmount,
		TotalAmount:    inv.TotalAmount,
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate,
		Status:         string(inv.Status),
		DocumentName:   inv.DocumentName,
		HasDocument:    inv.DocumentKey != "",
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

// ToCommentResponse converts a domain comment to its API representation
func ToCommentResponse(c *invoicing.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		InvoiceID: c.InvoiceID,
		Author:    c.Author,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

package invoicing

import (
	"time"

	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusSent             InvoiceStatus = "Invoice Sent"
	InvoiceStatusPaid             InvoiceStatus = "Paid"
	InvoiceStatusFollowUpRequired InvoiceStatus = "Follow-up Required"
)

// GSTRate is the goods and services tax rate applied to the subtotal.
var GSTRate = decimal.NewFromFloat(0.15)

// DueDateTerm is how long after the invoice date payment is due.
const DueDateTerm = 7 * 24 * time.Hour

// InvoiceLine is a single billed item on an invoice
type InvoiceLine struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewInvoiceLine creates a line with its amount computed from quantity and unit price
func NewInvoiceLine(description string, quantity, unitPrice decimal.Decimal) (InvoiceLine, error) {
	if description == "" {
		return InvoiceLine{}, shared.NewDomainError("INVALID_LINE", "Line description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return InvoiceLine{}, shared.NewDomainError("INVALID_LINE", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return InvoiceLine{}, shared.NewDomainError("INVALID_LINE", "Line unit price cannot be negative")
	}
	return InvoiceLine{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
	}, nil
}

// Invoice is the aggregate root for the invoicing context. The invoice
// number is assigned exactly once at creation and never mutated; only the
// status changes afterwards.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber  string
	CustomerName   string
	CustomerEmail  string
	Lines          []InvoiceLine
	SubtotalAmount decimal.Decimal
	GSTAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	InvoiceDate    time.Time
	DueDate        time.Time
	Status         InvoiceStatus
	DocumentKey    string
	DocumentName   string
}

// NewInvoice creates a new invoice in the Sent state. Subtotal, GST and
// total are derived from the lines; the due date is the invoice date plus
// the payment term.
func NewInvoice(invoiceNumber, customerName, customerEmail string, invoiceDate time.Time, lines []InvoiceLine) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_LINES", "Invoice must have at least one line")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amount)
	}
	gst := subtotal.Mul(GSTRate).Round(2)

	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		CustomerName:      customerName,
		CustomerEmail:     customerEmail,
		Lines:             lines,
		SubtotalAmount:    subtotal,
		GSTAmount:         gst,
		TotalAmount:       subtotal.Add(gst),
		InvoiceDate:       invoiceDate,
		DueDate:           invoiceDate.Add(DueDateTerm),
		Status:            InvoiceStatusSent,
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// AttachDocument records the stored PDF backing this invoice
func (i *Invoice) AttachDocument(key, name string) {
	i.DocumentKey = key
	i.DocumentName = name
	i.UpdatedAt = time.Now()
}

// ChangeStatus transitions the invoice to a new status. A transition to the
// current status is rejected; the machine guards no-op writes itself rather
// than relying on callers.
func (i *Invoice) ChangeStatus(target InvoiceStatus) error {
	if err := validateStatus(target); err != nil {
		return err
	}
	if target == i.Status {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already in status "+string(target))
	}

	oldStatus := i.Status
	i.Status = target
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceStatusChangedEvent(i, oldStatus, target))

	return nil
}

// IsPaid returns true if the invoice has been paid
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsOverdue returns true if the invoice is unpaid past its due date
func (i *Invoice) IsOverdue(now time.Time) bool {
	return !i.IsPaid() && now.After(i.DueDate)
}

func validateStatus(s InvoiceStatus) error {
	switch s {
	case InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusFollowUpRequired:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown invoice status: "+string(s))
	}
}

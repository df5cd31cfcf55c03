package settings

import (
	"strconv"
	"time"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// Well-known configuration entry titles. The configuration table is a flat
// Title -> Value store; everything outside this package works with the typed
// Settings struct instead of raw titles.
const (
	TitleInvoiceNumberFormat  = "InvoiceNumberFormat"
	TitleInvoiceRunningNumber = "InvoiceRunningNumber"
	TitleCompanyName          = "CompanyName"
	TitleCompanyAddress       = "CompanyAddress"
	TitleSuburb               = "Suburb"
	TitleCity                 = "City"
	TitleCompanyTel           = "CompanyTel"
	TitleCompanyEmail         = "CompanyEmail"
	TitleGSTNo                = "GSTNo"
	TitleBankName             = "BankName"
	TitleBankAccountNo        = "BankAccountNo"
	TitlePaymentTerms         = "PaymentTerms"
	TitleEmailToCustomer      = "EmailToCustomer"
)

// DefaultInvoiceNumberFormat is used when no format entry is configured.
const DefaultInvoiceNumberFormat = "ISC-{RunningNumber}/{Year}"

// ConfigEntry represents a single named setting row (Title -> Value).
// At most one entry exists per title.
type ConfigEntry struct {
	shared.BaseEntity
	Title string
	Value string
}

// NewConfigEntry creates a new configuration entry
func NewConfigEntry(title, value string) (*ConfigEntry, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	return &ConfigEntry{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Value:      value,
	}, nil
}

// UpdateValue replaces the entry's value
func (e *ConfigEntry) UpdateValue(value string) {
	e.Value = value
	e.UpdatedAt = time.Now()
}

// RunningNumber parses the entry's value as the invoice running number.
// The value must be a non-negative integer.
func (e *ConfigEntry) RunningNumber() (int64, error) {
	n, err := strconv.ParseInt(e.Value, 10, 64)
	if err != nil || n < 0 {
		return 0, shared.NewDomainError("CONFIGURATION_ERROR",
			"Running number must be a non-negative integer, got "+strconv.Quote(e.Value))
	}
	return n, nil
}

func validateTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Configuration title cannot be empty")
	}
	if len(title) > 100 {
		return shared.NewDomainError("INVALID_TITLE", "Configuration title cannot exceed 100 characters")
	}
	return nil
}

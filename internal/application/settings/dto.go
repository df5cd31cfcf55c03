package settings

import (
	"github.com/invoicehub/backend/internal/domain/settings"
)

// ConfigResponse is the API representation of the loaded configuration
type ConfigResponse struct {
	Settings settings.Settings `json:"settings"`

	// CurrentInvoiceNumber is the next invoice number formatted for display
	// ("ISC-007/2024"). Empty when no running-number row exists yet.
	CurrentInvoiceNumber string `json:"current_invoice_number"`
}

// AllocatedNumber is the result of a running-number allocation
type AllocatedNumber struct {
	// RawValue is the pre-increment counter value ("7")
	RawValue string `json:"raw_value"`
	// InvoiceNumber is the formatted display number ("ISC-007/2024")
	InvoiceNumber string `json:"invoice_number"`
}

// UpdateEntryRequest updates a single configuration entry
type UpdateEntryRequest struct {
	Value string `json:"value" binding:"max=2000"`
}

package settings

import (
	"github.com/invoicehub/backend/internal/domain/shared"
)

// Settings is the typed view of the configuration table. It is built once
// from all entries; missing fields degrade to empty strings rather than
// failing, matching how the flat table is maintained by hand.
type Settings struct {
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	Suburb         string `json:"suburb"`
	City           string `json:"city"`
	CompanyTel     string `json:"company_tel"`
	CompanyEmail   string `json:"company_email"`
	GSTNo          string `json:"gst_no"`
	BankName       string `json:"bank_name"`
	BankAccountNo  string `json:"bank_account_no"`
	PaymentTerms   string `json:"payment_terms"`

	// InvoiceNumberFormat is the template with {RunningNumber} and {Year}
	// placeholders. Defaults to DefaultInvoiceNumberFormat when absent.
	InvoiceNumberFormat string `json:"invoice_number_format"`

	// EmailToCustomer controls whether generated invoices are emailed.
	// Any stored value other than "No" enables it.
	EmailToCustomer bool `json:"email_to_customer"`
}

// BuildSettings derives the typed settings from the raw configuration rows.
// Returns a configuration error if no rows exist at all.
func BuildSettings(entries []ConfigEntry) (*Settings, error) {
	if len(entries) == 0 {
		return nil, shared.NewDomainError("CONFIGURATION_ERROR", "Configuration store is empty")
	}

	values := make(map[string]string, len(entries))
	for _, e := range entries {
		values[e.Title] = e.Value
	}

	s := &Settings{
		CompanyName:         values[TitleCompanyName],
		CompanyAddress:      values[TitleCompanyAddress],
		Suburb:              values[TitleSuburb],
		City:                values[TitleCity],
		CompanyTel:          values[TitleCompanyTel],
		CompanyEmail:        values[TitleCompanyEmail],
		GSTNo:               values[TitleGSTNo],
		BankName:            values[TitleBankName],
		BankAccountNo:       values[TitleBankAccountNo],
		PaymentTerms:        values[TitlePaymentTerms],
		InvoiceNumberFormat: values[TitleInvoiceNumberFormat],
		EmailToCustomer:     values[TitleEmailToCustomer] != "No",
	}
	if s.InvoiceNumberFormat == "" {
		s.InvoiceNumberFormat = DefaultInvoiceNumberFormat
	}
	return s, nil
}

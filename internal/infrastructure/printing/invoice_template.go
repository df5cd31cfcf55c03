package printing

import (
	"embed"
)

//go:embed templates/*.html
var templateFS embed.FS

// InvoiceTemplateName is the template identifier used in render errors
const InvoiceTemplateName = "invoice_a4"

// InvoiceTemplateHTML returns the built-in A4 invoice template
func InvoiceTemplateHTML() (string, error) {
	data, err := templateFS.ReadFile("templates/invoice_a4.html")
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "built-in invoice template missing", err)
	}
	return string(data), nil
}

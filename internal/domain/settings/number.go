package settings

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/invoicehub/backend/internal/domain/shared"
)

var digitRun = regexp.MustCompile(`\d+`)

// FormatInvoiceNumber turns a raw running number and a format template into
// a display invoice number for the current calendar year.
func FormatInvoiceNumber(number, format string) string {
	return FormatInvoiceNumberForYear(number, format, time.Now().Year())
}

// FormatInvoiceNumberForYear substitutes the {RunningNumber} and {Year}
// placeholders. The running number is zero-padded to at least 3 digits.
func FormatInvoiceNumberForYear(number, format string, year int) string {
	padded := number
	if len(padded) < 3 {
		padded = strings.Repeat("0", 3-len(padded)) + padded
	}
	out := strings.ReplaceAll(format, "{RunningNumber}", padded)
	out = strings.ReplaceAll(out, "{Year}", fmt.Sprintf("%04d", year))
	return out
}

// ExtractRunningNumber pulls the numeric component out of a displayed
// invoice number ("ISC-007/2024" -> "7"). The first digit run wins; an
// invoice number without one is malformed.
func ExtractRunningNumber(display string) (string, error) {
	match := digitRun.FindString(display)
	if match == "" {
		return "", shared.NewDomainError("CONFIGURATION_ERROR",
			"No numeric component found in invoice number "+display)
	}
	trimmed := strings.TrimLeft(match, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return trimmed, nil
}

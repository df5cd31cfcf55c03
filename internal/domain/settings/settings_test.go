package settings

import (
	"testing"

	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, title, value string) ConfigEntry {
	t.Helper()
	e, err := NewConfigEntry(title, value)
	require.NoError(t, err)
	return *e
}

func TestBuildSettings_EmptyStore(t *testing.T) {
	_, err := BuildSettings(nil)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFIGURATION_ERROR", domainErr.Code)
}

func TestBuildSettings_DefaultsMissingFieldsToEmpty(t *testing.T) {
	s, err := BuildSettings([]ConfigEntry{
		entry(t, TitleCompanyName, "Acme Accounting"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Accounting", s.CompanyName)
	assert.Empty(t, s.BankName)
	assert.Empty(t, s.GSTNo)
}

func TestBuildSettings_DefaultInvoiceNumberFormat(t *testing.T) {
	s, err := BuildSettings([]ConfigEntry{
		entry(t, TitleCompanyName, "Acme"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ISC-{RunningNumber}/{Year}", s.InvoiceNumberFormat)
}

func TestBuildSettings_EmailToCustomer(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"Yes", true},
		{"", true},
		{"anything", true},
		{"No", false},
	}
	for _, tt := range tests {
		s, err := BuildSettings([]ConfigEntry{
			entry(t, TitleEmailToCustomer, tt.value),
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.EmailToCustomer, "value %q", tt.value)
	}
}

func TestConfigEntry_RunningNumber(t *testing.T) {
	e := entry(t, TitleInvoiceRunningNumber, "8")
	n, err := e.RunningNumber()
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
}

func TestConfigEntry_RunningNumberInvalid(t *testing.T) {
	for _, v := range []string{"", "abc", "-1", "1.5"} {
		e := entry(t, TitleInvoiceRunningNumber, v)
		_, err := e.RunningNumber()
		require.Error(t, err, "value %q", v)
	}
}

func TestNewConfigEntry_EmptyTitle(t *testing.T) {
	_, err := NewConfigEntry("", "x")
	require.Error(t, err)
}

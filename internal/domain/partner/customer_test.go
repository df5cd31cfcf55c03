package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer_Success(t *testing.T) {
	c, err := NewCustomer("John Doe", "john@example.com")
	require.NoError(t, err)

	assert.Equal(t, "John Doe", c.Name)
	assert.Equal(t, "john@example.com", c.Email)
	assert.Equal(t, CustomerStatusActive, c.Status)
	assert.Equal(t, 1, c.GetVersion())
	assert.Len(t, c.GetDomainEvents(), 1)
}

func TestNewCustomer_LowercasesEmail(t *testing.T) {
	c, err := NewCustomer("John Doe", "John@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", c.Email)
}

func TestNewCustomer_EmptyName(t *testing.T) {
	_, err := NewCustomer("", "john@example.com")
	require.Error(t, err)
}

func TestNewCustomer_InvalidEmail(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "missing@tld"} {
		_, err := NewCustomer("John", email)
		require.Error(t, err, "email %q", email)
	}
}

func TestCustomer_SetAddress(t *testing.T) {
	c, err := NewCustomer("John Doe", "john@example.com")
	require.NoError(t, err)

	require.NoError(t, c.SetAddress("1 Main St", "Ponsonby", "Auckland", "1011"))
	assert.Equal(t, "1 Main St, Ponsonby, Auckland, 1011", c.FullAddress())
	assert.Equal(t, 2, c.GetVersion())
}

func TestCustomer_SetPhone_Invalid(t *testing.T) {
	c, err := NewCustomer("John Doe", "john@example.com")
	require.NoError(t, err)

	require.Error(t, c.SetPhone("not a phone!"))
	require.NoError(t, c.SetPhone("+64 21 555-0199"))
}

func TestCustomer_Deactivate(t *testing.T) {
	c, err := NewCustomer("John Doe", "john@example.com")
	require.NoError(t, err)

	require.NoError(t, c.Deactivate())
	assert.False(t, c.IsActive())
	require.Error(t, c.Deactivate())
}

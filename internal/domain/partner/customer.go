package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/invoicehub/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "Active"
	CustomerStatusInactive CustomerStatus = "Inactive"
)

// Customer represents an entry in the customer directory. Customers are
// deduplicated by billing email: the email is the natural key and an insert
// is skipped when a row with that email already exists.
type Customer struct {
	shared.BaseAggregateRoot
	Name          string
	StreetAddress string
	Suburb        string
	City          string
	Pin           string
	Phone         string
	Email         string
	Status        CustomerStatus
}

// NewCustomer creates a new customer with required fields
func NewCustomer(name, email string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             strings.ToLower(email),
		Status:            CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// SetAddress sets the customer's address information
func (c *Customer) SetAddress(street, suburb, city, pin string) error {
	if street != "" && len(street) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Street address cannot exceed 500 characters")
	}
	if suburb != "" && len(suburb) > 100 {
		return shared.NewDomainError("INVALID_SUBURB", "Suburb cannot exceed 100 characters")
	}
	if city != "" && len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	if pin != "" && len(pin) > 20 {
		return shared.NewDomainError("INVALID_PIN", "Pin code cannot exceed 20 characters")
	}

	c.StreetAddress = street
	c.Suburb = suburb
	c.City = city
	c.Pin = pin
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetPhone sets the customer's phone number
func (c *Customer) SetPhone(phone string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// FullAddress returns the formatted address for display on invoices
func (c *Customer) FullAddress() string {
	parts := []string{}
	if c.StreetAddress != "" {
		parts = append(parts, c.StreetAddress)
	}
	if c.Suburb != "" {
		parts = append(parts, c.Suburb)
	}
	if c.City != "" {
		parts = append(parts, c.City)
	}
	if c.Pin != "" {
		parts = append(parts, c.Pin)
	}
	return strings.Join(parts, ", ")
}

// Validation functions

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

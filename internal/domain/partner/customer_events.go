package partner

import (
	"github.com/invoicehub/backend/internal/domain/shared"
)

// Event types for the customer aggregate
const (
	EventTypeCustomerCreated = "partner.customer.created"
)

// CustomerCreatedEvent is raised when a new customer is added to the directory
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, "Customer", c.ID),
		Name:            c.Name,
		Email:           c.Email,
	}
}

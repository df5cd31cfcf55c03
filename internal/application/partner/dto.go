package partner

import (
	"time"

	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// ManageCustomerRequest carries the customer details captured alongside an
// invoice. Email is the dedup key; existing rows are never merged.
type ManageCustomerRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	StreetAddress string `json:"street_address" binding:"max=500"`
	Suburb        string `json:"suburb" binding:"max=100"`
	City          string `json:"city" binding:"max=100"`
	Pin           string `json:"pin" binding:"max=20"`
	Phone         string `json:"phone" binding:"max=50"`
	Email         string `json:"email" binding:"required,email"`
}

// CustomerResponse is the API representation of a customer
type CustomerResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	StreetAddress string    `json:"street_address"`
	Suburb        string    `json:"suburb"`
	City          string    `json:"city"`
	Pin           string    `json:"pin"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ManageCustomerResult reports whether the upsert inserted a new row
type ManageCustomerResult struct {
	Customer CustomerResponse `json:"customer"`
	Created  bool             `json:"created"`
}

// ToCustomerResponse converts a domain customer to its API representation
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		StreetAddress: c.StreetAddress,
		Suburb:        c.Suburb,
		City:          c.City,
		Pin:           c.Pin,
		Phone:         c.Phone,
		Email:         c.Email,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

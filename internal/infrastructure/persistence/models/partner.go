package models

import (
	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/shared"
)

// CustomerModel is the persistence model for the Customer aggregate root.
// The email column carries a unique index: the database itself enforces that
// the directory never holds two rows for the same billing address.
type CustomerModel struct {
	AggregateModel
	Name          string                 `gorm:"type:varchar(200);not null;index"`
	StreetAddress string                 `gorm:"type:varchar(500)"`
	Suburb        string                 `gorm:"type:varchar(100)"`
	City          string                 `gorm:"type:varchar(100)"`
	Pin           string                 `gorm:"type:varchar(20)"`
	Phone         string                 `gorm:"type:varchar(50)"`
	Email         string                 `gorm:"type:varchar(200);not null;uniqueIndex:idx_customers_email"`
	Status        partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'Active'"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:          m.Name,
		StreetAddress: m.StreetAddress,
		Suburb:        m.Suburb,
		City:          m.City,
		Pin:           m.Pin,
		Phone:         m.Phone,
		Email:         m.Email,
		Status:        m.Status,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.StreetAddress = c.StreetAddress
	m.Suburb = c.Suburb
	m.City = c.City
	m.Pin = c.Pin
	m.Phone = c.Phone
	m.Email = c.Email
	m.Status = c.Status
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

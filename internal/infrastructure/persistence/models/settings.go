package models

import (
	"github.com/invoicehub/backend/internal/domain/settings"
)

// ConfigEntryModel is the persistence model for a ConfigEntry row.
// The unique index on title keeps the store flat: one row per setting.
type ConfigEntryModel struct {
	BaseModel
	Title string `gorm:"type:varchar(100);not null;uniqueIndex:idx_configurations_title"`
	Value string `gorm:"type:varchar(500);not null;default:''"`
}

// TableName returns the table name for GORM
func (ConfigEntryModel) TableName() string {
	return "configurations"
}

// ToDomain converts the persistence model to a domain ConfigEntry entity.
func (m *ConfigEntryModel) ToDomain() *settings.ConfigEntry {
	return &settings.ConfigEntry{
		BaseEntity: m.BaseModel.ToDomain(),
		Title:      m.Title,
		Value:      m.Value,
	}
}

// FromDomain populates the persistence model from a domain ConfigEntry entity.
func (m *ConfigEntryModel) FromDomain(e *settings.ConfigEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Title = e.Title
	m.Value = e.Value
}

// ConfigEntryModelFromDomain creates a new persistence model from a domain ConfigEntry entity.
func ConfigEntryModelFromDomain(e *settings.ConfigEntry) *ConfigEntryModel {
	m := &ConfigEntryModel{}
	m.FromDomain(e)
	return m
}

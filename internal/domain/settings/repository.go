package settings

import (
	"context"
)

// ConfigRepository defines the interface for configuration persistence
type ConfigRepository interface {
	// FindAll returns every configuration entry
	FindAll(ctx context.Context) ([]ConfigEntry, error)

	// FindByTitle finds a single entry by its title
	FindByTitle(ctx context.Context, title string) (*ConfigEntry, error)

	// Save creates or updates an entry (one row per title)
	Save(ctx context.Context, entry *ConfigEntry) error

	// AllocateRunningNumber atomically increments the stored running number
	// and returns the value as it was before the increment. The increment is
	// serialized (row lock inside a transaction), so concurrent callers
	// always receive distinct consecutive values.
	AllocateRunningNumber(ctx context.Context) (int64, error)
}

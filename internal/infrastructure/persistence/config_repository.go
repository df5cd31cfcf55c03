package persistence

import (
	"context"
	"errors"
	"strconv"

	"github.com/invoicehub/backend/internal/domain/settings"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConfigRepository implements ConfigRepository using GORM
type GormConfigRepository struct {
	db *gorm.DB
}

// NewGormConfigRepository creates a new GormConfigRepository
func NewGormConfigRepository(db *gorm.DB) *GormConfigRepository {
	return &GormConfigRepository{db: db}
}

// FindAll returns every configuration entry ordered by title
func (r *GormConfigRepository) FindAll(ctx context.Context) ([]settings.ConfigEntry, error) {
	var entryModels []models.ConfigEntryModel
	if err := r.db.WithContext(ctx).
		Order("title ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]settings.ConfigEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// FindByTitle finds a single entry by its title
func (r *GormConfigRepository) FindByTitle(ctx context.Context, title string) (*settings.ConfigEntry, error) {
	var model models.ConfigEntryModel
	if err := r.db.WithContext(ctx).First(&model, "title = ?", title).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an entry
func (r *GormConfigRepository) Save(ctx context.Context, entry *settings.ConfigEntry) error {
	model := models.ConfigEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// AllocateRunningNumber increments the stored running number and returns the
// value as it was before the increment. The row is locked FOR UPDATE inside a
// transaction, so concurrent allocations serialize and every caller gets a
// distinct value. A missing counter row surfaces as ErrNotFound.
func (r *GormConfigRepository) AllocateRunningNumber(ctx context.Context) (int64, error) {
	var allocated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ConfigEntryModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&model, "title = ?", settings.TitleInvoiceRunningNumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		current, err := model.ToDomain().RunningNumber()
		if err != nil {
			return err
		}

		if err := tx.Model(&models.ConfigEntryModel{}).
			Where("id = ?", model.ID).
			Update("value", strconv.FormatInt(current+1, 10)).Error; err != nil {
			return err
		}

		allocated = current
		return nil
	})
	if err != nil {
		return 0, err
	}
	return allocated, nil
}

// Ensure GormConfigRepository implements ConfigRepository
var _ settings.ConfigRepository = (*GormConfigRepository)(nil)

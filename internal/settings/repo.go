package settings

import (
	"context"
	"fmt"

	"github.com/cafev2/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles store settings persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to settings operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get loads the singleton settings row.
func (r *Repository) Get(ctx context.Context) (*models.StoreSettings, error) {
	var settings models.StoreSettings
	if err := r.db.WithContext(ctx).
		Where("id = ?", models.SettingsRowID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save persists the settings row, creating it when absent.
func (r *Repository) Save(ctx context.Context, settings *models.StoreSettings) error {
	if settings == nil {
		return fmt.Errorf("settings is required")
	}
	settings.ID = models.SettingsRowID
	return r.db.WithContext(ctx).Save(settings).Error
}

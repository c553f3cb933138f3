// Package menu owns the café's product catalog: listing for the
// storefront, validated admin mutations, and spreadsheet import/export.
package menu

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cafev2/storefront-backend/pkg/db/models"
)

// Repository handles menu item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to menu operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the full catalog ordered by name, matching the remote
// collection ordering the storefront renders.
func (r *Repository) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.db.WithContext(ctx).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID loads a single item.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new item.
func (r *Repository) Create(ctx context.Context, item *models.MenuItem) error {
	if item == nil {
		return fmt.Errorf("item is required")
	}
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateBatch inserts multiple items in one transaction so a bulk import
// lands whole or not at all.
func (r *Repository) CreateBatch(ctx context.Context, items []models.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// Update persists all mutable fields of an existing item.
func (r *Repository) Update(ctx context.Context, item *models.MenuItem) error {
	if item == nil {
		return fmt.Errorf("item is required")
	}
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an item by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

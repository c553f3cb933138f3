// Package adminauth authenticates the dashboard administrator and issues
// the stateless session tokens the admin middleware verifies.
package adminauth

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/cafev2/storefront-backend/pkg/db/models"
)

// Repository handles admin user persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to admin user operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByEmail loads an admin by normalized email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// Create inserts an admin user, normalizing the email first.
func (r *Repository) Create(ctx context.Context, admin *models.AdminUser) error {
	admin.Email = normalizeEmail(admin.Email)
	return r.db.WithContext(ctx).Create(admin).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cafev2/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cafev2/storefront-backend/pkg/errors"
	"github.com/cafev2/storefront-backend/pkg/logger"
)

type repository interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	CreateBatch(ctx context.Context, items []models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImportResult summarizes a spreadsheet import.
type ImportResult struct {
	Imported int         `json:"imported"`
	Skipped  int         `json:"skipped"`
	IDs      []uuid.UUID `json:"ids"`
}

// Service exposes catalog operations.
type Service interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	Create(ctx context.Context, input ItemInput) (*models.MenuItem, error)
	Update(ctx context.Context, id uuid.UUID, input ItemInput) (*models.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

type service struct {
	repo repository
	logg *logger.Logger
}

// NewService builds a menu service.
func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu")
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
	}
	return item, nil
}

func (s *service) Create(ctx context.Context, input ItemInput) (*models.MenuItem, error) {
	normalized := normalizeItem(input)
	if normalized.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}

	item := itemFromNormalized(normalized)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create menu item")
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input ItemInput) (*models.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized := normalizeItem(input)
	if normalized.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}

	item.Name = normalized.Name
	item.Price = normalized.Price.Decimal
	item.Category = normalized.Category
	item.Description = normalized.Description
	item.IsVeg = normalized.IsVeg
	item.Media = normalized.Media

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update menu item")
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete menu item")
	}
	return nil
}

// ImportCSV ingests a spreadsheet export. Rows that fail to normalize
// are skipped and reported rather than aborting the whole batch; the
// rows that do import land in a single transaction.
func (s *service) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	inputs, parseErr := ParseCSV(r)
	if len(inputs) == 0 {
		if parseErr != nil {
			return ImportResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "parse import file")
		}
		return ImportResult{}, pkgerrors.New(pkgerrors.CodeValidation, "import file has no rows")
	}

	items := make([]models.MenuItem, 0, len(inputs))
	skipped := 0
	for _, input := range inputs {
		normalized := normalizeItem(input)
		if normalized.Name == "" {
			skipped++
			continue
		}
		items = append(items, *itemFromNormalized(normalized))
	}

	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return ImportResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "import menu items")
	}

	if parseErr != nil {
		ctx = s.logg.WithField(ctx, "rows_skipped", skipped)
		s.logg.Warn(ctx, fmt.Sprintf("import completed with row errors: %v", parseErr))
	}

	ids := make([]uuid.UUID, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ImportResult{Imported: len(items), Skipped: skipped, IDs: ids}, nil
}

// ExportCSV writes the catalog as a spreadsheet-compatible CSV. Only the
// first media entry exports; the format mirrors what import accepts.
func (s *service) ExportCSV(ctx context.Context, w io.Writer) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, items)
}

func itemFromNormalized(n normalizedItem) *models.MenuItem {
	return &models.MenuItem{
		ID:          uuid.New(),
		Name:        n.Name,
		Description: n.Description,
		Category:    n.Category,
		Price:       n.Price.Decimal,
		IsVeg:       n.IsVeg,
		Media:       n.Media,
	}
}

// FirstImageURL returns the item's primary thumbnail URL, honoring the
// gallery order.
func FirstImageURL(item models.MenuItem) string {
	for _, m := range item.Media {
		if strings.TrimSpace(m.URL) != "" {
			return m.URL
		}
	}
	return ""
}

package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/cafev2/storefront-backend/internal/schedule"
	"github.com/cafev2/storefront-backend/pkg/config"
	"github.com/cafev2/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cafev2/storefront-backend/pkg/errors"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"github.com/cafev2/storefront-backend/pkg/security"
	"gorm.io/gorm"
)

// Settings is the read model handed to consumers.
type Settings struct {
	ManualOpen bool
	OpenTime   string
	CloseTime  string
	Message    string
}

// UpdateInput carries a partial settings mutation; absent fields keep
// their prior values.
type UpdateInput struct {
	ManualOpen *bool
	OpenTime   *string
	CloseTime  *string
	Message    *string
}

type repository interface {
	Get(ctx context.Context) (*models.StoreSettings, error)
	Save(ctx context.Context, settings *models.StoreSettings) error
}

type changePublisher interface {
	PublishSettingsChanged(ctx context.Context) error
}

// Service exposes store settings operations.
type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, input UpdateInput) (Settings, error)
}

type service struct {
	repo      repository
	publisher changePublisher
	logg      *logger.Logger
	defaults  config.AvailabilityConfig
}

// NewService builds a settings service backed by the provided stack.
// The publisher may be nil when no change feed is wired (tests, one-shot tools).
func NewService(repo repository, publisher changePublisher, logg *logger.Logger, defaults config.AvailabilityConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		logg:      logg,
		defaults:  defaults,
	}, nil
}

// Get returns the current settings, creating the row with defaults when
// no settings document exists yet.
func (s *service) Get(ctx context.Context) (Settings, error) {
	row, err := s.load(ctx)
	if err != nil {
		return Settings{}, err
	}
	return toSettings(row), nil
}

// Update merges the provided fields into the stored settings and notifies
// availability watchers. A notification failure is logged but does not fail
// the write; the periodic recheck will pick the change up regardless.
func (s *service) Update(ctx context.Context, input UpdateInput) (Settings, error) {
	row, err := s.load(ctx)
	if err != nil {
		return Settings{}, err
	}

	if input.ManualOpen != nil {
		row.ManualOpen = *input.ManualOpen
	}
	if input.OpenTime != nil {
		s.warnUnparseable(ctx, "open_time", *input.OpenTime)
		row.OpenTime = *input.OpenTime
	}
	if input.CloseTime != nil {
		s.warnUnparseable(ctx, "close_time", *input.CloseTime)
		row.CloseTime = *input.CloseTime
	}
	if input.Message != nil {
		row.Message = security.SanitizeText(*input.Message)
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return Settings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist settings")
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSettingsChanged(ctx); err != nil {
			s.logg.Error(ctx, "settings change notification failed", err)
		}
	}

	return toSettings(row), nil
}

func (s *service) load(ctx context.Context) (*models.StoreSettings, error) {
	row, err := s.repo.Get(ctx)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}

	row = &models.StoreSettings{
		ID:         models.SettingsRowID,
		ManualOpen: true,
		OpenTime:   s.defaults.DefaultOpenTime,
		CloseTime:  s.defaults.DefaultCloseTime,
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create default settings")
	}
	return row, nil
}

func (s *service) warnUnparseable(ctx context.Context, field, value string) {
	if value == "" {
		return
	}
	if _, ok := schedule.ParseClock(value); !ok {
		ctx = s.logg.WithFields(ctx, map[string]any{"field": field, "value": value})
		s.logg.Warn(ctx, "stored schedule time is not parseable; availability will default to open")
	}
}

func toSettings(row *models.StoreSettings) Settings {
	return Settings{
		ManualOpen: row.ManualOpen,
		OpenTime:   row.OpenTime,
		CloseTime:  row.CloseTime,
		Message:    row.Message,
	}
}

package settings

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/cafev2/storefront-backend/pkg/config"
	"github.com/cafev2/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cafev2/storefront-backend/pkg/errors"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

func testDefaults() config.AvailabilityConfig {
	return config.AvailabilityConfig{DefaultOpenTime: "10:00", DefaultCloseTime: "22:00"}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
}

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

type stubRepo struct {
	row     *models.StoreSettings
	getErr  error
	saveErr error
	saved   int
}

func (s *stubRepo) Get(ctx context.Context) (*models.StoreSettings, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.row == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *s.row
	return &copy, nil
}

func (s *stubRepo) Save(ctx context.Context, settings *models.StoreSettings) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved++
	copy := *settings
	s.row = &copy
	return nil
}

type stubPublisher struct {
	calls int
	err   error
}

func (s *stubPublisher) PublishSettingsChanged(ctx context.Context) error {
	s.calls++
	return s.err
}

func newTestService(t *testing.T, repo *stubRepo, pub *stubPublisher) Service {
	t.Helper()
	var publisher changePublisher
	if pub != nil {
		publisher = pub
	}
	svc, err := NewService(repo, publisher, testLogger(), testDefaults())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestGetCreatesDefaultsWhenMissing(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := newTestService(t, repo, nil)

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.ManualOpen {
		t.Fatal("defaults should be manually open")
	}
	if got.OpenTime != "10:00" || got.CloseTime != "22:00" {
		t.Fatalf("unexpected default window %s-%s", got.OpenTime, got.CloseTime)
	}
	if repo.saved != 1 {
		t.Fatalf("expected implicit create, saved=%d", repo.saved)
	}
}

func TestUpdateMergesOnlyPresentFields(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{row: &models.StoreSettings{
		ID:         models.SettingsRowID,
		ManualOpen: true,
		OpenTime:   "10:00",
		CloseTime:  "22:00",
		Message:    "hello",
	}}
	pub := &stubPublisher{}
	svc := newTestService(t, repo, pub)

	got, err := svc.Update(context.Background(), UpdateInput{ManualOpen: boolPtr(false)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ManualOpen {
		t.Fatal("manual toggle should be off")
	}
	if got.OpenTime != "10:00" || got.CloseTime != "22:00" || got.Message != "hello" {
		t.Fatalf("absent fields must retain prior values: %+v", got)
	}
	if pub.calls != 1 {
		t.Fatalf("expected one change notification, got %d", pub.calls)
	}
}

func TestUpdateSanitizesMessage(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{row: &models.StoreSettings{ID: models.SettingsRowID, ManualOpen: true}}
	svc := newTestService(t, repo, nil)

	got, err := svc.Update(context.Background(), UpdateInput{Message: strPtr("<b>closed</b> for diwali")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Message != "closed for diwali" {
		t.Fatalf("expected sanitized message, got %q", got.Message)
	}
}

func TestUpdatePublishFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{row: &models.StoreSettings{ID: models.SettingsRowID, ManualOpen: true}}
	pub := &stubPublisher{err: errors.New("broker down")}
	svc := newTestService(t, repo, pub)

	if _, err := svc.Update(context.Background(), UpdateInput{ManualOpen: boolPtr(false)}); err != nil {
		t.Fatalf("publish failure must not fail the write: %v", err)
	}
}

func TestUpdateSaveFailureSurfaces(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		row:     &models.StoreSettings{ID: models.SettingsRowID, ManualOpen: true},
		saveErr: errors.New("disk full"),
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.Update(context.Background(), UpdateInput{ManualOpen: boolPtr(false)})
	if err == nil {
		t.Fatal("expected save failure to surface")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("unexpected error code: %v", err)
	}
}

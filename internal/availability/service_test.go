package availability

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cafev2/storefront-backend/internal/settings"
	"github.com/cafev2/storefront-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
}

func fixedClock(h, m int) Clock {
	return func() time.Time {
		return time.Date(2024, 6, 1, h, m, 0, 0, time.UTC)
	}
}

type stubSource struct {
	settings settings.Settings
	err      error
	calls    int
}

func (s *stubSource) Get(ctx context.Context) (settings.Settings, error) {
	s.calls++
	if s.err != nil {
		return settings.Settings{}, s.err
	}
	return s.settings, nil
}

func newTestService(t *testing.T, source *stubSource, clock Clock) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Logger: testLogger(),
		Source: source,
		Clock:  clock,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestManualToggleForcesClosed(t *testing.T) {
	t.Parallel()

	source := &stubSource{settings: settings.Settings{
		ManualOpen: false,
		OpenTime:   "10:00",
		CloseTime:  "22:00",
	}}
	svc := newTestService(t, source, fixedClock(12, 0))

	svc.Refresh(context.Background(), "test")

	got := svc.Status()
	if got.IsOpen {
		t.Fatal("manual toggle off must force closed even inside the window")
	}
	if !got.ScheduleOpen {
		t.Fatal("schedule should still report open inside the window")
	}
	if got.ManualOpen {
		t.Fatal("manual state should read as off")
	}
}

func TestManualOnDefersToSchedule(t *testing.T) {
	t.Parallel()

	source := &stubSource{settings: settings.Settings{
		ManualOpen: true,
		OpenTime:   "10:00",
		CloseTime:  "22:00",
	}}

	inside := newTestService(t, source, fixedClock(12, 0))
	inside.Refresh(context.Background(), "test")
	if !inside.Status().IsOpen {
		t.Fatal("expected open inside the schedule window")
	}

	outside := newTestService(t, source, fixedClock(23, 0))
	outside.Refresh(context.Background(), "test")
	got := outside.Status()
	if got.IsOpen {
		t.Fatal("manual toggle cannot open the store outside the window")
	}
	if got.ScheduleOpen {
		t.Fatal("schedule should report closed outside the window")
	}
	if !got.ManualOpen {
		t.Fatal("manual state should still read as on")
	}
}

func TestRefreshClearsLoading(t *testing.T) {
	t.Parallel()

	source := &stubSource{settings: settings.Settings{ManualOpen: true}}
	svc := newTestService(t, source, fixedClock(12, 0))

	if !svc.Loading() {
		t.Fatal("expected loading before the first refresh")
	}
	svc.Refresh(context.Background(), "test")
	if svc.Loading() {
		t.Fatal("expected loading cleared after refresh")
	}
}

func TestRefreshFailureKeepsPriorSnapshot(t *testing.T) {
	t.Parallel()

	source := &stubSource{settings: settings.Settings{
		ManualOpen: true,
		OpenTime:   "10:00",
		CloseTime:  "22:00",
	}}
	svc := newTestService(t, source, fixedClock(12, 0))
	svc.Refresh(context.Background(), "test")

	source.err = errors.New("db down")
	svc.Refresh(context.Background(), "test")

	got := svc.Status()
	if !got.IsOpen || got.OpenTime != "10:00" {
		t.Fatalf("load failure must keep the prior snapshot: %+v", got)
	}
	if svc.Loading() {
		t.Fatal("loading must still be cleared on failure")
	}
}

func TestSubscribeNotifiesOnFlipOnly(t *testing.T) {
	t.Parallel()

	source := &stubSource{settings: settings.Settings{
		ManualOpen: true,
		OpenTime:   "10:00",
		CloseTime:  "22:00",
	}}
	svc := newTestService(t, source, fixedClock(12, 0))
	svc.Refresh(context.Background(), "test")

	var seen []Status
	unsubscribe := svc.Subscribe(func(st Status) { seen = append(seen, st) })

	// Same settings, same result: no notification.
	svc.Refresh(context.Background(), "test")
	if len(seen) != 0 {
		t.Fatalf("expected no notification without a flip, got %d", len(seen))
	}

	source.settings.ManualOpen = false
	svc.Refresh(context.Background(), "test")
	if len(seen) != 1 || seen[0].IsOpen {
		t.Fatalf("expected one closed notification, got %+v", seen)
	}

	unsubscribe()
	source.settings.ManualOpen = true
	svc.Refresh(context.Background(), "test")
	if len(seen) != 1 {
		t.Fatal("unsubscribed listener must not be invoked")
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewService(ServiceParams{Source: &stubSource{}}); err == nil {
		t.Fatal("expected error without logger")
	}
	if _, err := NewService(ServiceParams{Logger: testLogger()}); err == nil {
		t.Fatal("expected error without settings source")
	}
}

func TestIntervalClamping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, defaultRecheckInterval},
		{2 * time.Second, minRecheckInterval},
		{5 * time.Minute, maxRecheckInterval},
		{20 * time.Second, 20 * time.Second},
	}

	for _, tc := range cases {
		svc, err := NewService(ServiceParams{
			Logger:   testLogger(),
			Source:   &stubSource{},
			Interval: tc.in,
		})
		if err != nil {
			t.Fatalf("new service: %v", err)
		}
		if svc.interval != tc.want {
			t.Fatalf("interval %v clamped to %v, want %v", tc.in, svc.interval, tc.want)
		}
	}
}

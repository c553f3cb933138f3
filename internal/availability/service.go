// Package availability maintains the live answer to "is the café taking
// orders right now". It combines the admin's manual toggle with the
// schedule window, rechecking on a fixed cadence and on every remote
// settings change.
package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cafev2/storefront-backend/internal/schedule"
	"github.com/cafev2/storefront-backend/internal/settings"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"github.com/cafev2/storefront-backend/pkg/metrics"
)

const (
	minRecheckInterval     = 10 * time.Second
	maxRecheckInterval     = 30 * time.Second
	defaultRecheckInterval = 15 * time.Second
)

// Status is the derived availability snapshot. IsOpen is the only signal
// order paths consult; ScheduleOpen and ManualOpen are exposed separately
// so the dashboard can tell "outside hours" from "forced closed".
type Status struct {
	IsOpen       bool   `json:"is_open"`
	ScheduleOpen bool   `json:"schedule_open"`
	ManualOpen   bool   `json:"is_manual_open"`
	Message      string `json:"message"`
	OpenTime     string `json:"open_time"`
	CloseTime    string `json:"close_time"`
}

type settingsSource interface {
	Get(ctx context.Context) (settings.Settings, error)
}

type changeFeed interface {
	SubscribeSettingsChanged(ctx context.Context) (<-chan struct{}, func(), error)
}

// Clock supplies the current time; injectable for tests.
type Clock func() time.Time

// ServiceParams configure the availability watcher.
type ServiceParams struct {
	Logger   *logger.Logger
	Source   settingsSource
	Feed     changeFeed
	Metrics  *metrics.AvailabilityMetrics
	Interval time.Duration
	Clock    Clock
}

// Service owns the authoritative availability state.
type Service struct {
	logg     *logger.Logger
	source   settingsSource
	feed     changeFeed
	metrics  *metrics.AvailabilityMetrics
	interval time.Duration
	clock    Clock

	mu           sync.RWMutex
	settings     settings.Settings
	status       Status
	loading      bool
	listeners    map[uint64]func(Status)
	nextListener uint64
}

// NewService builds an availability watcher. The feed may be nil; the
// periodic recheck then carries remote changes alone.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Source == nil {
		return nil, fmt.Errorf("settings source required")
	}

	interval := params.Interval
	if interval <= 0 {
		interval = defaultRecheckInterval
	}
	if interval < minRecheckInterval {
		interval = minRecheckInterval
	}
	if interval > maxRecheckInterval {
		interval = maxRecheckInterval
	}

	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}

	s := &Service{
		logg:     params.Logger,
		source:   params.Source,
		feed:     params.Feed,
		metrics:  params.Metrics,
		interval: interval,
		clock:    clock,
		// Until the first load completes the store reads as open with the
		// default window, mirroring the storefront's optimistic boot state.
		settings:  settings.Settings{ManualOpen: true, OpenTime: "10:00", CloseTime: "22:00"},
		loading:   true,
		listeners: map[uint64]func(Status){},
	}
	s.status = s.compute(s.settings)
	return s, nil
}

// Run drives the watcher until ctx is canceled: one initial load, then a
// recheck on every timer tick and on every settings-change notification.
func (s *Service) Run(ctx context.Context) error {
	s.Refresh(ctx, "initial")

	var feedCh <-chan struct{}
	if s.feed != nil {
		ch, cancel, err := s.feed.SubscribeSettingsChanged(ctx)
		if err != nil {
			s.logg.Error(ctx, "settings change feed unavailable; relying on timer", err)
			s.setLoading(false)
		} else {
			feedCh = ch
			defer cancel()
		}
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "availability watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			s.recheck("timer")
		case _, ok := <-feedCh:
			if !ok {
				feedCh = nil
				continue
			}
			s.Refresh(ctx, "settings_changed")
		}
	}
}

// Refresh reloads settings from the source and recomputes the status.
// A load failure keeps the prior snapshot; it only clears the loading flag
// so consumers stop waiting on data that is not coming.
func (s *Service) Refresh(ctx context.Context, trigger string) {
	loaded, err := s.source.Get(ctx)
	if err != nil {
		s.logg.Error(ctx, "loading store settings failed; keeping prior snapshot", err)
		s.setLoading(false)
		return
	}

	s.mu.Lock()
	s.settings = loaded
	s.loading = false
	s.mu.Unlock()

	s.recheck(trigger)
}

func (s *Service) recheck(trigger string) {
	start := s.clock()

	s.mu.Lock()
	next := s.compute(s.settings)
	prev := s.status
	s.status = next
	notify := prev.IsOpen != next.IsOpen
	var listeners []func(Status)
	if notify {
		listeners = make([]func(Status), 0, len(s.listeners))
		for _, fn := range s.listeners {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	s.metrics.ObserveRecheck(trigger, s.clock().Sub(start))

	if notify {
		state := "closed"
		if next.IsOpen {
			state = "open"
		}
		s.metrics.IncFlip(state)
		for _, fn := range listeners {
			fn(next)
		}
	}
}

// compute derives the status from a settings snapshot. The manual toggle
// can force the store closed but never open outside the schedule window.
func (s *Service) compute(snap settings.Settings) Status {
	scheduleOpen := schedule.Open(snap.OpenTime, snap.CloseTime, schedule.MinutesOfDay(s.clock()))
	return Status{
		IsOpen:       snap.ManualOpen && scheduleOpen,
		ScheduleOpen: scheduleOpen,
		ManualOpen:   snap.ManualOpen,
		Message:      snap.Message,
		OpenTime:     snap.OpenTime,
		CloseTime:    snap.CloseTime,
	}
}

// Status returns the current availability snapshot.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Loading reports whether the first settings load is still outstanding.
func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe registers a listener invoked whenever IsOpen flips. The
// returned func unregisters it; callers must invoke it on teardown.
func (s *Service) Subscribe(fn func(Status)) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

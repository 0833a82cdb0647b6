package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/centsible/centsible/internal/dashboard/store"
)

// HousekeepingService periodically evicts expired sessions and abandoned CSRF
// states so neither table grows without bound.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	StateTTL time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to 5 minutes; a non-positive state TTL defaults to
// DefaultStateTTL.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, stateTTL time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if stateTTL <= 0 {
		stateTTL = DefaultStateTTL
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		StateTTL: stateTTL,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "state_ttl", s.StateTTL)
}

// Stop shuts the worker down, blocking until any in-progress sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep immediately on startup.
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep performs one eviction pass. Each deletion is independent; a failure in
// one does not stop the other.
func (s *HousekeepingService) Sweep(ctx context.Context) {
	now := time.Now().UTC()

	if n, err := s.Store.Sessions().DeleteExpiredSessions(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
	} else if n > 0 {
		s.Logger.Info("deleted expired sessions", "count", n)
	}

	if n, err := s.Store.AuthStates().DeleteExpiredStates(ctx, now.Add(-s.StateTTL)); err != nil {
		s.Logger.Error("failed to delete abandoned auth states", "error", err)
	} else if n > 0 {
		s.Logger.Info("deleted abandoned auth states", "count", n)
	}
}

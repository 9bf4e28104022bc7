package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
)

// HousekeepingService periodically forgets revoked tokens that have aged out
// of the refresh grace window, so the revocation set stays bounded.
type HousekeepingService struct {
	Store    *store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. If interval is 0 or
// negative, defaults to 10 minutes.
func NewHousekeepingService(st *store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup purges aged-out revocations once.
func (s *HousekeepingService) Cleanup(ctx context.Context) int {
	n := s.Store.PurgeRevoked(ctx)
	s.Logger.Debug("housekeeping cleanup completed", "revocations_purged", n)
	return n
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/store"
)

// DefaultInvitationRetention is how long finished invitations are kept.
const DefaultInvitationRetention = 30 * 24 * time.Hour

// HousekeepingService periodically removes invitations that expired or were
// accepted longer than Retention ago. Notification logs are never touched;
// they go away with their contracts.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Now       Clock

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults interval to 1 hour and retention to
// DefaultInvitationRetention.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultInvitationRetention
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one pass and reports how many invitations were removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	cutoff := s.Now.now().Add(-s.Retention)
	s.Logger.Info("starting housekeeping cleanup", slog.Time("cutoff", cutoff))

	n, err := s.Store.Invitations().DeleteStale(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete stale invitations", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed", "deleted_invitations", n)
	return n
}

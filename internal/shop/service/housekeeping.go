package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/metrics"
	"github.com/aussiebroadwan/storefront/internal/shop/store"
)

// HousekeepingService periodically removes expired sign-in challenges.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Metrics  *metrics.Metrics

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration, m *metrics.Metrics) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		Metrics:  m,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs cleanup once immediately and then on every tick. It does not
// block; call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

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

// Cleanup deletes expired records and reports how many rows went.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	deleted, err := s.Store.Challenges().DeleteExpiredChallenges(ctx, time.Now())
	s.Metrics.RecordHousekeeping("challenges", deleted, err)
	if err != nil {
		s.Logger.Error("failed to delete expired challenges", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed", "expired_challenges", deleted)
	return deleted
}

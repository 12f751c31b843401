package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
)

// HousekeepingService periodically strips expired verification and reset
// codes from accounts so stale codes do not linger in documents.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

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

// Sweep clears expired tokens once and returns how many accounts changed.
// A conflicting write means the account was touched meanwhile; it is left
// for the next sweep.
func (s *HousekeepingService) Sweep(ctx context.Context) int {
	accounts, err := s.Store.Accounts().ListWithPendingTokens(ctx)
	if err != nil {
		s.Logger.Error("failed to list accounts with pending tokens", "error", err)
		return 0
	}

	now := s.Now().UTC()
	cleared := 0
	for _, acct := range accounts {
		if !acct.ClearExpiredTokens(now) {
			continue
		}
		if _, err := s.Store.Accounts().Replace(ctx, acct); err != nil {
			if errors.Is(err, store.ErrPreconditionFailed) || errors.Is(err, store.ErrNotFound) {
				s.Logger.Debug("account changed during sweep", "account_id", acct.ID)
				continue
			}
			s.Logger.Error("failed to clear expired tokens", "account_id", acct.ID, "error", err)
			continue
		}
		cleared++
	}

	s.Logger.Info("housekeeping sweep completed", "scanned", len(accounts), "cleared", cleared)
	return cleared
}

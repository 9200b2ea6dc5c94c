package schedulerengine

import (
	"context"
	"sync"
	"time"

	"gitlab.com/wizardhub.net/internal/config"
	"gitlab.com/wizardhub.net/internal/core/ports/primary"
)

// LeaderboardRefresher recomputes and caches the wizard leaderboards
type LeaderboardRefresher interface {
	RefreshLeaderboards(ctx context.Context) error
}

type SchedulerEngine struct {
	DiscoveryCfg *config.DiscoveryConfig
	refresher    LeaderboardRefresher
	logger       primary.Logger
	wg           sync.WaitGroup
}

func NewSchedulerEngine(
	discoveryCfg *config.DiscoveryConfig,
	refresher LeaderboardRefresher,
	logger primary.Logger,
) *SchedulerEngine {
	return &SchedulerEngine{
		DiscoveryCfg: discoveryCfg,
		refresher:    refresher,
		logger:       logger,
	}
}

// StartLeaderboardRefresh refreshes once, then on every interval tick until ctx is done
func (s *SchedulerEngine) StartLeaderboardRefresh(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.DiscoveryCfg.LeaderboardRefreshInterval)
		defer ticker.Stop()

		s.refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.refresh(ctx)
			}
		}
	}()
}

func (s *SchedulerEngine) refresh(ctx context.Context) {
	if err := s.refresher.RefreshLeaderboards(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("Failed to refresh leaderboards", "error", err)
		return
	}
	s.logger.Debug("Leaderboards refreshed")
}

// Wait blocks until the refresh loop has exited
func (s *SchedulerEngine) Wait() {
	s.wg.Wait()
}

package secondary

import (
	"context"
	"time"

	"gitlab.com/wizardhub.net/internal/domain"
)

type Leaderboard string

const (
	LeaderboardTopSellers Leaderboard = "top_sellers"
	LeaderboardTopRated   Leaderboard = "top_rated"
)

// LeaderboardCache holds precomputed leaderboards. A miss is (nil, false, nil).
type LeaderboardCache interface {
	GetLeaderboard(ctx context.Context, board Leaderboard) ([]domain.WizardSummary, bool, error)
	SetLeaderboard(ctx context.Context, board Leaderboard, entries []domain.WizardSummary, ttl time.Duration) error
}

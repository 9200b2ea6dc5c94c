package leaderboardport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/ports/secondary"
	"gitlab.com/wizardhub.net/internal/domain"
)

const leaderboardKeyPrefix = "leaderboard:"

var _ secondary.LeaderboardCache = (*LeaderboardRepository)(nil)

// LeaderboardRepository implements the LeaderboardCache interface with Redis
type LeaderboardRepository struct {
	redisClient redis.UniversalClient
	logger      primary.Logger
}

// NewLeaderboardRepository creates a new Redis leaderboard cache
func NewLeaderboardRepository(redisClient redis.UniversalClient, logger primary.Logger) *LeaderboardRepository {
	return &LeaderboardRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

func leaderboardKey(board secondary.Leaderboard) string {
	return fmt.Sprintf("%s%s", leaderboardKeyPrefix, board)
}

// GetLeaderboard reads a cached board. A missing key is a miss, not an error.
func (r *LeaderboardRepository) GetLeaderboard(ctx context.Context, board secondary.Leaderboard) ([]domain.WizardSummary, bool, error) {
	data, err := r.redisClient.Get(ctx, leaderboardKey(board)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		r.logger.Error("Failed to get leaderboard", "board", board, "error", err)
		return nil, false, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	var entries []domain.WizardSummary
	if err := json.Unmarshal(data, &entries); err != nil {
		r.logger.Error("Failed to unmarshal leaderboard", "board", board, "error", err)
		return nil, false, fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}
	return entries, true, nil
}

// SetLeaderboard stores the board with expiration
func (r *LeaderboardRepository) SetLeaderboard(ctx context.Context, board secondary.Leaderboard, entries []domain.WizardSummary, ttl time.Duration) error {
	if entries == nil {
		entries = []domain.WizardSummary{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		r.logger.Error("Failed to marshal leaderboard", "board", board, "error", err)
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}

	if err := r.redisClient.Set(ctx, leaderboardKey(board), data, ttl).Err(); err != nil {
		r.logger.Error("Failed to save leaderboard", "board", board, "error", err)
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}
	return nil
}

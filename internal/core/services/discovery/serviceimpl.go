package discovery

import (
	"context"
	"fmt"

	"gitlab.com/wizardhub.net/internal/config"
	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/ports/secondary"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

var _ IDiscoveryService = (*DiscoveryService)(nil)

// DiscoveryService implements IDiscoveryService
type DiscoveryService struct {
	users  secondary.UserStore
	cache  secondary.LeaderboardCache
	cfg    *config.DiscoveryConfig
	logger primary.Logger
}

// NewDiscoveryService creates a new discovery service. cache may be nil.
func NewDiscoveryService(
	users secondary.UserStore,
	cache secondary.LeaderboardCache,
	cfg *config.DiscoveryConfig,
	logger primary.Logger,
) *DiscoveryService {
	return &DiscoveryService{
		users:  users,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

func wizardQuery(filter WizardFilter) domain.UserQuery {
	return domain.UserQuery{
		IsDisabled:   domain.Ptr(false),
		ExcludeAdmin: true,
		IsWizard:     domain.Ptr(true),
		AnySubjects:  filter.Subjects,
		AnyLanguages: filter.Languages,
	}
}

func (s *DiscoveryService) ListWizards(
	ctx context.Context,
	filter WizardFilter,
	sortByReviews domain.SortOrder,
	page domain.Page,
) ([]*domain.User, error) {
	page = page.Clamp(s.cfg.DefaultPageSize, s.cfg.MaxPageSize)

	opts := domain.FindOptions{
		Projection: domain.ProjectionPublic,
		Sort:       domain.Sort{Field: domain.SortFieldReviews, Order: sortByReviews},
		Skip:       page.Skip(),
		Limit:      page.Size,
	}

	wizards, err := s.users.FindMany(ctx, wizardQuery(filter), opts)
	if err != nil {
		s.logger.Error("Failed to list wizards", "page", page.Page, "size", page.Size, "error", err)
		return nil, fmt.Errorf("failed to list wizards: %w", err)
	}

	s.logger.Debug("Listed wizards", "page", page.Page, "size", page.Size, "count", len(wizards))
	return wizards, nil
}

func (s *DiscoveryService) CountWizards(ctx context.Context, filter WizardFilter) (int, error) {
	n, err := s.users.Count(ctx, wizardQuery(filter))
	if err != nil {
		s.logger.Error("Failed to count wizards", "error", err)
		return 0, fmt.Errorf("failed to count wizards: %w", err)
	}
	return n, nil
}

// TopSellers ranks wizards by completed jobs. Disabled wizards are not excluded.
func (s *DiscoveryService) TopSellers(ctx context.Context) ([]domain.WizardSummary, error) {
	return s.leaderboard(ctx, secondary.LeaderboardTopSellers)
}

// TopRatedWizards ranks wizards with at least one completed job by reviews
func (s *DiscoveryService) TopRatedWizards(ctx context.Context) ([]domain.WizardSummary, error) {
	return s.leaderboard(ctx, secondary.LeaderboardTopRated)
}

func (s *DiscoveryService) pipeline(board secondary.Leaderboard) domain.Pipeline {
	switch board {
	case secondary.LeaderboardTopRated:
		return domain.Pipeline{
			Match: domain.UserQuery{
				IsWizard:           domain.Ptr(true),
				ExpJobsGreaterThan: domain.Ptr(0),
			},
			Sort:    domain.Sort{Field: domain.SortFieldReviews, Order: domain.SortDesc},
			Limit:   s.cfg.LeaderboardSize,
			Project: domain.SummaryReviews,
		}
	default:
		return domain.Pipeline{
			Match:   domain.UserQuery{IsWizard: domain.Ptr(true)},
			Sort:    domain.Sort{Field: domain.SortFieldExpJobs, Order: domain.SortDesc},
			Limit:   s.cfg.LeaderboardSize,
			Project: domain.SummaryExpJobs,
		}
	}
}

func (s *DiscoveryService) leaderboard(ctx context.Context, board secondary.Leaderboard) ([]domain.WizardSummary, error) {
	if s.cache != nil {
		entries, ok, err := s.cache.GetLeaderboard(ctx, board)
		if err != nil {
			// a broken cache must not take the board down
			s.logger.Warn("Failed to read cached leaderboard", "board", board, "error", err)
		} else if ok {
			return entries, nil
		}
	}

	entries, err := s.computeLeaderboard(ctx, board)
	if err != nil {
		return nil, err
	}
	s.store(ctx, board, entries)
	return entries, nil
}

func (s *DiscoveryService) computeLeaderboard(ctx context.Context, board secondary.Leaderboard) ([]domain.WizardSummary, error) {
	entries, err := s.users.Aggregate(ctx, s.pipeline(board))
	if err != nil {
		s.logger.Error("Failed to compute leaderboard", "board", board, "error", err)
		return nil, fmt.Errorf("failed to compute leaderboard %s: %w", board, err)
	}
	return entries, nil
}

func (s *DiscoveryService) store(ctx context.Context, board secondary.Leaderboard, entries []domain.WizardSummary) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetLeaderboard(ctx, board, entries, s.cfg.LeaderboardTTL); err != nil {
		s.logger.Warn("Failed to cache leaderboard", "board", board, "error", err)
	}
}

// RefreshLeaderboards recomputes every board and overwrites the cache
func (s *DiscoveryService) RefreshLeaderboards(ctx context.Context) error {
	for _, board := range []secondary.Leaderboard{secondary.LeaderboardTopSellers, secondary.LeaderboardTopRated} {
		entries, err := s.computeLeaderboard(ctx, board)
		if err != nil {
			return err
		}
		s.store(ctx, board, entries)
		s.logger.Debug("Leaderboard refreshed", "board", board, "entries", len(entries))
	}
	return nil
}

func (s *DiscoveryService) GetCalendar(ctx context.Context, workerID string) (domain.Calendar, error) {
	query := domain.UserQuery{
		ID:           &workerID,
		IsDisabled:   domain.Ptr(false),
		ExcludeAdmin: true,
	}
	user, err := s.users.FindOne(ctx, query, domain.ProjectionCalendar)
	if err != nil {
		s.logger.Error("Failed to get calendar", "workerId", workerID, "error", err)
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}
	if user == nil {
		return nil, errs.NotFound(errs.EntityWorker, workerID)
	}
	return user.Calendar, nil
}

func (s *DiscoveryService) FindOneWizard(ctx context.Context, wizardID string) (*domain.User, error) {
	query := wizardQuery(WizardFilter{})
	query.ID = &wizardID

	wizard, err := s.users.FindOne(ctx, query, domain.ProjectionPublic)
	if err != nil {
		s.logger.Error("Failed to get wizard", "wizardId", wizardID, "error", err)
		return nil, fmt.Errorf("failed to get wizard: %w", err)
	}
	if wizard == nil {
		return nil, errs.NotFound(errs.EntityWizard, wizardID)
	}
	return wizard, nil
}

package discovery

import (
	"context"

	"gitlab.com/wizardhub.net/internal/domain"
)

// IDiscoveryService answers the public wizard listings and leaderboards
type IDiscoveryService interface {
	// ListWizards returns one page of active wizards, optionally sorted by reviews
	ListWizards(ctx context.Context, filter WizardFilter, sortByReviews domain.SortOrder, page domain.Page) ([]*domain.User, error)

	// CountWizards counts the wizards ListWizards would return without paging
	CountWizards(ctx context.Context, filter WizardFilter) (int, error)

	TopSellers(ctx context.Context) ([]domain.WizardSummary, error)
	TopRatedWizards(ctx context.Context) ([]domain.WizardSummary, error)

	GetCalendar(ctx context.Context, workerID string) (domain.Calendar, error)
	FindOneWizard(ctx context.Context, wizardID string) (*domain.User, error)
}

// WizardFilter narrows a listing. Values within a field are OR'ed, fields are AND'ed.
// A nil field is not applied.
type WizardFilter struct {
	Subjects  []domain.Subject
	Languages []domain.Language
}

package secondary

import (
	"context"

	"gitlab.com/wizardhub.net/internal/domain"
)

// UserStore is the users collection of the document store. Reads return
// (nil, nil) when nothing matches.
type UserStore interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	FindOne(ctx context.Context, query domain.UserQuery, projection domain.Projection) (*domain.User, error)
	FindMany(ctx context.Context, query domain.UserQuery, opts domain.FindOptions) ([]*domain.User, error)
	Count(ctx context.Context, query domain.UserQuery) (int, error)

	// Insert fails with *errs.DuplicateKeyError on a unique violation
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)

	// ConditionalUpdate applies patch to the first user matching query in one
	// atomic step and returns the updated user, or nil if nothing matched.
	ConditionalUpdate(ctx context.Context, query domain.UserQuery, patch domain.UserPatch) (*domain.User, error)

	Aggregate(ctx context.Context, pipeline domain.Pipeline) ([]domain.WizardSummary, error)
}

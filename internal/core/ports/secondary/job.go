package secondary

import (
	"context"

	"gitlab.com/wizardhub.net/internal/domain"
)

// JobStore is the jobs collection of the document store
type JobStore interface {
	// Get retrieves a job by ID, nil if absent
	Get(ctx context.Context, id string) (*domain.Job, error)

	Insert(ctx context.Context, job *domain.Job) (*domain.Job, error)

	// InsertGuarded inserts job only if its worker currently matches guard.
	// The check and the insert are one atomic operation. Returns nil if the
	// guard matched nothing.
	InsertGuarded(ctx context.Context, job *domain.Job, guard domain.UserQuery) (*domain.Job, error)

	// ConditionalUpdate patches the job matching query atomically, nil if none matched
	ConditionalUpdate(ctx context.Context, query domain.JobQuery, patch domain.JobPatch) (*domain.Job, error)
}

type JobEventPublisher interface {
	PublishJobEvent(ctx context.Context, event domain.JobEvent) error
}

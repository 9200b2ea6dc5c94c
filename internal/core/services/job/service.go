package job

import (
	"context"

	"gitlab.com/wizardhub.net/internal/domain"
)

// IJobService defines the interface for creating jobs and moving them through their states
type IJobService interface {
	// CreateJob assigns a new job to a wizard capable of the subject and language
	CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error)

	// TransitionStatus moves an in-progress job to a terminal status on behalf of its worker
	TransitionStatus(ctx context.Context, jobID, workerID string, status domain.JobStatus) (*domain.Job, error)

	// GetJob retrieves a job by ID
	GetJob(ctx context.Context, jobID string) (*domain.Job, error)
}

type CreateJobInput struct {
	ClientID    string
	WorkerID    string
	Subject     domain.Subject
	Language    domain.Language
	Description string
	Price       float64
	NumClasses  int
}

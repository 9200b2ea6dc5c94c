package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/ports/secondary"
	"gitlab.com/wizardhub.net/internal/core/services/capability"
	"gitlab.com/wizardhub.net/internal/core/services/directory"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

var _ IJobService = (*JobService)(nil)

const publishTimeout = 5 * time.Second

// WorkerFinder is the part of the directory job creation depends on
type WorkerFinder interface {
	FindCapableWorker(ctx context.Context, workerID string) (*domain.User, error)
}

var _ WorkerFinder = (directory.IDirectoryService)(nil)

// JobService implements the IJobService interface
type JobService struct {
	jobs      secondary.JobStore
	workers   WorkerFinder
	publisher secondary.JobEventPublisher
	logger    primary.Logger
}

// NewJobService creates a new job service. publisher may be nil.
func NewJobService(
	jobs secondary.JobStore,
	workers WorkerFinder,
	publisher secondary.JobEventPublisher,
	logger primary.Logger,
) *JobService {
	return &JobService{
		jobs:      jobs,
		workers:   workers,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateJob validates the worker's capabilities and persists the job as In Progress
func (s *JobService) CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error) {
	if err := validateCreateJob(input); err != nil {
		return nil, err
	}

	worker, err := s.workers.FindCapableWorker(ctx, input.WorkerID)
	if err != nil {
		return nil, err
	}
	if worker.IsDisabled {
		s.logger.Warn("Refusing job for disabled worker", "workerId", worker.ID)
		return nil, errs.NotFound(errs.EntityWorker, input.WorkerID)
	}
	if err := capability.ValidateAssignment(worker, input.Subject, input.Language); err != nil {
		return nil, err
	}

	job := &domain.Job{
		ID:          uuid.NewString(),
		Description: input.Description,
		Price:       input.Price,
		NumClasses:  input.NumClasses,
		ClientID:    input.ClientID,
		WorkerID:    input.WorkerID,
		Subject:     input.Subject,
		Language:    input.Language,
		Status:      domain.JobStatusInProgress,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.jobs.InsertGuarded(ctx, job, capability.Guard(input.Subject, input.Language))
	if err != nil {
		s.logger.Error("Failed to save job", "jobId", job.ID, "error", err)
		return nil, fmt.Errorf("failed to save job: %w", err)
	}
	if created == nil {
		// the worker changed between validation and insert
		return nil, s.explainGuardMiss(ctx, input)
	}

	s.logger.Info("Job created",
		"jobId", created.ID,
		"clientId", created.ClientID,
		"workerId", created.WorkerID,
		"subject", created.Subject,
		"language", created.Language)

	s.publish(domain.NewJobEvent(domain.JobEventCreated, created))
	return created, nil
}

func validateCreateJob(input CreateJobInput) error {
	switch {
	case strings.TrimSpace(input.ClientID) == "":
		return errs.Invalid("client", "is required")
	case strings.TrimSpace(input.WorkerID) == "":
		return errs.Invalid("worker", "is required")
	case input.ClientID == input.WorkerID:
		return errs.Invalid("worker", "a client cannot hire themselves")
	case !input.Subject.IsValid():
		return errs.Invalid("subject", fmt.Sprintf("unknown subject %q", input.Subject))
	case !input.Language.IsValid():
		return errs.Invalid("language", fmt.Sprintf("unknown language %q", input.Language))
	case strings.TrimSpace(input.Description) == "":
		return errs.Invalid("description", "is required")
	case input.Price <= 0:
		return errs.Invalid("price", "must be greater than zero")
	case input.NumClasses <= 0:
		return errs.Invalid("numClasses", "must be greater than zero")
	}
	return nil
}

func (s *JobService) explainGuardMiss(ctx context.Context, input CreateJobInput) error {
	worker, err := s.workers.FindCapableWorker(ctx, input.WorkerID)
	if err != nil {
		return err
	}
	if worker.IsDisabled {
		return errs.NotFound(errs.EntityWorker, input.WorkerID)
	}
	if err := capability.ValidateAssignment(worker, input.Subject, input.Language); err != nil {
		return err
	}
	return errs.NotFound(errs.EntityWorker, input.WorkerID)
}

// TransitionStatus updates the status of an in-progress job assigned to workerID
func (s *JobService) TransitionStatus(ctx context.Context, jobID, workerID string, status domain.JobStatus) (*domain.Job, error) {
	if !status.IsValid() {
		return nil, errs.Invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	if !domain.JobStatusInProgress.CanTransitionTo(status) {
		return nil, errs.Invalid("status", fmt.Sprintf("cannot move a job to %q", status))
	}

	query := domain.JobQuery{
		ID:       &jobID,
		WorkerID: &workerID,
		Status:   domain.Ptr(domain.JobStatusInProgress),
	}
	updated, err := s.jobs.ConditionalUpdate(ctx, query, domain.JobPatch{Status: &status})
	if err != nil {
		s.logger.Error("Failed to update job status", "jobId", jobID, "error", err)
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	if updated == nil {
		return nil, s.explainTransitionMiss(ctx, jobID, workerID)
	}

	s.logger.Info("Job status changed", "jobId", jobID, "workerId", workerID, "status", status)
	s.publish(domain.NewJobEvent(domain.JobEventStatusChanged, updated))
	return updated, nil
}

// explainTransitionMiss only tells the assigned worker that the job is
// already closed. Everyone else gets the merged error.
func (s *JobService) explainTransitionMiss(ctx context.Context, jobID, workerID string) error {
	merged := &errs.NotFoundOrUnauthorizedError{JobID: jobID, WorkerID: workerID}

	current, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		s.logger.Error("Failed to get job", "jobId", jobID, "error", err)
		return merged
	}
	if current != nil && current.WorkerID == workerID && current.Status.IsTerminal() {
		return errs.Invalid("status", fmt.Sprintf("job is already %s", current.Status))
	}
	return merged
}

// GetJob retrieves a job by ID
func (s *JobService) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	s.logger.Debug("Getting job", "jobId", jobID)

	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		s.logger.Error("Failed to get job", "jobId", jobID, "error", err)
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, errs.NotFound(errs.EntityJob, jobID)
	}
	return job, nil
}

// publish runs in the background; the job write has already committed
func (s *JobService) publish(event domain.JobEvent) {
	if s.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.publisher.PublishJobEvent(ctx, event); err != nil {
			s.logger.Error("Failed to publish job event", "type", event.Type, "jobId", event.JobID, "error", err)
		}
	}()
}

package directory

import (
	"context"

	"gitlab.com/wizardhub.net/internal/domain"
)

// IDirectoryService owns user and wizard capability records
type IDirectoryService interface {
	// CreateUser registers a user, optionally already a wizard
	CreateUser(ctx context.Context, input NewUserInput) (*domain.User, error)

	// FindCapableWorker fetches a worker by id regardless of disabled or admin status
	FindCapableWorker(ctx context.Context, workerID string) (*domain.User, error)

	// UpgradeToWizard turns a user into a wizard once the capability data is complete
	UpgradeToWizard(ctx context.Context, workerID string, languages []domain.Language, subjects []domain.Subject, experience *domain.Experience) (*domain.User, error)

	// UpdateWizard updates the profile of a user that is not disabled
	UpdateWizard(ctx context.Context, userID string, update WizardUpdate) (*domain.User, error)

	// SetDisabled flips the disabled flag, whatever its current value
	SetDisabled(ctx context.Context, userID string, disabled bool) (*domain.User, error)

	FindAllNonAdmin(ctx context.Context) ([]*domain.User, error)
	FindAllEmails(ctx context.Context) ([]domain.EmailStatus, error)
	FindByExternalUID(ctx context.Context, uid string) (*domain.User, error)

	// RecordCompletedJob adds one to the worker's completed job count
	RecordCompletedJob(ctx context.Context, workerID string) error
}

type NewUserInput struct {
	Name        string
	Email       string
	Image       string
	Password    string
	ExternalUID *string
	Role        domain.Role
	IsWizard    bool
	Subjects    []domain.Subject
	Languages   []domain.Language
	Experience  *domain.Experience
	Calendar    domain.Calendar
}

// WizardUpdate carries the fields to change. Nil means untouched.
type WizardUpdate struct {
	Name       *string
	Image      *string
	IsWizard   *bool
	Subjects   []domain.Subject
	Languages  []domain.Language
	Experience *domain.Experience
	Calendar   domain.Calendar
}

package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/ports/secondary"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

var _ IDirectoryService = (*DirectoryService)(nil)

// DirectoryService implements IDirectoryService
type DirectoryService struct {
	users  secondary.UserStore
	hasher primary.PasswordHasher
	logger primary.Logger
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(users secondary.UserStore, hasher primary.PasswordHasher, logger primary.Logger) *DirectoryService {
	return &DirectoryService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

func (s *DirectoryService) CreateUser(ctx context.Context, input NewUserInput) (*domain.User, error) {
	if err := validateNewUser(input); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Email:       strings.TrimSpace(input.Email),
		Image:       input.Image,
		ExternalUID: input.ExternalUID,
		Role:        input.Role,
		IsWizard:    input.IsWizard,
		Subjects:    input.Subjects,
		Languages:   input.Languages,
		Calendar:    input.Calendar,
		CreatedAt:   time.Now().UTC(),
	}
	if user.Role == "" {
		user.Role = domain.RoleClient
	}
	if input.Experience != nil {
		user.Experience = *input.Experience
		user.Experience.ExpJobs = 0
	}

	if input.Password != "" {
		hash, err := s.hasher.EncryptPassword(ctx, input.Password)
		if err != nil {
			s.logger.Error("Failed to hash password", "error", err)
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = &hash
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		if errs.IsDuplicateKey(err) {
			s.logger.Warn("Duplicate user", "email", user.Email, "error", err)
			return nil, err
		}
		s.logger.Error("Failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", "userId", created.ID, "isWizard", created.IsWizard)
	return created, nil
}

func validateNewUser(input NewUserInput) error {
	if strings.TrimSpace(input.Email) == "" {
		return errs.Invalid("email", "is required")
	}
	if input.Role != "" && !input.Role.IsValid() {
		return errs.Invalid("role", fmt.Sprintf("unknown role %q", input.Role))
	}
	if !input.IsWizard {
		if input.Subjects != nil || input.Languages != nil || input.Experience != nil {
			return errs.Invalid("isWizard", "wizard fields cannot be set when isWizard is false")
		}
		return nil
	}
	if input.Experience == nil || input.Experience.Title == "" || input.Experience.Origin == "" {
		return errs.Invalid("experience", "title and origin are required when isWizard is true")
	}
	return validateCapabilitySets(input.Subjects, input.Languages)
}

func validateCapabilitySets(subjects []domain.Subject, languages []domain.Language) error {
	if len(subjects) == 0 {
		return errs.Invalid("subjects", "at least one subject is required")
	}
	if len(languages) == 0 {
		return errs.Invalid("languages", "at least one language is required")
	}
	for _, sub := range subjects {
		if !sub.IsValid() {
			return errs.Invalid("subjects", fmt.Sprintf("unknown subject %q", sub))
		}
	}
	for _, lang := range languages {
		if !lang.IsValid() {
			return errs.Invalid("languages", fmt.Sprintf("unknown language %q", lang))
		}
	}
	return nil
}

func (s *DirectoryService) FindCapableWorker(ctx context.Context, workerID string) (*domain.User, error) {
	worker, err := s.users.Get(ctx, workerID)
	if err != nil {
		s.logger.Error("Failed to get worker", "workerId", workerID, "error", err)
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	if worker == nil {
		return nil, errs.NotFound(errs.EntityWorker, workerID)
	}
	return worker, nil
}

func (s *DirectoryService) UpgradeToWizard(
	ctx context.Context,
	workerID string,
	languages []domain.Language,
	subjects []domain.Subject,
	experience *domain.Experience,
) (*domain.User, error) {
	return s.UpdateWizard(ctx, workerID, WizardUpdate{
		IsWizard:   domain.Ptr(true),
		Languages:  languages,
		Subjects:   subjects,
		Experience: experience,
	})
}

func (s *DirectoryService) UpdateWizard(ctx context.Context, userID string, update WizardUpdate) (*domain.User, error) {
	active := domain.UserQuery{ID: &userID, IsDisabled: domain.Ptr(false)}

	current, err := s.users.FindOne(ctx, active, domain.ProjectionFull)
	if err != nil {
		s.logger.Error("Failed to get user", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if current == nil {
		return nil, errs.NotFound(errs.EntityUser, userID)
	}

	if err := validateWizardUpdate(current, update); err != nil {
		return nil, err
	}

	patch := domain.UserPatch{
		Name:       update.Name,
		Image:      update.Image,
		IsWizard:   update.IsWizard,
		Experience: update.Experience,
	}
	if update.Subjects != nil {
		patch.Subjects = &update.Subjects
	}
	if update.Languages != nil {
		patch.Languages = &update.Languages
	}
	if update.Calendar != nil {
		patch.Calendar = &update.Calendar
	}
	if patch.IsEmpty() {
		return current, nil
	}

	updated, err := s.users.ConditionalUpdate(ctx, active, patch)
	if err != nil {
		s.logger.Error("Failed to update user", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if updated == nil {
		// disabled between the read and the write
		return nil, errs.NotFound(errs.EntityUser, userID)
	}

	if !current.IsWizard && updated.IsWizard {
		s.logger.Info("User upgraded to wizard", "userId", userID)
	}
	return updated, nil
}

func validateWizardUpdate(current *domain.User, update WizardUpdate) error {
	upgrading := !current.IsWizard && update.IsWizard != nil && *update.IsWizard

	if current.IsWizard && update.IsWizard != nil && !*update.IsWizard {
		return errs.Invalid("isWizard", "wizard status cannot be revoked")
	}

	if upgrading {
		if update.Languages == nil || update.Subjects == nil || update.Experience == nil {
			return errs.Invalid("isWizard", "languages, subjects and experience are required when changing isWizard to true")
		}
		if update.Experience.Title == "" || update.Experience.Origin == "" {
			return errs.Invalid("experience", "title and origin are required when changing isWizard to true")
		}
		return validateCapabilitySets(update.Subjects, update.Languages)
	}

	if !current.IsWizard {
		return nil
	}
	// a wizard must keep the capability invariant
	if update.Subjects != nil || update.Languages != nil {
		subjects, languages := current.Subjects, current.Languages
		if update.Subjects != nil {
			subjects = update.Subjects
		}
		if update.Languages != nil {
			languages = update.Languages
		}
		if err := validateCapabilitySets(subjects, languages); err != nil {
			return err
		}
	}
	if update.Experience != nil && (update.Experience.Title == "" || update.Experience.Origin == "") {
		return errs.Invalid("experience", "title and origin cannot be empty for a wizard")
	}
	return nil
}

func (s *DirectoryService) SetDisabled(ctx context.Context, userID string, disabled bool) (*domain.User, error) {
	updated, err := s.users.ConditionalUpdate(ctx, domain.UserQuery{ID: &userID}, domain.UserPatch{IsDisabled: &disabled})
	if err != nil {
		s.logger.Error("Failed to set disabled flag", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to set disabled flag: %w", err)
	}
	if updated == nil {
		return nil, errs.NotFound(errs.EntityUser, userID)
	}

	s.logger.Info("User disabled flag set", "userId", userID, "disabled", disabled)
	return updated, nil
}

func (s *DirectoryService) FindAllNonAdmin(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.FindMany(ctx, domain.UserQuery{ExcludeAdmin: true}, domain.FindOptions{})
	if err != nil {
		s.logger.Error("Failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *DirectoryService) FindAllEmails(ctx context.Context) ([]domain.EmailStatus, error) {
	users, err := s.users.FindMany(ctx, domain.UserQuery{ExcludeAdmin: true}, domain.FindOptions{
		Projection: domain.ProjectionEmailStatus,
	})
	if err != nil {
		s.logger.Error("Failed to list emails", "error", err)
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}

	out := make([]domain.EmailStatus, 0, len(users))
	for _, u := range users {
		out = append(out, domain.EmailStatus{Email: u.Email, IsDisabled: u.IsDisabled})
	}
	return out, nil
}

func (s *DirectoryService) FindByExternalUID(ctx context.Context, uid string) (*domain.User, error) {
	user, err := s.users.FindOne(ctx, domain.UserQuery{ExternalUID: &uid, IsDisabled: domain.Ptr(false)}, domain.ProjectionFull)
	if err != nil {
		s.logger.Error("Failed to get user by uid", "error", err)
		return nil, fmt.Errorf("failed to get user by uid: %w", err)
	}
	if user == nil {
		return nil, errs.NotFound(errs.EntityUser, uid)
	}
	return user, nil
}

func (s *DirectoryService) RecordCompletedJob(ctx context.Context, workerID string) error {
	updated, err := s.users.ConditionalUpdate(ctx, domain.UserQuery{ID: &workerID}, domain.UserPatch{IncExpJobs: 1})
	if err != nil {
		s.logger.Error("Failed to record completed job", "workerId", workerID, "error", err)
		return fmt.Errorf("failed to record completed job: %w", err)
	}
	if updated == nil {
		return errs.NotFound(errs.EntityWorker, workerID)
	}

	s.logger.Debug("Completed job recorded", "workerId", workerID, "expJobs", updated.Experience.ExpJobs)
	return nil
}

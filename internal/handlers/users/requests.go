package users

import (
	"encoding/json"

	"gitlab.com/wizardhub.net/internal/core/services/directory"
	"gitlab.com/wizardhub.net/internal/domain"
)

// CreateUserRequest represents a request to register a user
type CreateUserRequest struct {
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Image      string             `json:"image"`
	Password   string             `json:"password"`
	Role       domain.Role        `json:"role"`
	IsWizard   bool               `json:"isWizard"`
	Subjects   []domain.Subject   `json:"subjects"`
	Languages  []domain.Language  `json:"languages"`
	Experience *domain.Experience `json:"experience"`
	Calendar   json.RawMessage    `json:"calendar"`
}

func (r CreateUserRequest) toInput() directory.NewUserInput {
	in := directory.NewUserInput{
		Name:       r.Name,
		Email:      r.Email,
		Image:      r.Image,
		Password:   r.Password,
		Role:       r.Role,
		IsWizard:   r.IsWizard,
		Subjects:   r.Subjects,
		Languages:  r.Languages,
		Experience: r.Experience,
	}
	if len(r.Calendar) > 0 {
		in.Calendar = domain.Calendar(r.Calendar)
	}
	return in
}

// UpdateWizardRequest represents a profile update; absent fields are left untouched
type UpdateWizardRequest struct {
	Name       *string            `json:"name"`
	Image      *string            `json:"image"`
	IsWizard   *bool              `json:"isWizard"`
	Subjects   []domain.Subject   `json:"subjects"`
	Languages  []domain.Language  `json:"languages"`
	Experience *domain.Experience `json:"experience"`
	Calendar   json.RawMessage    `json:"calendar"`
}

func (r UpdateWizardRequest) toUpdate() directory.WizardUpdate {
	u := directory.WizardUpdate{
		Name:       r.Name,
		Image:      r.Image,
		IsWizard:   r.IsWizard,
		Subjects:   r.Subjects,
		Languages:  r.Languages,
		Experience: r.Experience,
	}
	if len(r.Calendar) > 0 {
		u.Calendar = domain.Calendar(r.Calendar)
	}
	return u
}

package domain

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleClient Role = "client"
	RoleWorker Role = "worker"
	RoleAdmin  Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

// Experience is the professional background a wizard declares
type Experience struct {
	Title    string `json:"title"`
	Origin   string `json:"origin"`
	ExpYears int    `json:"expYears"`
	ExpJobs  int    `json:"expJobs"`
}

// Calendar is stored and returned as-is
type Calendar json.RawMessage

func (c Calendar) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return c, nil
}

func (c *Calendar) UnmarshalJSON(data []byte) error {
	*c = append((*c)[:0], data...)
	return nil
}

// User is any account in the marketplace. Wizards are users with IsWizard set.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Image        string     `json:"image,omitempty"`
	ExternalUID  *string    `json:"externalUid,omitempty"`
	PasswordHash *string    `json:"-"`
	Role         Role       `json:"role"`
	IsWizard     bool       `json:"isWizard"`
	IsDisabled   bool       `json:"isDisabled"`
	Subjects     []Subject  `json:"subjects"`
	Languages    []Language `json:"languages"`
	Experience   Experience `json:"experience"`
	Reviews      float64    `json:"reviews"`
	Calendar     Calendar   `json:"calendar,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// HasWizardCapabilities reports whether the wizard invariant holds for u
func (u *User) HasWizardCapabilities() bool {
	return u.Experience.Title != "" &&
		u.Experience.Origin != "" &&
		len(u.Subjects) > 0 &&
		len(u.Languages) > 0
}

// Clone returns a deep copy so stores never hand out shared slices
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Subjects = append([]Subject(nil), u.Subjects...)
	c.Languages = append([]Language(nil), u.Languages...)
	if u.Calendar != nil {
		c.Calendar = append(Calendar(nil), u.Calendar...)
	}
	if u.ExternalUID != nil {
		uid := *u.ExternalUID
		c.ExternalUID = &uid
	}
	if u.PasswordHash != nil {
		h := *u.PasswordHash
		c.PasswordHash = &h
	}
	return &c
}

// EmailStatus is the admin view of a user's mailbox and account state
type EmailStatus struct {
	Email      string `json:"email"`
	IsDisabled bool   `json:"isDisabled"`
}

// WizardSummary is a leaderboard row. Only the ranked metric is set.
type WizardSummary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Image   string   `json:"image,omitempty"`
	ExpJobs *int     `json:"expJobs,omitempty"`
	Reviews *float64 `json:"reviews,omitempty"`
}

type UsersTable struct {
	ID          string
	Name        string
	Email       string
	Image       string
	ExternalUID string
	Password    string
	Role        string
	IsWizard    string
	IsDisabled  string
	Subjects    string
	Languages   string
	ExpTitle    string
	ExpOrigin   string
	ExpYears    string
	ExpJobs     string
	Reviews     string
	Calendar    string
	CreatedAt   string
}

func GetUserTable() UsersTable {
	return UsersTable{
		ID:          "id",
		Name:        "name",
		Email:       "email",
		Image:       "image",
		ExternalUID: "external_uid",
		Password:    "password_hash",
		Role:        "role",
		IsWizard:    "is_wizard",
		IsDisabled:  "is_disabled",
		Subjects:    "subjects",
		Languages:   "languages",
		ExpTitle:    "exp_title",
		ExpOrigin:   "exp_origin",
		ExpYears:    "exp_years",
		ExpJobs:     "exp_jobs",
		Reviews:     "reviews",
		Calendar:    "calendar",
		CreatedAt:   "created_at",
	}
}

func (t UsersTable) GetTableName() string {
	return "users"
}

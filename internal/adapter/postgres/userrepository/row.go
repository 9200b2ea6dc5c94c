package userrepository

import (
	"time"

	"github.com/lib/pq"

	"gitlab.com/wizardhub.net/internal/domain"
)

type userRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	Image        string         `db:"image"`
	ExternalUID  *string        `db:"external_uid"`
	PasswordHash *string        `db:"password_hash"`
	Role         string         `db:"role"`
	IsWizard     bool           `db:"is_wizard"`
	IsDisabled   bool           `db:"is_disabled"`
	Subjects     pq.StringArray `db:"subjects"`
	Languages    pq.StringArray `db:"languages"`
	ExpTitle     string         `db:"exp_title"`
	ExpOrigin    string         `db:"exp_origin"`
	ExpYears     int            `db:"exp_years"`
	ExpJobs      int            `db:"exp_jobs"`
	Reviews      float64        `db:"reviews"`
	Calendar     []byte         `db:"calendar"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (r userRow) toDomain() *domain.User {
	u := &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Image:        r.Image,
		ExternalUID:  r.ExternalUID,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		IsWizard:     r.IsWizard,
		IsDisabled:   r.IsDisabled,
		Experience: domain.Experience{
			Title:    r.ExpTitle,
			Origin:   r.ExpOrigin,
			ExpYears: r.ExpYears,
			ExpJobs:  r.ExpJobs,
		},
		Reviews:   r.Reviews,
		CreatedAt: r.CreatedAt,
	}
	for _, s := range r.Subjects {
		u.Subjects = append(u.Subjects, domain.Subject(s))
	}
	for _, l := range r.Languages {
		u.Languages = append(u.Languages, domain.Language(l))
	}
	if len(r.Calendar) > 0 {
		u.Calendar = domain.Calendar(r.Calendar)
	}
	return u
}

// calendarValue keeps NULL for an absent calendar instead of an empty jsonb
func calendarValue(c domain.Calendar) interface{} {
	if len(c) == 0 {
		return nil
	}
	return []byte(c)
}

// projectionColumns lists the columns a projection reads
func projectionColumns(p domain.Projection) []string {
	tbl := domain.GetUserTable()
	switch p {
	case domain.ProjectionCalendar:
		return []string{tbl.ID, tbl.Calendar}
	case domain.ProjectionEmailStatus:
		return []string{tbl.Email, tbl.IsDisabled}
	case domain.ProjectionPublic:
		return []string{
			tbl.ID, tbl.Name, tbl.Image, tbl.ExternalUID, tbl.Role, tbl.IsWizard, tbl.IsDisabled,
			tbl.Subjects, tbl.Languages, tbl.ExpTitle, tbl.ExpOrigin, tbl.ExpYears, tbl.ExpJobs,
			tbl.Reviews, tbl.Calendar, tbl.CreatedAt,
		}
	default:
		return allColumns()
	}
}

func allColumns() []string {
	tbl := domain.GetUserTable()
	return []string{
		tbl.ID, tbl.Name, tbl.Email, tbl.Image, tbl.ExternalUID, tbl.Password, tbl.Role,
		tbl.IsWizard, tbl.IsDisabled, tbl.Subjects, tbl.Languages, tbl.ExpTitle, tbl.ExpOrigin,
		tbl.ExpYears, tbl.ExpJobs, tbl.Reviews, tbl.Calendar, tbl.CreatedAt,
	}
}

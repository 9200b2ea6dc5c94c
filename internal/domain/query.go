package domain

import (
	"math"
	"strings"
)

// UserQuery is a conjunction of optional predicates over users. Matches is
// the reference semantics; every store translation must agree with it.
type UserQuery struct {
	ID           *string
	Email        *string
	ExternalUID  *string
	IsWizard     *bool
	IsDisabled   *bool
	ExcludeAdmin bool

	// AnySubjects matches users holding at least one of the listed subjects.
	AnySubjects []Subject
	// AnyLanguages matches users speaking at least one of the listed languages.
	AnyLanguages []Language

	HasSubject  *Subject
	HasLanguage *Language

	ExpJobsGreaterThan *int
}

func (q UserQuery) Matches(u *User) bool {
	if u == nil {
		return false
	}
	if q.ID != nil && u.ID != *q.ID {
		return false
	}
	if q.Email != nil && !strings.EqualFold(u.Email, *q.Email) {
		return false
	}
	if q.ExternalUID != nil && (u.ExternalUID == nil || *u.ExternalUID != *q.ExternalUID) {
		return false
	}
	if q.IsWizard != nil && u.IsWizard != *q.IsWizard {
		return false
	}
	if q.IsDisabled != nil && u.IsDisabled != *q.IsDisabled {
		return false
	}
	if q.ExcludeAdmin && u.Role == RoleAdmin {
		return false
	}
	if q.AnySubjects != nil && !anySubject(u.Subjects, q.AnySubjects) {
		return false
	}
	if q.AnyLanguages != nil && !anyLanguage(u.Languages, q.AnyLanguages) {
		return false
	}
	if q.HasSubject != nil && !HasSubject(u.Subjects, *q.HasSubject) {
		return false
	}
	if q.HasLanguage != nil && !HasLanguage(u.Languages, *q.HasLanguage) {
		return false
	}
	if q.ExpJobsGreaterThan != nil && u.Experience.ExpJobs <= *q.ExpJobsGreaterThan {
		return false
	}
	return true
}

func anySubject(have, want []Subject) bool {
	for _, w := range want {
		if HasSubject(have, w) {
			return true
		}
	}
	return false
}

func anyLanguage(have, want []Language) bool {
	for _, w := range want {
		if HasLanguage(have, w) {
			return true
		}
	}
	return false
}

// Projection selects which user fields a read returns
type Projection int

const (
	ProjectionFull Projection = iota
	// ProjectionPublic drops email and credentials
	ProjectionPublic
	ProjectionCalendar
	ProjectionEmailStatus
)

// Apply zeroes the fields p excludes. Stores that cannot select columns use it.
func (p Projection) Apply(u *User) *User {
	if u == nil {
		return nil
	}
	switch p {
	case ProjectionPublic:
		u.Email = ""
		u.PasswordHash = nil
	case ProjectionCalendar:
		return &User{ID: u.ID, Calendar: u.Calendar}
	case ProjectionEmailStatus:
		return &User{Email: u.Email, IsDisabled: u.IsDisabled}
	}
	return u
}

type SortOrder int

const (
	SortNone SortOrder = iota
	SortAsc
	SortDesc
)

// ParseSortOrder maps "asc" and "desc"; anything else keeps natural order
func ParseSortOrder(raw string) SortOrder {
	switch raw {
	case "asc":
		return SortAsc
	case "desc":
		return SortDesc
	}
	return SortNone
}

type SortField int

const (
	SortFieldReviews SortField = iota + 1
	SortFieldExpJobs
)

type Sort struct {
	Field SortField
	Order SortOrder
}

func (s Sort) IsSet() bool {
	return s.Field != 0 && s.Order != SortNone
}

type FindOptions struct {
	Projection Projection
	Sort       Sort
	Skip       int
	// Limit of zero means no limit
	Limit int
}

// SummaryField is the metric a leaderboard projects next to name, id and image
type SummaryField int

const (
	SummaryExpJobs SummaryField = iota + 1
	SummaryReviews
)

// Pipeline is a match, sort, limit, project aggregation over users
type Pipeline struct {
	Match   UserQuery
	Sort    Sort
	Limit   int
	Project SummaryField
}

// Summarize projects u into a leaderboard row for p
func (p Pipeline) Summarize(u *User) WizardSummary {
	s := WizardSummary{ID: u.ID, Name: u.Name, Image: u.Image}
	switch p.Project {
	case SummaryExpJobs:
		v := u.Experience.ExpJobs
		s.ExpJobs = &v
	case SummaryReviews:
		v := u.Reviews
		s.Reviews = &v
	}
	return s
}

// UserPatch lists the fields a conditional update sets. Nil fields are untouched.
type UserPatch struct {
	Name       *string
	Image      *string
	IsWizard   *bool
	IsDisabled *bool
	Subjects   *[]Subject
	Languages  *[]Language
	Experience *Experience
	Calendar   *Calendar
	// IncExpJobs is added to experience.expJobs
	IncExpJobs int
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Image == nil && p.IsWizard == nil && p.IsDisabled == nil &&
		p.Subjects == nil && p.Languages == nil && p.Experience == nil && p.Calendar == nil &&
		p.IncExpJobs == 0
}

// ApplyTo mutates u in place
func (p UserPatch) ApplyTo(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Image != nil {
		u.Image = *p.Image
	}
	if p.IsWizard != nil {
		u.IsWizard = *p.IsWizard
	}
	if p.IsDisabled != nil {
		u.IsDisabled = *p.IsDisabled
	}
	if p.Subjects != nil {
		u.Subjects = append([]Subject(nil), (*p.Subjects)...)
	}
	if p.Languages != nil {
		u.Languages = append([]Language(nil), (*p.Languages)...)
	}
	if p.Experience != nil {
		jobs := u.Experience.ExpJobs
		u.Experience = *p.Experience
		u.Experience.ExpJobs = jobs
	}
	if p.Calendar != nil {
		u.Calendar = append(Calendar(nil), (*p.Calendar)...)
	}
	u.Experience.ExpJobs += p.IncExpJobs
}

type JobQuery struct {
	ID       *string
	WorkerID *string
	Status   *JobStatus
}

func (q JobQuery) Matches(j *Job) bool {
	if j == nil {
		return false
	}
	if q.ID != nil && j.ID != *q.ID {
		return false
	}
	if q.WorkerID != nil && j.WorkerID != *q.WorkerID {
		return false
	}
	if q.Status != nil && j.Status != *q.Status {
		return false
	}
	return true
}

type JobPatch struct {
	Status       *JobStatus
	ClientReview *float64
}

// Page is a 1-based offset page request
type Page struct {
	Page int
	Size int
}

// Clamp normalises untrusted page input
func (p Page) Clamp(defaultSize, maxSize int) Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = defaultSize
	}
	if maxSize > 0 && p.Size > maxSize {
		p.Size = maxSize
	}
	// (Page-1)*Size must not overflow
	if p.Page > math.MaxInt/p.Size {
		p.Page = math.MaxInt / p.Size
	}
	return p
}

func (p Page) Skip() int {
	return (p.Page - 1) * p.Size
}

// Ptr returns a pointer to v, for building queries and patches
func Ptr[T any](v T) *T {
	return &v
}

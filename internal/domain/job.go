package domain

import (
	"time"
)

// JobStatus represents the status of a job
type JobStatus string

const (
	JobStatusInProgress JobStatus = "In Progress"
	JobStatusCompleted  JobStatus = "Completed"
	JobStatusCancelled  JobStatus = "Cancelled"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// CanTransitionTo reports whether s -> next is an edge of the job state machine
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	return s == JobStatusInProgress && next.IsTerminal()
}

// Job links one client and one wizard for a number of classes
type Job struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	NumClasses   int       `json:"numClasses"`
	ClientID     string    `json:"client"`
	WorkerID     string    `json:"worker"`
	Subject      Subject   `json:"jobSubject"`
	Language     Language  `json:"jobLanguage"`
	Status       JobStatus `json:"status"`
	ClientReview *float64  `json:"clientReview,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	c := *j
	if j.ClientReview != nil {
		r := *j.ClientReview
		c.ClientReview = &r
	}
	return &c
}

type JobTable struct {
	ID           string
	Description  string
	Price        string
	NumClasses   string
	ClientID     string
	WorkerID     string
	Subject      string
	Language     string
	Status       string
	ClientReview string
	CreatedAt    string
	UpdatedAt    string
}

func GetJobTable() JobTable {
	return JobTable{
		ID:           "id",
		Description:  "description",
		Price:        "price",
		NumClasses:   "num_classes",
		ClientID:     "client_id",
		WorkerID:     "worker_id",
		Subject:      "subject",
		Language:     "language",
		Status:       "status",
		ClientReview: "client_review",
		CreatedAt:    "created_at",
		UpdatedAt:    "updated_at",
	}
}

func (JobTable) TableName() string {
	return "jobs"
}

type JobEventType string

const (
	JobEventCreated       JobEventType = "job.created"
	JobEventStatusChanged JobEventType = "job.status_changed"
)

// JobEvent is published after a job write commits
type JobEvent struct {
	Type       JobEventType `json:"type"`
	JobID      string       `json:"jobId"`
	ClientID   string       `json:"clientId"`
	WorkerID   string       `json:"workerId"`
	Status     JobStatus    `json:"status"`
	OccurredAt time.Time    `json:"occurredAt"`
}

func NewJobEvent(eventType JobEventType, job *Job) JobEvent {
	return JobEvent{
		Type:       eventType,
		JobID:      job.ID,
		ClientID:   job.ClientID,
		WorkerID:   job.WorkerID,
		Status:     job.Status,
		OccurredAt: time.Now().UTC(),
	}
}

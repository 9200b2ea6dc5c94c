package jobs

import "gitlab.com/wizardhub.net/internal/domain"

// CreateJobRequest represents a request to create a job
type CreateJobRequest struct {
	WorkerID    string          `json:"worker"`
	Subject     domain.Subject  `json:"jobSubject"`
	Language    domain.Language `json:"jobLanguage"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	NumClasses  int             `json:"numClasses"`
}

// UpdateStatusRequest represents a request to move a job to a terminal status
type UpdateStatusRequest struct {
	Status domain.JobStatus `json:"status"`
}

package jobs

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/services/job"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/handlers"
	"gitlab.com/wizardhub.net/internal/handlers/response"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

// JobHandler handles job API requests
type JobHandler struct {
	jobService job.IJobService
	logger     primary.Logger
}

var _ job.IJobService = &job.JobService{}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService job.IJobService, logger primary.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     logger,
	}
}

// RegisterRoutes registers the API routes for JobHandler. Every route needs a token.
func (h *JobHandler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.Handle("/api/jobs", mw.JWTMiddleware(http.HandlerFunc(h.CreateJob))).Methods("POST")
	router.Handle("/api/jobs/{jobId}", mw.JWTMiddleware(http.HandlerFunc(h.GetJob))).Methods("GET")
	router.Handle("/api/jobs/{jobId}/status", mw.JWTMiddleware(http.HandlerFunc(h.UpdateStatus))).Methods("PATCH")
}

// CreateJob handles job creation requests; the caller is the client
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	caller, _ := handlers.CallerFrom(r.Context())

	var req CreateJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	created, err := h.jobService.CreateJob(r.Context(), job.CreateJobInput{
		ClientID:    caller.UserID,
		WorkerID:    req.WorkerID,
		Subject:     req.Subject,
		Language:    req.Language,
		Description: req.Description,
		Price:       req.Price,
		NumClasses:  req.NumClasses,
	})
	if err != nil {
		h.logger.Info("Job rejected", "clientId", caller.UserID, "workerId", req.WorkerID, "error", err)
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

// GetJob handles job retrieval requests. Only the job's parties and admins see it.
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	caller, _ := handlers.CallerFrom(r.Context())
	jobID := mux.Vars(r)["jobId"]

	found, err := h.jobService.GetJob(r.Context(), jobID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if caller.Role != domain.RoleAdmin && caller.UserID != found.ClientID && caller.UserID != found.WorkerID {
		response.WriteServiceError(w, errs.NotFound(errs.EntityJob, jobID))
		return
	}

	response.WriteSuccess(w, found)
}

// UpdateStatus completes or cancels a job; the caller must be its worker
func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, _ := handlers.CallerFrom(r.Context())

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	updated, err := h.jobService.TransitionStatus(r.Context(), mux.Vars(r)["jobId"], caller.UserID, req.Status)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteSuccess(w, updated)
}

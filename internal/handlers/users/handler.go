package users

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/services/directory"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/handlers"
	"gitlab.com/wizardhub.net/internal/handlers/response"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

// UserHandler serves registration, profile and admin endpoints
type UserHandler struct {
	directory directory.IDirectoryService
	logger    primary.Logger
}

func NewUserHandler(directoryService directory.IDirectoryService, logger primary.Logger) *UserHandler {
	return &UserHandler{
		directory: directoryService,
		logger:    logger,
	}
}

// RegisterRoutes registers the API routes for UserHandler
func (h *UserHandler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	admin := func(f http.HandlerFunc) http.Handler {
		return mw.JWTMiddleware(mw.RequireRole(domain.RoleAdmin)(f))
	}

	router.HandleFunc("/api/users", h.CreateUser).Methods("POST")
	router.Handle("/api/users", admin(h.ListUsers)).Methods("GET")
	router.Handle("/api/users/emails", admin(h.ListEmails)).Methods("GET")
	router.Handle("/api/users/{id}/wizard", mw.JWTMiddleware(http.HandlerFunc(h.UpdateWizard))).Methods("PATCH")
	router.Handle("/api/users/{id}/disable", admin(h.Disable)).Methods("POST")
	router.Handle("/api/users/{id}/able", admin(h.Enable)).Methods("POST")
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if req.Role == domain.RoleAdmin {
		response.WriteServiceError(w, errs.Invalid("role", "admin accounts cannot be self-registered"))
		return
	}

	user, err := h.directory.CreateUser(r.Context(), req.toInput())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, user)
}

// UpdateWizard lets users edit their own profile; admins may edit anyone
func (h *UserHandler) UpdateWizard(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	caller, _ := handlers.CallerFrom(r.Context())
	if caller.UserID != userID && caller.Role != domain.RoleAdmin {
		response.WriteServiceError(w, errs.Forbidden)
		return
	}

	var req UpdateWizardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	user, err := h.directory.UpdateWizard(r.Context(), userID, req.toUpdate())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, user)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.FindAllNonAdmin(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, users)
}

func (h *UserHandler) ListEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.directory.FindAllEmails(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, emails)
}

func (h *UserHandler) Disable(w http.ResponseWriter, r *http.Request) {
	h.setDisabled(w, r, true)
}

func (h *UserHandler) Enable(w http.ResponseWriter, r *http.Request) {
	h.setDisabled(w, r, false)
}

func (h *UserHandler) setDisabled(w http.ResponseWriter, r *http.Request, disabled bool) {
	user, err := h.directory.SetDisabled(r.Context(), mux.Vars(r)["id"], disabled)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, user)
}

package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/wizardhub.net/internal/adapter/oauth"
	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/services/auth"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/handlers"
	"gitlab.com/wizardhub.net/internal/handlers/response"
)

const stateCookie = "oauth_state"

// IdentityProvider is the OAuth side of the Google login
type IdentityProvider interface {
	AuthCodeURL(state string) string
	FetchUser(ctx context.Context, code string) (oauth.GoogleUser, error)
}

type ServiceDependencies struct {
	GGAuthService    auth.IAuthService
	LocalAuthService auth.IAuthService

	// GoogleProvider may be nil when Google login is not configured
	GoogleProvider IdentityProvider
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	providerHandler map[domain.Provider]auth.IAuthService
	google          IdentityProvider
	logger          primary.Logger
}

func NewHandler(logger primary.Logger) *Handler {
	return &Handler{
		providerHandler: make(map[domain.Provider]auth.IAuthService),
		logger:          logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, svcDep *ServiceDependencies) {
	h.providerHandler[domain.ProviderLocal] = svcDep.LocalAuthService
	router.HandleFunc("/auth/login", h.LocalLoginHandler).Methods("POST")

	if svcDep.GoogleProvider == nil || svcDep.GGAuthService == nil {
		return
	}
	h.providerHandler[domain.ProviderGoogle] = svcDep.GGAuthService
	h.google = svcDep.GoogleProvider
	router.HandleFunc("/auth/google", h.GoogleLoginHandler).Methods("GET")
	router.HandleFunc("/auth/callback", h.GoogleCallbackHandler).Methods("GET")
}

func (h *Handler) LocalLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	h.login(w, r, domain.Credentials{
		Provider: domain.ProviderLocal,
		Email:    req.Email,
		Password: req.Password,
	})
}

// GoogleLoginHandler redirects user to Google OAuth2 login
func (h *Handler) GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallbackHandler handles Google OAuth2 callback
func (h *Handler) GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		response.WriteError(w, response.ErrorMessage{Message: "Invalid OAuth state", StatusCode: http.StatusBadRequest})
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		response.WriteError(w, response.ErrorMessage{Message: "No code in URL", StatusCode: http.StatusBadRequest})
		return
	}

	googleUser, err := h.google.FetchUser(r.Context(), code)
	if err != nil {
		h.logger.Error("Failed to fetch Google user", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get user info", StatusCode: http.StatusBadGateway})
		return
	}

	h.login(w, r, domain.Credentials{
		Provider:    domain.ProviderGoogle,
		Email:       googleUser.Email,
		ExternalUID: googleUser.ID,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, credentials domain.Credentials) {
	svc, ok := h.providerHandler[credentials.Provider]
	if !ok {
		response.WriteError(w, response.ErrorMessage{Message: "Unsupported provider", StatusCode: http.StatusBadRequest})
		return
	}

	tokenStr, err := svc.Login(r.Context(), credentials)
	if err != nil {
		h.logger.Info("Login failed", "provider", credentials.Provider, "error", err)
		response.WriteServiceError(w, err)
		return
	}

	response.WriteSuccess(w, domain.LoginResponse{Token: tokenStr})
}

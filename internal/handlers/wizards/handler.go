package wizards

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/services/discovery"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/handlers"
	"gitlab.com/wizardhub.net/internal/handlers/response"
)

// WizardHandler serves the public discovery endpoints
type WizardHandler struct {
	discovery discovery.IDiscoveryService
	logger    primary.Logger
}

func NewWizardHandler(discoveryService discovery.IDiscoveryService, logger primary.Logger) *WizardHandler {
	return &WizardHandler{
		discovery: discoveryService,
		logger:    logger,
	}
}

// RegisterRoutes registers the API routes for WizardHandler
func (h *WizardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/wizards", h.ListWizards).Methods("GET")
	router.HandleFunc("/api/wizards/top-sellers", h.TopSellers).Methods("GET")
	router.HandleFunc("/api/wizards/top-rated", h.TopRated).Methods("GET")
	router.HandleFunc("/api/wizards/{id}", h.GetWizard).Methods("GET")
	router.HandleFunc("/api/users/{id}/calendar", h.GetCalendar).Methods("GET")
}

type ListWizardsResponse struct {
	Wizards []*domain.User `json:"wizards"`
	Total   int            `json:"total"`
}

// ListWizards handles GET /api/wizards?subjects=&languages=&sortByReviews=&page=&size=
func (h *WizardHandler) ListWizards(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.QueryInt(r, "page")
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	size, err := handlers.QueryInt(r, "size")
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	filter := discovery.WizardFilter{}
	if subjects := handlers.QueryList(r, "subjects"); subjects != nil {
		filter.Subjects = make([]domain.Subject, 0, len(subjects))
		for _, s := range subjects {
			filter.Subjects = append(filter.Subjects, domain.Subject(s))
		}
	}
	if languages := handlers.QueryList(r, "languages"); languages != nil {
		filter.Languages = make([]domain.Language, 0, len(languages))
		for _, l := range languages {
			filter.Languages = append(filter.Languages, domain.Language(l))
		}
	}
	sortOrder := domain.ParseSortOrder(r.URL.Query().Get("sortByReviews"))

	wizards, err := h.discovery.ListWizards(r.Context(), filter, sortOrder, domain.Page{Page: page, Size: size})
	if err != nil {
		h.logger.Error("Failed to list wizards", "error", err)
		response.WriteServiceError(w, err)
		return
	}
	total, err := h.discovery.CountWizards(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to count wizards", "error", err)
		response.WriteServiceError(w, err)
		return
	}

	response.WriteSuccess(w, ListWizardsResponse{Wizards: wizards, Total: total})
}

func (h *WizardHandler) TopSellers(w http.ResponseWriter, r *http.Request) {
	board, err := h.discovery.TopSellers(r.Context())
	if err != nil {
		h.logger.Error("Failed to get top sellers", "error", err)
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, board)
}

func (h *WizardHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	board, err := h.discovery.TopRatedWizards(r.Context())
	if err != nil {
		h.logger.Error("Failed to get top rated wizards", "error", err)
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, board)
}

func (h *WizardHandler) GetWizard(w http.ResponseWriter, r *http.Request) {
	wizard, err := h.discovery.FindOneWizard(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, wizard)
}

type CalendarResponse struct {
	Calendar domain.Calendar `json:"calendar"`
}

func (h *WizardHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	calendar, err := h.discovery.GetCalendar(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, CalendarResponse{Calendar: calendar})
}

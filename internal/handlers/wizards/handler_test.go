package wizards

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/wizardhub.net/internal/adapter/logging"
	"gitlab.com/wizardhub.net/internal/adapter/memory"
	"gitlab.com/wizardhub.net/internal/config"
	"gitlab.com/wizardhub.net/internal/core/services/discovery"
	"gitlab.com/wizardhub.net/internal/domain"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	db := memory.NewDB()
	ctx := context.Background()

	users := []*domain.User{
		{ID: "w1", Name: "Merlin", Email: "w1@example.com", Role: domain.RoleWorker, IsWizard: true,
			Subjects: []domain.Subject{domain.SubjectMath}, Languages: []domain.Language{domain.LanguageEnglish},
			Experience: domain.Experience{Title: "Tutor", Origin: "Uni", ExpJobs: 3}, Reviews: 4.5,
			Calendar: domain.Calendar(`{"mon":["09:00"]}`)},
		{ID: "w2", Name: "Morgana", Email: "w2@example.com", Role: domain.RoleWorker, IsWizard: true,
			Subjects: []domain.Subject{domain.SubjectPhysics}, Languages: []domain.Language{domain.LanguageFrench},
			Experience: domain.Experience{Title: "Tutor", Origin: "Uni", ExpJobs: 7}, Reviews: 3},
		{ID: "c1", Name: "Client", Email: "c1@example.com", Role: domain.RoleClient},
	}
	for _, u := range users {
		_, err := db.Users().Insert(ctx, u)
		require.NoError(t, err)
	}

	cfg := &config.DiscoveryConfig{DefaultPageSize: 10, MaxPageSize: 100, LeaderboardSize: 10}
	svc := discovery.NewDiscoveryService(db.Users(), nil, cfg, logging.NewNopLogger())

	router := mux.NewRouter()
	NewWizardHandler(svc, logging.NewNopLogger()).RegisterRoutes(router)
	return router
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListWizards(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name    string
		target  string
		wantIDs []string
		total   int
	}{
		{name: "all wizards", target: "/api/wizards", wantIDs: []string{"w1", "w2"}, total: 2},
		{name: "subject filter", target: "/api/wizards?subjects=Physics", wantIDs: []string{"w2"}, total: 1},
		{name: "comma separated", target: "/api/wizards?languages=English,French", wantIDs: []string{"w1", "w2"}, total: 2},
		{name: "sorted ascending", target: "/api/wizards?sortByReviews=asc", wantIDs: []string{"w2", "w1"}, total: 2},
		{name: "paged", target: "/api/wizards?page=2&size=1", wantIDs: []string{"w2"}, total: 2},
		{name: "no match", target: "/api/wizards?subjects=Art", wantIDs: []string{}, total: 0},
		{name: "blank subject filter ignored", target: "/api/wizards?subjects=&languages=,", wantIDs: []string{"w1", "w2"}, total: 2},
		{name: "page past the end", target: "/api/wizards?page=9223372036854775807&size=100", wantIDs: []string{}, total: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, router, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Wizards []domain.User `json:"wizards"`
				Total   int           `json:"total"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

			ids := []string{}
			for _, w := range body.Wizards {
				ids = append(ids, w.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.total, body.Total)
		})
	}
}

func TestListWizards_BadPage(t *testing.T) {
	rec := get(t, newRouter(t), "/api/wizards?page=two")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboards(t *testing.T) {
	router := newRouter(t)

	var sellers []domain.WizardSummary
	rec := get(t, router, "/api/wizards/top-sellers")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sellers))
	require.Len(t, sellers, 2)
	assert.Equal(t, "w2", sellers[0].ID)

	var rated []domain.WizardSummary
	rec = get(t, router, "/api/wizards/top-rated")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rated))
	require.Len(t, rated, 2)
	assert.Equal(t, "w1", rated[0].ID)
}

func TestGetWizardAndCalendar(t *testing.T) {
	router := newRouter(t)

	rec := get(t, router, "/api/wizards/w1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Merlin"`)

	rec = get(t, router, "/api/wizards/c1")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, router, "/api/users/w1/calendar")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"calendar":{"mon":["09:00"]}}`, rec.Body.String())

	rec = get(t, router, "/api/users/ghost/calendar")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

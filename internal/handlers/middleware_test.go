package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/wizardhub.net/internal/adapter/crypto"
	"gitlab.com/wizardhub.net/internal/adapter/logging"
	"gitlab.com/wizardhub.net/internal/config"
	"gitlab.com/wizardhub.net/internal/domain"
)

func TestJWTMiddleware(t *testing.T) {
	jwtSvc := crypto.NewJWTService(&config.JwtConfig{Secret: "s", TokenTTL: time.Minute})
	m := New(jwtSvc, logging.NewNopLogger())

	token, err := jwtSvc.IssueToken(context.Background(), domain.AuthPayload{UserID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	var seen domain.AuthPayload
	protected := m.JWTMiddleware(m.RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CallerFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid admin", header: "Bearer " + token, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
	assert.Equal(t, "u1", seen.UserID)
}

func TestRequireRole_Forbidden(t *testing.T) {
	m := New(nil, logging.NewNopLogger())
	h := m.RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithCaller(req.Context(), domain.AuthPayload{UserID: "u", Role: domain.RoleClient}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?subjects=Math,Physics&subjects=Art&languages=&tags=,%20,&page=2&size=x", nil)

	assert.Equal(t, []string{"Math", "Physics", "Art"}, QueryList(req, "subjects"))
	assert.Nil(t, QueryList(req, "languages"))
	assert.Nil(t, QueryList(req, "tags"))
	assert.Nil(t, QueryList(req, "missing"))

	page, err := QueryInt(req, "page")
	require.NoError(t, err)
	assert.Equal(t, 2, page)

	_, err = QueryInt(req, "size")
	assert.Error(t, err)

	missing, err := QueryInt(req, "nothing")
	require.NoError(t, err)
	assert.Equal(t, 0, missing)
}

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/wizardhub.net/internal/adapter/crypto"
	"gitlab.com/wizardhub.net/internal/adapter/logging"
	"gitlab.com/wizardhub.net/internal/adapter/memory"
	"gitlab.com/wizardhub.net/internal/adapter/oauth"
	"gitlab.com/wizardhub.net/internal/config"
	"gitlab.com/wizardhub.net/internal/core/services/auth"
	"gitlab.com/wizardhub.net/internal/core/services/directory"
	"gitlab.com/wizardhub.net/internal/domain"
)

type fakeProvider struct {
	user oauth.GoogleUser
	err  error
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) FetchUser(ctx context.Context, code string) (oauth.GoogleUser, error) {
	return p.user, p.err
}

type fixture struct {
	router   *mux.Router
	jwt      *crypto.JWTServiceImpl
	provider *fakeProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logging.NewNopLogger()
	db := memory.NewDB()
	jwtSvc := crypto.NewJWTService(&config.JwtConfig{Secret: "s", TokenTTL: time.Minute})
	dir := directory.NewDirectoryService(db.Users(), jwtSvc, logger)

	_, err := dir.CreateUser(context.Background(), directory.NewUserInput{Name: "Ann", Email: "ann@example.com", Password: "pw"})
	require.NoError(t, err)

	provider := &fakeProvider{user: oauth.GoogleUser{ID: "g-1", Name: "Gus", Email: "gus@example.com"}}
	router := mux.NewRouter()
	NewHandler(logger).RegisterRoutes(router, &ServiceDependencies{
		GGAuthService:    auth.NewGoogleAuthService(dir, jwtSvc, logger),
		LocalAuthService: auth.NewLocalAuthService(db.Users(), jwtSvc, jwtSvc, logger),
		GoogleProvider:   provider,
	})
	return &fixture{router: router, jwt: jwtSvc, provider: provider}
}

func (f *fixture) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestLocalLoginHandler(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "success", body: `{"email":"ann@example.com","password":"pw"}`, wantStatus: http.StatusOK},
		{name: "wrong password", body: `{"email":"ann@example.com","password":"nope"}`, wantStatus: http.StatusUnauthorized},
		{name: "no email", body: `{"password":"pw"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed", body: `nope`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.serve(httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body)))
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp domain.LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			payload, err := f.jwt.ParseToken(context.Background(), resp.Token)
			require.NoError(t, err)
			assert.Equal(t, "ann@example.com", payload.Email)
		})
	}
}

func TestGoogleFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.serve(httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	state := cookies[0].Value
	assert.Contains(t, rec.Header().Get("Location"), state)

	callback := func(state, code string, cookie *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/auth/callback?state="+state+"&code="+code, nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		return f.serve(req)
	}

	assert.Equal(t, http.StatusBadRequest, callback(state, "c", nil).Code)
	assert.Equal(t, http.StatusBadRequest, callback("forged", "c", cookies[0]).Code)
	assert.Equal(t, http.StatusBadRequest, callback(state, "", cookies[0]).Code)

	rec = callback(state, "c", cookies[0])
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp domain.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	payload, err := f.jwt.ParseToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "gus@example.com", payload.Email)
	assert.Equal(t, domain.ProviderGoogle, payload.Provider)

	f.provider.err = errors.New("exchange failed")
	assert.Equal(t, http.StatusBadGateway, callback(state, "c", cookies[0]).Code)
}

func TestGoogleRoutesOptional(t *testing.T) {
	router := mux.NewRouter()
	NewHandler(logging.NewNopLogger()).RegisterRoutes(router, &ServiceDependencies{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package handlers

import (
	"context"
	"net/http"
	"strings"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/handlers/response"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

type callerKey struct{}

type MiddlewareProvider struct {
	tokens primary.JWTService
	logger primary.Logger
}

func New(tokens primary.JWTService, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		tokens: tokens,
		logger: logger,
	}
}

// JWTMiddleware rejects requests without a valid bearer token and stores the
// token payload in the request context
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.WriteError(w, response.ErrorMessage{Message: "Authorization header missing", StatusCode: http.StatusUnauthorized})
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		payload, err := m.tokens.ParseToken(r.Context(), tokenString)
		if err != nil {
			m.logger.Debug("Rejected token", "path", r.URL.Path, "error", err)
			response.WriteError(w, response.ErrorMessage{Message: "Invalid token", StatusCode: http.StatusUnauthorized})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), payload)))
	})
}

// RequireRole must run after JWTMiddleware
func (m *MiddlewareProvider) RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFrom(r.Context())
			if !ok || caller.Role != role {
				response.WriteServiceError(w, errs.Forbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithCaller(ctx context.Context, payload domain.AuthPayload) context.Context {
	return context.WithValue(ctx, callerKey{}, payload)
}

func CallerFrom(ctx context.Context) (domain.AuthPayload, bool) {
	payload, ok := ctx.Value(callerKey{}).(domain.AuthPayload)
	return payload, ok
}

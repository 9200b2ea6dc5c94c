package auth

import (
	"context"
	"strings"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/ports/secondary"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

var _ IAuthService = &localAuthService{}

type localAuthService struct {
	users       secondary.UserStore
	jwtProvider primary.JWTService
	hasher      primary.PasswordHasher
	logger      primary.Logger
}

func NewLocalAuthService(
	users secondary.UserStore,
	jwtProvider primary.JWTService,
	hasher primary.PasswordHasher,
	logger primary.Logger,
) IAuthService {
	return &localAuthService{
		users:       users,
		jwtProvider: jwtProvider,
		hasher:      hasher,
		logger:      logger,
	}
}

func (g localAuthService) ProviderName() domain.Provider {
	return domain.ProviderLocal
}

func (g localAuthService) Login(ctx context.Context, credentials domain.Credentials) (string, error) {
	email := strings.TrimSpace(credentials.Email)
	if email == "" {
		return "", errs.EmailRequired
	}

	usr, err := g.users.FindOne(ctx, domain.UserQuery{Email: &email}, domain.ProjectionFull)
	if err != nil {
		g.logger.Error("Failed to get user by email", "error", err)
		return "", errs.InternalError
	}
	if usr == nil || usr.PasswordHash == nil {
		return "", errs.InvalidCredentials
	}
	if usr.IsDisabled {
		return "", errs.AccountDisabled
	}

	valid, err := g.hasher.VerifyPassword(ctx, *usr.PasswordHash, credentials.Password)
	if err != nil || !valid {
		return "", errs.InvalidCredentials
	}

	g.logger.Info("User logged in", "userId", usr.ID, "provider", domain.ProviderLocal)
	return generateToken(ctx, g.jwtProvider, usr, domain.ProviderLocal)
}

package auth

import (
	"context"
	"errors"
	"strings"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/services/directory"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

var _ IAuthService = &googleAuthService{}

// UserRegistry is the part of the directory the Google login needs
type UserRegistry interface {
	FindByExternalUID(ctx context.Context, uid string) (*domain.User, error)
	CreateUser(ctx context.Context, input directory.NewUserInput) (*domain.User, error)
}

type googleAuthService struct {
	registry    UserRegistry
	jwtProvider primary.JWTService
	logger      primary.Logger
}

func NewGoogleAuthService(registry UserRegistry, jwtProvider primary.JWTService, logger primary.Logger) IAuthService {
	return &googleAuthService{
		registry:    registry,
		jwtProvider: jwtProvider,
		logger:      logger,
	}
}

func (g googleAuthService) ProviderName() domain.Provider {
	return domain.ProviderGoogle
}

// Login signs in by identity-provider uid, creating a client account on first use
func (g googleAuthService) Login(ctx context.Context, credentials domain.Credentials) (string, error) {
	if credentials.ExternalUID == "" {
		return "", errs.InvalidCredentials
	}
	if credentials.Provider != "" && credentials.Provider != domain.ProviderGoogle {
		return "", errs.InvalidCredentials
	}

	usr, err := g.registry.FindByExternalUID(ctx, credentials.ExternalUID)
	switch {
	case err == nil:
		return generateToken(ctx, g.jwtProvider, usr, domain.ProviderGoogle)
	case !errs.IsNotFound(err):
		g.logger.Error("Failed to get user by uid", "error", err)
		return "", errs.InternalError
	}

	email := strings.TrimSpace(credentials.Email)
	if email == "" {
		return "", errs.EmailRequired
	}

	uid := credentials.ExternalUID
	usr, err = g.registry.CreateUser(ctx, directory.NewUserInput{
		Name:        strings.Split(email, "@")[0],
		Email:       email,
		ExternalUID: &uid,
		Role:        domain.RoleClient,
	})
	if err != nil {
		var dup *errs.DuplicateKeyError
		if errors.As(err, &dup) {
			if dup.Field == "externalUid" {
				// the uid exists but FindByExternalUID skipped it
				return "", errs.AccountDisabled
			}
			return "", err
		}
		g.logger.Error("Failed to register Google user", "error", err)
		return "", errs.InternalError
	}

	g.logger.Info("User registered through Google", "userId", usr.ID)
	return generateToken(ctx, g.jwtProvider, usr, domain.ProviderGoogle)
}

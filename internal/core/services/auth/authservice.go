package auth

import (
	"context"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

type IAuthService interface {
	ProviderName() domain.Provider
	Login(ctx context.Context, credentials domain.Credentials) (string, error)
}

func generateToken(ctx context.Context, jwtProvider primary.JWTService, user *domain.User, provider domain.Provider) (string, error) {
	token, err := jwtProvider.IssueToken(ctx, domain.AuthPayload{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		IsWizard: user.IsWizard,
		Provider: provider,
	})
	if err != nil {
		return "", errs.GeneratingToken
	}
	return token, nil
}

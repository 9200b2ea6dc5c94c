package primary

import (
	"context"

	"gitlab.com/wizardhub.net/internal/domain"
)

type JWTService interface {
	IssueToken(ctx context.Context, payload domain.AuthPayload) (string, error)
	ParseToken(ctx context.Context, token string) (domain.AuthPayload, error)
}

type PasswordHasher interface {
	EncryptPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error)
}

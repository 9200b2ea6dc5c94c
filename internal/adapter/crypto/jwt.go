package crypto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/wizardhub.net/internal/config"
	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/domain"
)

var (
	_ primary.JWTService     = (*JWTServiceImpl)(nil)
	_ primary.PasswordHasher = (*JWTServiceImpl)(nil)
)

var ErrInvalidToken = errors.New("invalid token")

const defaultTokenTTL = time.Hour

type JWTServiceImpl struct {
	HMACSecretKey string
	TokenTTL      time.Duration
}

func NewJWTService(jwtConfig *config.JwtConfig) *JWTServiceImpl {
	ttl := jwtConfig.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
		TokenTTL:      ttl,
	}
}

func (J JWTServiceImpl) GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error) {
	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return "", fmt.Errorf("unsupported signing method: %s", method)
	}

	// Ensure the claims map contains an expiration time
	if _, exists := claims["exp"]; !exists {
		claims["exp"] = time.Now().Add(J.TokenTTL).Unix()
	}

	tok := jwt.NewWithClaims(signingMethod, jwt.MapClaims(claims))
	return tok.SignedString([]byte(J.HMACSecretKey))
}

func (J JWTServiceImpl) parse(token string) (*jwt.Token, error) {
	return jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(J.HMACSecretKey), nil
	})
}

// IssueToken signs payload with HS256
func (J JWTServiceImpl) IssueToken(ctx context.Context, payload domain.AuthPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal auth payload: %w", err)
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(data, &claims); err != nil {
		return "", fmt.Errorf("failed to build claims: %w", err)
	}
	claims["iat"] = time.Now().Unix()

	return J.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, claims)
}

// ParseToken verifies signature and expiry, then reads the payload
func (J JWTServiceImpl) ParseToken(ctx context.Context, token string) (domain.AuthPayload, error) {
	parsedToken, err := J.parse(token)
	if err != nil || !parsedToken.Valid {
		return domain.AuthPayload{}, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return domain.AuthPayload{}, ErrInvalidToken
	}
	data, err := json.Marshal(claims)
	if err != nil {
		return domain.AuthPayload{}, fmt.Errorf("failed to read claims: %w", err)
	}

	payload, err := J.DecryptAuthPayload(data)
	if err != nil {
		return domain.AuthPayload{}, err
	}
	if payload.UserID == "" {
		return domain.AuthPayload{}, ErrInvalidToken
	}
	return payload, nil
}

func (JWTServiceImpl) VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pwd))
	if err != nil {
		return false, err
	}
	return true, nil
}

func (J JWTServiceImpl) EncryptPassword(ctx context.Context, password string) (string, error) {
	pwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (J JWTServiceImpl) DecryptAuthPayload(data []byte) (domain.AuthPayload, error) {
	var authPayload domain.AuthPayload

	err := json.Unmarshal(data, &authPayload)
	if err != nil {
		return domain.AuthPayload{}, fmt.Errorf("failed to decrypt AuthPayload: %w", err)
	}

	return authPayload, nil
}

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gitlab.com/wizardhub.net/internal/config"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleUser struct to decode Google API response
type GoogleUser struct {
	ID    string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type GoogleClient struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogleClient(cfg *config.GGAuthConfig) *GoogleClient {
	return &GoogleClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (c *GoogleClient) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// FetchUser exchanges an authorization code and reads the profile it grants
func (c *GoogleClient) FetchUser(ctx context.Context, code string) (GoogleUser, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return GoogleUser{}, fmt.Errorf("failed to exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return GoogleUser{}, err
	}
	resp, err := c.config.Client(ctx, token).Do(req)
	if err != nil {
		return GoogleUser{}, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GoogleUser{}, fmt.Errorf("failed to get user info: status %d", resp.StatusCode)
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return GoogleUser{}, fmt.Errorf("failed to decode user info: %w", err)
	}
	return user, nil
}

package config

type GGAuthConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

func NewGGAuthConfig() *GGAuthConfig {
	return &GGAuthConfig{
		ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8082/auth/callback"),
	}
}

func (c *GGAuthConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *AppConfig {
	cfg := NewSystemConfig()
	cfg.JwtConfig.Secret = "secret"
	return cfg
}

func TestNewSystemConfig_ReadsEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DISCOVERY_MAX_PAGE_SIZE", "50")
	t.Setenv("LEADERBOARD_TTL_SEC", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("STORE_DRIVER", "memory")

	cfg := NewSystemConfig()

	assert.Equal(t, 9090, cfg.HttpConfig.Port)
	assert.Equal(t, 50, cfg.DiscoveryConfig.MaxPageSize)
	assert.Equal(t, 30*time.Second, cfg.DiscoveryConfig.LeaderboardTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HttpConfig.AllowedOrigins)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
}

func TestNewSystemConfig_Defaults(t *testing.T) {
	t.Setenv("DISCOVERY_DEFAULT_PAGE_SIZE", "not-a-number")

	cfg := NewSystemConfig()

	assert.Equal(t, 10, cfg.DiscoveryConfig.DefaultPageSize)
	assert.Equal(t, 10, cfg.DiscoveryConfig.LeaderboardSize)
}

func TestLoadFile_OverlaysYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
store_driver: memory
http:
  port: 7000
discovery:
  max_page_size: 25
  leaderboard_ttl: 45s
rabbitmq:
  enabled: true
  exchange: events
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := validConfig()
	require.NoError(t, LoadFile(path, cfg))

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 7000, cfg.HttpConfig.Port)
	assert.Equal(t, 25, cfg.DiscoveryConfig.MaxPageSize)
	assert.Equal(t, 45*time.Second, cfg.DiscoveryConfig.LeaderboardTTL)
	assert.Equal(t, 10, cfg.DiscoveryConfig.DefaultPageSize)
	assert.True(t, cfg.RabbitMQConfig.Enabled)
	assert.Equal(t, "events", cfg.RabbitMQConfig.Exchange)
	assert.Equal(t, "secret", cfg.JwtConfig.Secret)
}

func TestLoadFile_Errors(t *testing.T) {
	err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), validConfig())
	assert.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unclosed"), 0o600))
	err = LoadFile(path, validConfig())
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(c *AppConfig) {}},
		{name: "bad port", mutate: func(c *AppConfig) { c.HttpConfig.Port = 70000 }, wantErr: "invalid http port"},
		{name: "unknown driver", mutate: func(c *AppConfig) { c.StoreDriver = "mongo" }, wantErr: "unknown store driver"},
		{name: "missing secret", mutate: func(c *AppConfig) { c.JwtConfig.Secret = "" }, wantErr: "jwt secret"},
		{
			name:    "max below default",
			mutate:  func(c *AppConfig) { c.DiscoveryConfig.MaxPageSize = 5 },
			wantErr: "max page size",
		},
		{
			name:    "rabbit without exchange",
			mutate:  func(c *AppConfig) { c.RabbitMQConfig.Enabled = true; c.RabbitMQConfig.Exchange = "" },
			wantErr: "rabbitmq exchange",
		},
		{
			name:   "memory store needs no database",
			mutate: func(c *AppConfig) { c.StoreDriver = StoreDriverMemory; c.PostgresConfig.Url = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

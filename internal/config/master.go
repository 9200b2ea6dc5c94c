package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	MinPort = 1
	MaxPort = 65535

	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type AppConfig struct {
	DebugMode       bool             `yaml:"debug_mode"`
	StoreDriver     string           `yaml:"store_driver"`
	HttpConfig      *HttpConfig      `yaml:"http"`
	LogConfig       *LogConfig       `yaml:"log"`
	DiscoveryConfig *DiscoveryConfig `yaml:"discovery"`
	RedisConfig     *RedisConfig     `yaml:"redis"`
	PostgresConfig  *PostgresConfig  `yaml:"postgres"`
	RabbitMQConfig  *RabbitMQConfig  `yaml:"rabbitmq"`
	JwtConfig       *JwtConfig       `yaml:"jwt"`
	GGAuthConfig    *GGAuthConfig    `yaml:"google_auth"`
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:       os.Getenv("DEBUG_MODE") == "true",
		StoreDriver:     getEnv("STORE_DRIVER", StoreDriverPostgres),
		HttpConfig:      NewHttpConfig(),
		LogConfig:       NewLogConfig(),
		DiscoveryConfig: NewDiscoveryConfig(),
		RedisConfig:     NewRedisConfig(),
		PostgresConfig:  NewPostgresConfig(),
		RabbitMQConfig:  NewRabbitMQConfig(),
		JwtConfig:       NewJwtConfig(),
		GGAuthConfig:    NewGGAuthConfig(),
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep the values cfg already has.
func LoadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable
func (c *AppConfig) Validate() error {
	if c.HttpConfig.Port < MinPort || c.HttpConfig.Port > MaxPort {
		return fmt.Errorf("invalid http port: %d (must be between %d and %d)", c.HttpConfig.Port, MinPort, MaxPort)
	}

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.PostgresConfig.Url == "" {
			return fmt.Errorf("database url is required")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}

	if c.JwtConfig.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	d := c.DiscoveryConfig
	if d.DefaultPageSize < 1 {
		return fmt.Errorf("default page size must be positive: %d", d.DefaultPageSize)
	}
	if d.MaxPageSize < d.DefaultPageSize {
		return fmt.Errorf("max page size %d is below default page size %d", d.MaxPageSize, d.DefaultPageSize)
	}
	if d.LeaderboardSize < 1 {
		return fmt.Errorf("leaderboard size must be positive: %d", d.LeaderboardSize)
	}
	if d.LeaderboardRefreshInterval <= 0 {
		return fmt.Errorf("leaderboard refresh interval must be positive")
	}

	if c.RabbitMQConfig.Enabled && c.RabbitMQConfig.Exchange == "" {
		return fmt.Errorf("rabbitmq exchange is required when rabbitmq is enabled")
	}

	return nil
}

package config

import "time"

type DiscoveryConfig struct {
	DefaultPageSize            int           `yaml:"default_page_size"`
	MaxPageSize                int           `yaml:"max_page_size"`
	LeaderboardSize            int           `yaml:"leaderboard_size"`
	LeaderboardTTL             time.Duration `yaml:"leaderboard_ttl"`
	LeaderboardRefreshInterval time.Duration `yaml:"leaderboard_refresh_interval"`
}

func NewDiscoveryConfig() *DiscoveryConfig {
	return &DiscoveryConfig{
		DefaultPageSize:            getIntEnv("DISCOVERY_DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:                getIntEnv("DISCOVERY_MAX_PAGE_SIZE", 100),
		LeaderboardSize:            getIntEnv("LEADERBOARD_SIZE", 10),
		LeaderboardTTL:             getSecondsEnv("LEADERBOARD_TTL_SEC", 120),
		LeaderboardRefreshInterval: getSecondsEnv("LEADERBOARD_REFRESH_INTERVAL_SEC", 60),
	}
}

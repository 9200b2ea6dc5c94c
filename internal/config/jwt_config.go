package config

import "time"

type JwtConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		Secret:   getEnv("JWT_SECRET", ""),
		TokenTTL: getSecondsEnv("JWT_TTL_SEC", 3600),
	}
}

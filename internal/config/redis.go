package config

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	DB       int    `yaml:"db"`
	Url      string `yaml:"url"`
	Password string `yaml:"password"`
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		Enabled:  getEnv("REDIS_ENABLED", "true") == "true",
		DB:       getIntEnv("REDIS_DB", 0),
		Url:      getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
	}
}

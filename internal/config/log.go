package config

type LogConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

func NewLogConfig() *LogConfig {
	return &LogConfig{
		Format: getEnv("LOG_FORMAT", "json"),
		Level:  getEnv("LOG_LEVEL", "info"),
	}
}

package config

type HttpConfig struct {
	Port           int      `yaml:"port"`
	ServiceName    string   `yaml:"service_name"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func NewHttpConfig() *HttpConfig {
	origins := getListEnv("CORS_ALLOWED_ORIGINS")
	if origins == nil {
		origins = []string{"*"}
	}
	return &HttpConfig{
		Port:           getIntEnv("HTTP_PORT", 8082),
		ServiceName:    getEnv("SERVICE_NAME", "wizardhub"),
		AllowedOrigins: origins,
	}
}

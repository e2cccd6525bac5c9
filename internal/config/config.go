package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	DatabaseURL      string
	ServerPort       string
	BaseURL          string
	FrontendURL      string
	OpenAIKey        string
	AIProvider       string
	AIModel          string
	AIBaseURL        string
	EnableHSTS       bool
	OIDCIssuer       string
	OIDCJWKSURL      string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURI  string
	RedisURL         string
	RateLimit        string
	RabbitMQURL      string
	RabbitMQPrefetch int
	WorkerDebugMode  bool
	ServerDebugMode  bool
	OTELEnabled      bool
	OTELEndpoint     string
}

// fileConfig mirrors the optional YAML config file. Values from the file
// act as defaults; environment variables always win.
type fileConfig struct {
	DatabaseURL      string `yaml:"database_url"`
	ServerPort       string `yaml:"server_port"`
	BaseURL          string `yaml:"base_url"`
	FrontendURL      string `yaml:"frontend_url"`
	AIProvider       string `yaml:"ai_provider"`
	AIModel          string `yaml:"ai_model"`
	AIBaseURL        string `yaml:"ai_base_url"`
	OIDCIssuer       string `yaml:"oidc_issuer"`
	OIDCJWKSURL      string `yaml:"oidc_jwks_url"`
	OIDCClientID     string `yaml:"oidc_client_id"`
	OIDCRedirectURI  string `yaml:"oidc_redirect_uri"`
	RedisURL         string `yaml:"redis_url"`
	RateLimit        string `yaml:"rate_limit"`
	RabbitMQURL      string `yaml:"rabbitmq_url"`
	RabbitMQPrefetch int    `yaml:"rabbitmq_prefetch"`
}

// Load loads configuration from the optional CONFIG_FILE YAML file and
// environment variables. Environment variables override file values.
func Load() (*Config, error) {
	var fc fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator config
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", fc.DatabaseURL),
		ServerPort:       getEnv("SERVER_PORT", fallback(fc.ServerPort, "8080")),
		BaseURL:          getEnv("BASE_URL", fallback(fc.BaseURL, "http://localhost:8080")),
		FrontendURL:      getEnv("FRONTEND_URL", fallback(fc.FrontendURL, "http://localhost:3000")),
		OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
		AIProvider:       getEnv("AI_PROVIDER", fallback(fc.AIProvider, "openai")),
		AIModel:          getEnv("AI_MODEL", fc.AIModel),
		AIBaseURL:        getEnv("AI_BASE_URL", fc.AIBaseURL),
		EnableHSTS:       getEnvBool("ENABLE_HSTS", false),
		OIDCIssuer:       getEnv("OIDC_ISSUER", fc.OIDCIssuer),
		OIDCJWKSURL:      getEnv("OIDC_JWKS_URL", fc.OIDCJWKSURL),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", fc.OIDCClientID),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURI:  getEnv("OIDC_REDIRECT_URI", fc.OIDCRedirectURI),
		RedisURL:         getEnv("REDIS_URL", fallback(fc.RedisURL, "redis://localhost:6379/0")),
		RateLimit:        getEnv("RATE_LIMIT", fallback(fc.RateLimit, "5-S")),
		RabbitMQURL:      getEnv("RABBITMQ_URL", fc.RabbitMQURL),
		RabbitMQPrefetch: getEnvInt("RABBITMQ_PREFETCH", fallbackInt(fc.RabbitMQPrefetch, 1)),
		WorkerDebugMode:  getEnvBool("WORKER_DEBUG_MODE", false),
		ServerDebugMode:  getEnvBool("SERVER_DEBUG_MODE", false),
		OTELEnabled:      getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.OIDCIssuer == "" {
		return nil, fmt.Errorf("OIDC_ISSUER is required for request authentication")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func fallback(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

func fallbackInt(value, defaultValue int) int {
	if value != 0 {
		return value
	}
	return defaultValue
}

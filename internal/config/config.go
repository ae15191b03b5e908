// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// AuthConfig holds token issuance settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// ProviderConfig holds settings for the external species data provider.
type ProviderConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RateLimitConfig holds per-client throttling settings.
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// Config is the full process configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Provider  ProviderConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

// Load reads configuration from the environment. A .env file is honoured when
// present but never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:        envOr("SERVER_HOST", "0.0.0.0"),
			Port:        envIntOr("SERVER_PORT", 4000),
			CORSOrigins: envListOr("CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envIntOr("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: envIntOr("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  envDurationOr("TOKEN_TTL", 2*time.Hour),
		},
		Provider: ProviderConfig{
			BaseURL: envOr("POKEAPI_BASE_URL", "https://pokeapi.co/api/v2"),
			Timeout: envDurationOr("POKEAPI_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envIntOr("RATE_LIMIT_RPS", 5),
			Burst:             envIntOr("RATE_LIMIT_BURST", 10),
		},
		Logging: LoggingConfig{
			Level:  envOr("LOG_LEVEL", "info"),
			Pretty: envBoolOr("LOG_PRETTY", false),
		},
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT %d out of range", cfg.Server.Port)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envListOr(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBoolOr(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
// It is built once in main and never mutated afterwards.
type Config struct {
	Port               string
	DatabaseURL        string
	JWTSecret          string
	Production         bool
	RedisAddr          string
	RedisPassword      string
	CORSOrigins        []string
	HideInternalErrors bool
	LogLevel           string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getenv("APP_ENV", getenv("NODE_ENV", "development"))
	cfg := &Config{
		Port:               getenv("PORT", "3000"),
		DatabaseURL:        getenv("DATABASE_URL", ""),
		JWTSecret:          getenv("JWT_SECRET", ""),
		Production:         env == "production",
		RedisAddr:          getenv("REDIS_ADDR", ""),
		RedisPassword:      getenv("REDIS_PASSWORD", ""),
		CORSOrigins:        splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		HideInternalErrors: getenv("HIDE_INTERNAL_ERRORS", "false") == "true",
		LogLevel:           getenv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

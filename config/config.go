package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. It is
// loaded once at startup; nothing re-reads env vars afterwards.
type Config struct {
	Port        string
	Env         string
	LogLevel    string
	DBDriver    string
	PostgresURL string
	SQLitePath  string
	JWTSecret   string
}

// Load reads .env when present and assembles the configuration.
// JWT_SECRET has no default on purpose: the signing key must be injected.
func Load() (*Config, error) {
	// A missing .env is fine outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("APP_PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		SQLitePath:  getEnv("SQLITE_PATH", "database.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DBDriver == "postgres" && cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is required when DB_DRIVER=postgres")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Package config loads the runtime configuration from the environment.
//
// A .env file is honored when present (local development); real environment
// variables win. Every knob has a default so a bare `go run ./cmd/server`
// works out of the box.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration.
type Config struct {
	Port               string
	Env                string
	LogLevel           slog.Level
	DBPath             string
	PolicyPath         string
	CORSAllowedOrigins []string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:       getEnv("APP_PORT", "8080"),
		Env:        getEnv("APP_ENV", "development"),
		LogLevel:   parseLevel(getEnv("LOG_LEVEL", "info")),
		DBPath:     getEnv("DB_PATH", "payroll.db"),
		PolicyPath: getEnv("POLICY_PATH", "pay_policies.json"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS",
			"http://localhost:5173,http://localhost:8080")),
	}
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package config loads the application configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Session backends selectable via SESSION_BACKEND.
const (
	BackendMemory = "memory" // server-side store, hard logout, lost on restart
	BackendToken  = "token"  // signed cookie token, survives restarts, soft logout
)

// Config holds everything the server needs, resolved once at startup.
// Using a struct (instead of reading env vars all over the codebase) keeps
// configuration in one place and makes tests trivial: build the struct
// you want.
type Config struct {
	Port        int
	DBPath      string
	TemplateDir string
	StaticDir   string

	SessionSecret   string        // signs token-backend sessions; required for "token"
	SessionLifetime time.Duration // fixed maximum session age, must be > 0
	SessionBackend  string        // "memory" or "token"

	LogLevel slog.Level
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present (ignored otherwise), so
// local development doesn't need a shell full of exports.
func Load() (*Config, error) {
	// Missing .env is the normal production case, not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("PORT", 8080),
		DBPath:          getEnv("DB_PATH", "data/portal.db"),
		TemplateDir:     getEnv("TEMPLATE_DIR", "web/templates"),
		StaticDir:       getEnv("STATIC_DIR", "web/static"),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		SessionLifetime: getEnvAsDuration("SESSION_LIFETIME", 12*time.Hour),
		SessionBackend:  getEnv("SESSION_BACKEND", BackendMemory),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT must be 1-65535, got %d", c.Port)
	}
	if c.SessionLifetime <= 0 {
		return fmt.Errorf("config: SESSION_LIFETIME must be positive, got %v", c.SessionLifetime)
	}
	switch c.SessionBackend {
	case BackendMemory:
		// no secret needed, tokens are random and state is server-side
	case BackendToken:
		if len(c.SessionSecret) < 16 {
			return fmt.Errorf("config: SESSION_SECRET must be at least 16 characters for the token backend")
		}
	default:
		return fmt.Errorf("config: SESSION_BACKEND must be %q or %q, got %q",
			BackendMemory, BackendToken, c.SessionBackend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// getEnvAsDuration parses values like "30m" or "12h".
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func parseLogLevel(s string) slog.Level {
	switch s {
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

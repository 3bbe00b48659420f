package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the application configuration, read from the environment once at
// startup. A .env file is honored when present.
type Config struct {
	Environment string
	Debug       bool
	LogLevel    slog.Level
	Port        int

	// Database settings. DBType selects between "sqlite" (default) and
	// "postgres"; DatabaseURL is only consulted for postgres.
	DBType       string
	DatabasePath string
	DatabaseURL  string

	// AI coach settings.
	OpenAIKey   string
	OpenAIModel string
	AITimeout   time.Duration

	// Product settings.
	StudentName    string
	ParentPassword string
}

// Load reads configuration from the environment.
func Load() *Config {
	// Ignore the error: a missing .env file is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		Debug:          getBool("DEBUG", false),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Port:           getInt("PORT", 8080),
		DBType:         getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DATABASE_PATH", "data/tunamentor.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AITimeout:      getDuration("AI_TIMEOUT", 30*time.Second),
		StudentName:    getEnv("STUDENT_NAME", "tuna"),
		ParentPassword: getEnv("PARENT_PASSWORD", "ebeveyn2026"),
	}

	return cfg
}

// Validate returns configuration problems. In production any returned problem
// is fatal; in development the caller may log them and continue with degraded
// features.
func (c *Config) Validate() []string {
	var errs []string

	if c.OpenAIKey == "" {
		errs = append(errs, "OPENAI_API_KEY is not set; AI coach will use canned fallbacks only")
	}
	if c.DBType == "postgres" && c.DatabaseURL == "" {
		errs = append(errs, "DB_TYPE=postgres requires DATABASE_URL")
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid PORT: %d", c.Port))
	}

	return errs
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return strings.EqualFold(v, "true") || v == "1"
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

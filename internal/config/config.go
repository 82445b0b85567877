package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "supersecret"

// Config keeps runtime settings for the server.
type Config struct {
	Port           int
	Environment    string
	LogLevel       string
	DatabaseDriver string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	CookieSecure   bool
	CORSOrigins    []string
	AuthRatePerMin int
	AuthRateBurst  int
	StatsInterval  time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory, when present, seeds variables that
// are not already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := Config{
		Environment:    strings.ToLower(get("APP_ENV")),
		LogLevel:       strings.ToLower(get("LOG_LEVEL")),
		DatabaseDriver: strings.ToLower(get("DATABASE_DRIVER")),
		DatabaseURL:    get("DATABASE_URL"),
		JWTSecret:      get("JWT_SECRET"),
		CORSOrigins:    splitList(get("CORS_ORIGINS")),
	}

	var err error
	if cfg.Port, err = parseInt(get("PORT"), 4000); err != nil {
		return cfg, fmt.Errorf("PORT: %w", err)
	}
	ttlHours, err := parseInt(get("TOKEN_TTL_HOURS"), 7*24)
	if err != nil {
		return cfg, fmt.Errorf("TOKEN_TTL_HOURS: %w", err)
	}
	cfg.TokenTTL = time.Duration(ttlHours) * time.Hour
	if cfg.CookieSecure, err = parseBool(get("COOKIE_SECURE")); err != nil {
		return cfg, fmt.Errorf("COOKIE_SECURE: %w", err)
	}
	if cfg.AuthRatePerMin, err = parseInt(get("AUTH_RATE_PER_MIN"), 30); err != nil {
		return cfg, fmt.Errorf("AUTH_RATE_PER_MIN: %w", err)
	}
	if cfg.AuthRateBurst, err = parseInt(get("AUTH_RATE_BURST"), 10); err != nil {
		return cfg, fmt.Errorf("AUTH_RATE_BURST: %w", err)
	}

	statsSeconds, err := parseInt(get("STATS_INTERVAL_SECONDS"), 60)
	if err != nil {
		return cfg, fmt.Errorf("STATS_INTERVAL_SECONDS: %w", err)
	}
	cfg.StatsInterval = time.Duration(statsSeconds) * time.Second

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = "sqlite"
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseDriver == "sqlite" {
		cfg.DatabaseURL = "todo_tracker.db"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return cfg, fmt.Errorf("DATABASE_DRIVER %q is not supported (sqlite, postgres)", cfg.DatabaseDriver)
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required for %s", cfg.DatabaseDriver)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return cfg, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDevSecret reports whether the built-in development JWT secret is active.
func (c Config) UsesDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func parseInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

func parseBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

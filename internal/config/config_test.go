package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "todo_tracker.db", cfg.DatabaseURL)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.UsesDevSecret())
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, ":4000", cfg.Addr())
	assert.Equal(t, time.Minute, cfg.StatsInterval)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"PORT":                   " 8080 ",
		"DATABASE_DRIVER":        "postgres",
		"DATABASE_URL":           "postgres://localhost/todos",
		"JWT_SECRET":             "s3cret",
		"TOKEN_TTL_HOURS":        "1",
		"COOKIE_SECURE":          "true",
		"CORS_ORIGINS":           "https://a.example, https://b.example,,",
		"STATS_INTERVAL_SECONDS": "5",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.UsesDevSecret())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.StatsInterval)
}

func TestFromLookup_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad port":          {"PORT": "abc"},
		"negative ttl":      {"TOKEN_TTL_HOURS": "-1"},
		"unknown driver":    {"DATABASE_DRIVER": "mysql"},
		"postgres no dsn":   {"DATABASE_DRIVER": "postgres"},
		"prod no secret":    {"APP_ENV": "production"},
		"bad cookie secure": {"COOKIE_SECURE": "maybe"},
		"zero stats":        {"STATS_INTERVAL_SECONDS": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(env))
			assert.Error(t, err)
		})
	}
}

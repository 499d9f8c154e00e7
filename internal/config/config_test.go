package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "data.db", cfg.DatabaseDSN)
	assert.Equal(t, "memory", cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.EqualValues(t, 4, cfg.PasswordHashConcurrency)
	assert.False(t, cfg.TwitchEnabled())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://localhost/bingo?sslmode=disable")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("TWITCH_CLIENT_ID", "id")
	t.Setenv("TWITCH_CLIENT_SECRET", "secret")
	t.Setenv("TWITCH_REDIRECT_URL", "http://localhost:3000/oauth/callback")

	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.TwitchEnabled())
}

func TestParseRejectsUnknownBackends(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")
	_, err := parse()
	require.Error(t, err)

	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SESSION_BACKEND", "memcached")
	_, err = parse()
	require.Error(t, err)
}

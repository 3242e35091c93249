package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredSecrets(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "etudify", cfg.DatabaseName)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.False(t, cfg.CookieSecure)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	t.Setenv("ACCESS_TOKEN_TTL", "1m")
	t.Setenv("REFRESH_TOKEN_TTL", "24h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("COOKIE_DOMAIN", "example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "example.com", cfg.CookieDomain)
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_EqualSecretsRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "same-secret")
	t.Setenv("JWT_REFRESH_SECRET", "same-secret")

	_, err := Load()
	assert.Error(t, err)
}

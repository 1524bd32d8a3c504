package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 10*time.Minute, cfg.LocationTokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.LocationRefreshTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,,")
	t.Setenv("ANY_ORIGIN", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
	assert.True(t, cfg.AnyOrigin)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_RejectsNonPositiveTTL(t *testing.T) {
	cfg := &Config{
		JWTSecret:          "x",
		JWTExpiresIn:       time.Hour,
		LocationTokenTTL:   0,
		LocationRefreshTTL: time.Minute,
		BcryptCost:         10,
	}
	assert.Error(t, cfg.Validate())
}

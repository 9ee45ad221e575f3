package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRATION_TIME", "")

	cfg := Load()
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, DefaultJWTExpiry, cfg.JWTExpiry)
	assert.NotEmpty(t, cfg.JWTSigningKey)
}

func TestLoadSecretFallback(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "")
	t.Setenv("JWT_SECRET", "legacy-secret")

	cfg := Load()
	assert.Equal(t, "legacy-secret", cfg.JWTSigningKey)
}

func TestLoadExpiryOverride(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_TIME", "12h")

	cfg := Load()
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiry)
}

func TestLoadBadExpiryIgnored(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_TIME", "1 week")

	cfg := Load()
	assert.Equal(t, DefaultJWTExpiry, cfg.JWTExpiry)
}

package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything main needs to wire the application. It is
// built once at startup and passed down explicitly; nothing reads the
// environment after Load returns.
type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSigningKey string
	JWTExpiry     time.Duration
	LogLevel      string
}

// DefaultJWTExpiry matches the original one-week session lifetime.
const DefaultJWTExpiry = 7 * 24 * time.Hour

// Load reads an optional .env file, then the environment, so main
// stays lean. Missing values fall back to development defaults.
func Load() Config {
	// Best effort: a missing .env is the normal production case.
	_ = godotenv.Load()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":3000"
	}

	signingKey := os.Getenv("JWT_ACCESS_TOKEN_SECRET")
	if signingKey == "" {
		signingKey = os.Getenv("JWT_SECRET")
	}
	if signingKey == "" {
		// Development default - must be overridden in production.
		signingKey = "dev-secret-key-change-in-production"
	}

	expiry := DefaultJWTExpiry
	if raw := os.Getenv("JWT_EXPIRATION_TIME"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			expiry = parsed
		}
	}

	return Config{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSigningKey: signingKey,
		JWTExpiry:     expiry,
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}
}

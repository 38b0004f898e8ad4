package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "DATABASE_URL", "REDIS_URL", "JWT_SECRET", "JWT_ISSUER", "JWT_TTL_MINUTES",
		"LOG_MODE", "MASTER_ADMIN_EMAIL", "MASTER_ADMIN_NAME", "MASTER_ADMIN_PASSWORD",
		"CORS_ORIGINS", "BODY_LIMIT_BYTES", "READ_TIMEOUT_SECONDS", "WRITE_TIMEOUT_SECONDS", "STATIC_DIR",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, "tracker", cfg.JWTIssuer)
	assert.Equal(t, 8*time.Hour, cfg.TokenTTL())
	assert.Equal(t, "Master", cfg.MasterAdminName)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, 2<<20, cfg.BodyLimit)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/db")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("MASTER_ADMIN_EMAIL", "  Boss@Example.COM ")
	t.Setenv("WRITE_TIMEOUT_SECONDS", "3")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://u:p@localhost:5432/db", cfg.DatabaseURL)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
	assert.Equal(t, "boss@example.com", cfg.MasterAdminEmail)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "abc")
	t.Setenv("BODY_LIMIT_BYTES", "-5")

	cfg := Load()

	assert.Equal(t, 480, cfg.JWTTTLMinutes)
	assert.Equal(t, 2<<20, cfg.BodyLimit)
}

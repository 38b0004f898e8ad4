package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only meant for local development.
const DefaultJWTSecret = "dev-secret-change"

type Config struct {
	Port          string
	DatabaseURL   string
	RedisURL      string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int
	LogMode       string

	MasterAdminEmail    string
	MasterAdminName     string
	MasterAdminPassword string

	CORSOrigins  string
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	StaticDir    string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "3001"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTIssuer:     getEnv("JWT_ISSUER", "tracker"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 8*60),
		LogMode:       getEnv("LOG_MODE", "dev"),

		MasterAdminEmail:    strings.ToLower(strings.TrimSpace(os.Getenv("MASTER_ADMIN_EMAIL"))),
		MasterAdminName:     getEnv("MASTER_ADMIN_NAME", "Master"),
		MasterAdminPassword: os.Getenv("MASTER_ADMIN_PASSWORD"),

		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
		BodyLimit:    getEnvInt("BODY_LIMIT_BYTES", 2<<20),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT_SECONDS", 10)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT_SECONDS", 10)) * time.Second,
		StaticDir:    os.Getenv("STATIC_DIR"),
	}
	return cfg
}

// TokenTTL is the validity window of issued session tokens.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

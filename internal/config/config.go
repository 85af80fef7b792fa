package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port               string
	BaseURL            string // Public base URL, used for QR codes
	DatabaseDriver     string // "sqlite" or "postgres"
	DatabaseURL        string
	RedisURL           string // Empty keeps sessions in memory
	SessionSecret      string // HMAC key for the session cookie
	SessionTTL         int    // Session lifetime in hours, 0 means no expiry
	CookieSecure       bool
	PasswordHasher     string // "sha256" (legacy digests) or "bcrypt"
	BcryptCost         int
	LogLevel           string
	LogPretty          bool
	CORSAllowedOrigins []string
	GinMode            string
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables or defaults")
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		DatabaseDriver:     getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:        getEnv("DATABASE_URL", "file:businesses.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"),
		RedisURL:           getEnv("REDIS_URL", ""),
		SessionSecret:      getEnv("SESSION_SECRET", ""),
		SessionTTL:         getEnvInt("SESSION_TTL_HOURS", 0),
		CookieSecure:       getEnvBool("COOKIE_SECURE", false),
		PasswordHasher:     getEnv("PASSWORD_HASHER", "sha256"),
		BcryptCost:         getEnvInt("BCRYPT_COST", 10),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPretty:          getEnvBool("LOG_PRETTY", false),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		GinMode:            getEnv("GIN_MODE", "release"),
	}

	if cfg.SessionSecret == "" {
		log.Warn().Msg("SESSION_SECRET is not set, sessions will not survive a restart")
		cfg.SessionSecret = randomSecret()
	}

	return cfg
}

func randomSecret() string {
	b := make([]byte, 32)
	// crypto/rand.Read never returns an error on supported platforms
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

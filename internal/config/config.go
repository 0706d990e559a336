package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	RedisURL       string        // Optional cache; empty disables it
	Port           string        // HTTP listen port
	JWTSecret      string        // Secret key for JWT token signing
	JWTTTL         time.Duration // Access token lifetime
	QueryTimeout   time.Duration // Upper bound for a single database call
	EnableDebug    bool          // Registers the token-inspection endpoints
	AllowedOrigins string        // CORS Access-Control-Allow-Origin value
}

// Load reads configuration from the environment once at startup. The JWT
// secret and database URL have no defaults: running without either is a
// misconfiguration, not a degraded mode.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    databaseURL,
		RedisURL:       getEnv("REDIS_URL", ""),
		Port:           getEnv("PORT", "8080"),
		JWTSecret:      secret,
		JWTTTL:         time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		QueryTimeout:   time.Duration(getEnvInt("DB_QUERY_TIMEOUT_SECONDS", 10)) * time.Second,
		EnableDebug:    getEnvBool("ENABLE_DEBUG_ENDPOINTS", false),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
	}, nil
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

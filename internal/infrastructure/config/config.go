package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogLevel     string

	// MongoDB
	MongoURI string
	MongoDB  string

	// Postgres reference data (optional; empty disables airline name
	// resolution)
	PostgresDSN string

	// Redis detail cache (optional; empty addr disables caching)
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	DetailCacheTTL time.Duration

	// Aviation schedules provider. The API key is configuration only
	// and must never be committed.
	AviationBaseURL string
	AviationAPIKey  string
	AviationTimeout time.Duration
}

// LoadConfig loads configuration from environment variables, reading
// a .env file first when one exists.
func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{
		Port:         getEnv("PORT", "5000"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "points"),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		DetailCacheTTL: time.Duration(getEnvAsInt("DETAIL_CACHE_TTL", 300)) * time.Second,

		AviationBaseURL: getEnv("AVIATION_API_BASE_URL", "https://api.aviationstack.com/v1"),
		AviationAPIKey:  getEnv("AVIATION_API_KEY", ""),
		AviationTimeout: time.Duration(getEnvAsInt("AVIATION_API_TIMEOUT", 10)) * time.Second,
	}

	if config.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_DSN must not be empty")
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

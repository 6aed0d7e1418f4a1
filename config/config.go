package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application. It is loaded once at
// startup and handed to constructors; nothing reads the environment at
// request time.
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional; rate limiting is skipped without it)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Upstream recipe source. An empty API key is not rejected here: it
	// surfaces as upstream call failures, which the list path tolerates.
	SpoonacularAPIKey  string
	SpoonacularBaseURL string

	// Image storage
	S3Bucket  string
	AWSRegion string
}

// DefaultSpoonacularBaseURL is the production endpoint of the upstream
// recipe source.
const DefaultSpoonacularBaseURL = "https://api.spoonacular.com"

// LoadConfig creates a new Config instance from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:         getenv("SERVER_PORT", "8080"),
		ServerHost:         getenv("SERVER_HOST", "0.0.0.0"),
		DBHost:             getenv("DB_HOST", "localhost"),
		DBPort:             getenv("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSSLMode:          getenv("DB_SSL_MODE", "disable"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		SpoonacularAPIKey:  os.Getenv("SPOONACULAR_API_KEY"),
		SpoonacularBaseURL: getenv("SPOONACULAR_BASE_URL", DefaultSpoonacularBaseURL),
		S3Bucket:           os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:          os.Getenv("AWS_REGION"),
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", v, err)
		}
		cfg.RedisDB = n
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// CORS configuration
	CORSOrigin string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration. When RedisAddr is empty the rate limiter
	// falls back to its process-local counter store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// DeepSeek configuration. An empty key is allowed at boot; the
	// generation endpoint short-circuits with an internal error instead.
	DeepSeekAPIKey string
	DeepSeekAPIURL string

	// S3 configuration for recipe images
	S3Bucket string
	S3Region string
}

// LoadConfig creates a new Config instance from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "3000"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "nutrichef"),
		DBPassword: getEnvOrFile("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "nutrichef"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: getEnvOrFile("REDIS_PASSWORD"),

		JWTSecret: getEnvOrFile("JWT_SECRET"),

		DeepSeekAPIKey: getEnvOrFile("DEEPSEEK_API_KEY"),
		DeepSeekAPIURL: getEnv("DEEPSEEK_API_URL", "https://api.deepseek.com/v1/chat/completions"),

		S3Bucket: os.Getenv("S3_BUCKET"),
		S3Region: getEnv("S3_REGION", "us-east-1"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable or a default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvOrFile reads a credential from KEY, falling back to the file
// named by KEY_FILE (Docker secrets style).
func getEnvOrFile(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}

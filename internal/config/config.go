package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Database; empty means the in-memory store is used.
	DatabaseURL string

	// Uploads
	UploadDir           string
	PublicUploadPath    string
	PlaceholderImageURL string
	MaxUploadBytes      int64

	// Stub auth
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		PublicUploadPath:    getEnv("PUBLIC_UPLOAD_PATH", "/uploads"),
		PlaceholderImageURL: getEnv("PLACEHOLDER_IMAGE_URL", "https://placehold.co/600x400?text=No+Image"),
		MaxUploadBytes:      getEnvInt64("MAX_UPLOAD_BYTES", 5<<20),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-not-for-production"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.PublicUploadPath == "" {
		return fmt.Errorf("PUBLIC_UPLOAD_PATH is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.Environment == "production" && c.JWTSecret == "dev-secret-not-for-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

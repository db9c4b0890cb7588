package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Logging configuration
	LogLevel string

	// Database configuration
	DatabaseURL string

	// Cluster configuration
	TargetNamespace string

	// Resources that can never be deleted through the API. Defaults to the
	// gateway's own deployment.
	ProtectedDeployments []string

	// Auth configuration
	JWTSecret       string
	TokenTTLMinutes int

	// Default admin account seeded on first run
	DefaultAdminUsername string
	DefaultAdminPassword string
	DefaultAdminEmail    string
}

// New creates a new Config instance by loading environment variables
// from .env file (if present) and OS environment.
// OS environment variables take precedence over .env file values.
// Panics if required configuration values are missing or invalid.
func New() *Config {
	// Load .env file from the working directory (silently ignore if not found)
	envPath := filepath.Join(".", ".env")
	_ = godotenv.Load(envPath)

	cfg := &Config{
		// Server configuration
		Port: getEnvOrDefault("PORT", "3001"),

		// Logging configuration
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),

		// Database configuration
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Cluster configuration
		TargetNamespace:      os.Getenv("TARGET_NAMESPACE"),
		ProtectedDeployments: splitList(getEnvOrDefault("PROTECTED_DEPLOYMENTS", "kubegate-deployment")),

		// Auth configuration
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTLMinutes: getEnvIntOrDefault("TOKEN_TTL_MINUTES", 144),

		// Default admin account
		DefaultAdminUsername: getEnvOrDefault("DEFAULT_ADMIN_USERNAME", "admin"),
		DefaultAdminPassword: os.Getenv("DEFAULT_ADMIN_PASSWORD"),
		DefaultAdminEmail:    getEnvOrDefault("DEFAULT_ADMIN_EMAIL", "admin@localhost"),
	}

	// Validate required configuration
	cfg.validate()

	return cfg
}

// validate checks that all required configuration values are present and valid
func (c *Config) validate() {
	var missing []string

	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.TargetNamespace == "" {
		missing = append(missing, "TARGET_NAMESPACE")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.DefaultAdminPassword == "" {
		missing = append(missing, "DEFAULT_ADMIN_PASSWORD")
	}

	if len(missing) > 0 {
		panic(fmt.Sprintf("Missing required configuration values: %v", missing))
	}

	// A short signing secret weakens every issued token
	if len(c.JWTSecret) < 32 {
		panic(fmt.Sprintf("JWT_SECRET must be at least 32 characters (got %d)", len(c.JWTSecret)))
	}

	if c.TokenTTLMinutes <= 0 {
		panic(fmt.Sprintf("TOKEN_TTL_MINUTES must be positive (got %d)", c.TokenTTLMinutes))
	}
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns an integer environment variable or a default value
func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		panic(fmt.Sprintf("%s must be an integer (got '%s')", key, value))
	}
	return parsed
}

// splitList splits a comma-separated value, dropping empty entries
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

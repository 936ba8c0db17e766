package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string

	// Base URL used to build public share links, e.g. https://app.finsight.io
	ShareBaseURL string

	// API key protecting pipeline endpoints (daily snapshot recording).
	// Empty disables pipeline endpoints.
	PipelineAPIKey string
}

var appConfig *Config

// Load reads configuration from the environment, with a .env file as an
// optional source for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finsight"),
		DBPassword: getEnv("DB_PASSWORD", "finsight"),
		DBName:     getEnv("DB_NAME", "finsight"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		ShareBaseURL:   getEnv("SHARE_BASE_URL", "http://localhost:8080"),
		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

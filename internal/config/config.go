// Package config reads the application settings from the environment.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the server needs.
type Config struct {
	Port string
	Env  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret        string
	JWTExpirationDur time.Duration
}

var appConfig *Config

// Load reads settings from the environment, loading .env first when one
// is present, and caches the result for Get.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: envOr("PORT", "8080"),
		Env:  envOr("ENV", "development"),

		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "hearth"),
		DBPassword: envOr("DB_PASSWORD", "hearth"),
		DBName:     envOr("DB_NAME", "hearth"),
		DBSSLMode:  envOr("DB_SSLMODE", "disable"),

		JWTSecret: envOr("JWT_SECRET", "fallback-secret-key-for-dev-only"),
	}

	// The mobile client holds a session for a long time between
	// launches, so tokens default to 30 days.
	expStr := envOr("JWT_EXPIRES_IN", "720h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 720h\n", expStr)
		expDur = 720 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the cached configuration, loading it on first use.
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

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

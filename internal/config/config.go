// Package config collects environment configuration. A configs/.env
// file is loaded when present; real environment variables win.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration.
type Config struct {
	Port      string
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string
	LogLevel  string
	LogFormat string

	// OpenAIAPIKey may be empty; the tips provider then serves its
	// local fallback list.
	OpenAIAPIKey string

	// CORSOrigin is the allowed frontend origin.
	CORSOrigin string
}

// Load reads configs/.env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load("configs/.env")

	return Config{
		Port:         getEnv("PORT", "8080"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPass:       getEnv("DB_PASSWORD", "postgres"),
		DBName:       getEnv("DB_NAME", "credibook"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "console"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "http://localhost:5173"),
	}
}

// DSN renders the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

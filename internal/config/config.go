package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Market data feed
	FeedBaseURL  string
	QuoteBaseURL string
	FeedTimeout  time.Duration

	// Portfolio valuation
	BaseCurrency string

	// Background price refresh; zero disables the scheduler.
	RefreshInterval time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "instruments"),
		DBPassword: getEnv("DB_PASSWORD", "instruments"),
		DBName:     getEnv("DB_NAME", "instruments_graph"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Market data feed
		FeedBaseURL:  getEnv("FEED_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
		QuoteBaseURL: getEnv("QUOTE_BASE_URL", "https://query1.finance.yahoo.com/v7/finance/quote"),

		BaseCurrency: getEnv("BASE_CURRENCY", "PLN"),
	}

	config.FeedTimeout = getEnvDuration("FEED_TIMEOUT", 30*time.Second)
	config.RefreshInterval = getEnvDuration("REFRESH_INTERVAL", 0)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
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

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses a duration environment variable, falling back to the
// default on absence or parse failure.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}

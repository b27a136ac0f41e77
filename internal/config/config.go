package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port           string
	Origin         string
	Environment    string
	Database       DatabaseConfig
	SweepBatchSize int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "gallerapp"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	sweepBatchSize, err := strconv.Atoi(getEnv("ALERT_SWEEP_BATCH_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALERT_SWEEP_BATCH_SIZE: %w", err)
	}
	if sweepBatchSize < 1 || sweepBatchSize > 1000 {
		return nil, fmt.Errorf("ALERT_SWEEP_BATCH_SIZE must be between 1 and 1000, got %d", sweepBatchSize)
	}

	// Return complete configuration
	return &Config{
		Port:           getEnv("PORT", "3001"),
		Origin:         getEnv("ORIGIN", "http://localhost:4200"),
		Environment:    getEnv("APP_ENV", "development"),
		Database:       dbConfig,
		SweepBatchSize: sweepBatchSize,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

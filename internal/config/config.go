package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Admin    AdminConfig
	Fund     FundConfig
	Session  SessionConfig
	Snapshot SnapshotConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AdminConfig holds the credentials the admin write path is gated behind.
// A single admin identity is assumed; there is no user database.
type AdminConfig struct {
	Username string
	Password string
}

// FundConfig holds fund-wide accounting settings.
type FundConfig struct {
	// StartDate is the first date NAV can be recorded for. The bulk NAV
	// editor exposes every day from here through today.
	StartDate time.Time

	// DefaultWithdrawFee and DefaultProfitFee are fractions (0.03 == 3%)
	// used until an admin persists different values.
	DefaultWithdrawFee float64
	DefaultProfitFee   float64
}

// SessionConfig holds admin session token settings.
type SessionConfig struct {
	// Key is a base64-encoded 32-byte fernet key. When empty a random key
	// is generated at startup, which invalidates sessions across restarts.
	Key string
	TTL time.Duration
}

// SnapshotConfig holds the valuation snapshot scheduler settings.
type SnapshotConfig struct {
	CronSpec string
	Enabled  bool
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	startDate, err := time.Parse("2006-01-02", getEnv("FUND_START_DATE", "2025-05-18"))
	if err != nil {
		return nil, fmt.Errorf("invalid FUND_START_DATE: %w", err)
	}

	withdrawFee, err := getEnvFloat("FUND_WITHDRAW_FEE", 0.03)
	if err != nil {
		return nil, fmt.Errorf("invalid FUND_WITHDRAW_FEE: %w", err)
	}

	profitFee, err := getEnvFloat("FUND_PROFIT_FEE", 0.02)
	if err != nil {
		return nil, fmt.Errorf("invalid FUND_PROFIT_FEE: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/fundbank.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "Admin"),
			Password: getEnv("ADMIN_PASSWORD", "change-me"),
		},
		Fund: FundConfig{
			StartDate:          startDate,
			DefaultWithdrawFee: withdrawFee,
			DefaultProfitFee:   profitFee,
		},
		Session: SessionConfig{
			Key: getEnv("SESSION_KEY", ""),
			TTL: sessionTTL,
		},
		Snapshot: SnapshotConfig{
			CronSpec: getEnv("SNAPSHOT_CRON", "0 5 * * *"),
			Enabled:  getEnv("SNAPSHOT_ENABLED", "true") == "true",
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvFloat gets an environment variable parsed as float64 or returns a default value
func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.ParseFloat(value, 64)
}

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Config holds PostgreSQL connection settings.
// Values are read from environment variables with sensible local defaults.
type Config struct {
	Host            string
	Port            int
	Database        string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// NewConfigFromEnv builds a Config from environment variables.
//
// Supported variables (with defaults):
//   - DB_HOST (localhost)
//   - DB_PORT (5432)
//   - DB_NAME (task_engine)
//   - DB_USER (postgres)
//   - DB_PASSWORD (empty)
//   - DB_SSLMODE (disable)
//   - DB_MAX_OPEN_CONNS (25)
//   - DB_MAX_IDLE_CONNS (5)
//   - DB_CONN_MAX_LIFETIME (300, seconds)
//   - DB_CONN_MAX_IDLE_TIME (300, seconds)
//
// Invalid numeric values fall back to defaults rather than failing.
func NewConfigFromEnv() *Config {
	return &Config{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvAsInt("DB_PORT", 5432),
		Database:        getEnv("DB_NAME", "task_engine"),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(getEnvAsInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		ConnMaxIdleTime: time.Duration(getEnvAsInt("DB_CONN_MAX_IDLE_TIME", 300)) * time.Second,
	}
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode)
}

// Connect opens a PostgreSQL connection pool, applies pool settings, and
// verifies connectivity with a ping. Returns an error if the database is
// unreachable (fail fast at startup).
func Connect(cfg *Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Health verifies the database connection is alive.
// Use this for readiness/liveness checks.
func Health(db *sql.DB) error {
	if db == nil {
		return errors.New("database unhealthy: nil connection")
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database unhealthy: %w", err)
	}
	return nil
}

// getEnv returns the environment variable value or a default when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns the environment variable parsed as int, or a default
// when unset or unparseable.
func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

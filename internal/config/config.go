// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samber/lo"
)

// Store backends accepted in STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

// DefaultCollectionID addresses the shared greetings document.
const DefaultCollectionID = "greetings-collection"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host    string
	Port    string
	Env     string // "development", "production", "testing"
	BaseURL string // public origin used in share links, e.g. https://hola.example

	// Greeting storage
	StoreBackend string // "postgres", "s3", "memory"
	CollectionID string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// S3-compatible object storage
	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3BucketPublic  string
	S3BucketPrivate string
	S3PublicURL     string

	// Greetings one client may create per minute.
	CreateRateLimit int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host:    envOrDefault("APP_HOST", "0.0.0.0"),
		Port:    envOrDefault("APP_PORT", "8080"),
		Env:     envOrDefault("APP_ENV", "development"),
		BaseURL: os.Getenv("BASE_URL"),

		StoreBackend: envOrDefault("STORE_BACKEND", BackendPostgres),
		CollectionID: envOrDefault("COLLECTION_ID", DefaultCollectionID),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "hola"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "hola"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3BucketPublic:  envOrDefault("S3_BUCKET_PUBLIC", "hola-public"),
		S3BucketPrivate: envOrDefault("S3_BUCKET_PRIVATE", "hola-private"),
		S3PublicURL:     os.Getenv("S3_PUBLIC_URL"),
	}

	var err error
	if cfg.ValkeyDB, err = envInt("VALKEY_DB", 0); err != nil {
		return nil, err
	}
	if cfg.CreateRateLimit, err = envInt("CREATE_RATE_LIMIT", 20); err != nil {
		return nil, err
	}

	if !lo.Contains([]string{BackendPostgres, BackendS3, BackendMemory}, cfg.StoreBackend) {
		return nil, fmt.Errorf("STORE_BACKEND must be one of postgres, s3, memory; got %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == BackendS3 && !cfg.S3Enabled() {
		return nil, fmt.Errorf("STORE_BACKEND=s3 requires S3_ENDPOINT and S3_ACCESS_KEY")
	}

	if cfg.Env == "production" {
		if cfg.StoreBackend == BackendPostgres && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("BASE_URL must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// S3Enabled reports whether object storage credentials are configured.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

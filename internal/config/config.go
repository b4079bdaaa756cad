// Package config provides application configuration through environment variables.
//
// APP_ENV selects one of three presets (development, production, testing). Every preset value
// can be overridden by its environment variable. The result is resolved once at startup and
// passed explicitly to the components that need it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Environment names accepted by APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

var (
	// ErrSecretKeyRequired is returned when the production preset is loaded without SECRET_KEY.
	ErrSecretKeyRequired = errors.New("SECRET_KEY environment variable must be set in production")

	// ErrUnknownEnvironment is returned when APP_ENV names no known preset.
	ErrUnknownEnvironment = errors.New("unknown environment")

	// ErrCleanupMaxAgeTooShort is returned when CLEANUP_MAX_AGE_HOURS is below MinCleanupMaxAge.
	ErrCleanupMaxAgeTooShort = errors.New("CLEANUP_MAX_AGE_HOURS must be at least 1")
)

// MinCleanupMaxAge is the smallest orphan age the sweeper may remove. Younger envelopes
// may belong to an upload that has not registered yet.
const MinCleanupMaxAge = time.Hour

// Config holds all application configuration.
type Config struct {
	// Environment is the preset name the configuration was resolved from.
	Environment string

	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the servers.
	ShutdownTimeout time.Duration

	// StorageRoot is the directory holding encrypted envelopes when StorageURL is empty.
	StorageRoot string
	// StorageURL selects a gocloud.dev/blob bucket (file:// or mem://) instead of StorageRoot.
	StorageURL string
	// MaxUploadBytes is the largest accepted plaintext upload.
	MaxUploadBytes int64
	// PasswordPolicyEnabled enforces the upload password strength policy.
	PasswordPolicyEnabled bool

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// RateLimitEnabled indicates whether per-client rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitUploadPerMin is the number of uploads allowed per minute per client.
	RateLimitUploadPerMin int
	// RateLimitDownloadPerMin is the number of downloads and verifies allowed per minute per client.
	RateLimitDownloadPerMin int
	// RateLimitGeneralPerMin is the number of API requests allowed per minute per client.
	RateLimitGeneralPerMin int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// CleanupEnabled runs the orphan sweeper alongside the server.
	CleanupEnabled bool
	// CleanupInterval is the delay between orphan sweeps.
	CleanupInterval time.Duration
	// CleanupMaxAge is the minimum age of an unreferenced envelope before it is removed.
	CleanupMaxAge time.Duration

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// SecretKey is the application secret. It is never used to encrypt artifacts.
	SecretKey string
}

// preset returns the defaults for an environment.
func preset(environment string) (*Config, error) {
	base := Config{
		Environment:             environment,
		ServerHost:              "0.0.0.0",
		ServerPort:              5000,
		ShutdownTimeout:         15 * time.Second,
		StorageRoot:             filepath.Join("storage", "encrypted"),
		MaxUploadBytes:          16 * 1024 * 1024,
		LogLevel:                "debug",
		RateLimitEnabled:        true,
		RateLimitUploadPerMin:   10,
		RateLimitDownloadPerMin: 20,
		RateLimitGeneralPerMin:  100,
		CORSEnabled:             true,
		CORSAllowOrigins:        "*",
		CleanupEnabled:          true,
		CleanupInterval:         6 * time.Hour,
		CleanupMaxAge:           24 * time.Hour,
		MetricsEnabled:          true,
		MetricsNamespace:        "examvault",
		MetricsPort:             8081,
	}

	switch environment {
	case EnvDevelopment:
		base.SecretKey = "dev-secret-key-change-in-production"
	case EnvProduction:
		base.LogLevel = "info"
		base.PasswordPolicyEnabled = true
		base.RateLimitUploadPerMin = 5
		base.RateLimitDownloadPerMin = 10
		base.RateLimitGeneralPerMin = 50
		base.CORSAllowOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	case EnvTesting:
		base.StorageRoot = filepath.Join(os.TempDir(), "examvault_test", "storage")
		base.RateLimitEnabled = false
		base.CORSEnabled = false
		base.CleanupEnabled = false
		base.MetricsEnabled = false
		base.SecretKey = "test-secret-key"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, environment)
	}

	return &base, nil
}

// Load loads configuration from environment variables and .env file.
func Load() (*Config, error) {
	// Try to load .env file recursively
	loadDotEnv()

	p, err := preset(env.GetString("APP_ENV", EnvDevelopment))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment: p.Environment,

		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", p.ServerHost),
		ServerPort: env.GetInt("SERVER_PORT", p.ServerPort),
		ShutdownTimeout: env.GetDuration(
			"SHUTDOWN_TIMEOUT_SECONDS",
			int(p.ShutdownTimeout/time.Second),
			time.Second,
		),

		// Storage
		StorageRoot:           env.GetString("STORAGE_ROOT", p.StorageRoot),
		StorageURL:            env.GetString("STORAGE_URL", p.StorageURL),
		MaxUploadBytes:        int64(env.GetInt("MAX_UPLOAD_BYTES", int(p.MaxUploadBytes))),
		PasswordPolicyEnabled: env.GetBool("PASSWORD_POLICY_ENABLED", p.PasswordPolicyEnabled),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", p.LogLevel),

		// Rate Limiting (per client IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", p.RateLimitEnabled),
		RateLimitUploadPerMin:   env.GetInt("RATE_LIMIT_UPLOAD_PER_MIN", p.RateLimitUploadPerMin),
		RateLimitDownloadPerMin: env.GetInt("RATE_LIMIT_DOWNLOAD_PER_MIN", p.RateLimitDownloadPerMin),
		RateLimitGeneralPerMin:  env.GetInt("RATE_LIMIT_GENERAL_PER_MIN", p.RateLimitGeneralPerMin),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", p.CORSEnabled),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", p.CORSAllowOrigins),

		// Orphan sweeper
		CleanupEnabled: env.GetBool("CLEANUP_ENABLED", p.CleanupEnabled),
		CleanupInterval: env.GetDuration(
			"CLEANUP_INTERVAL_HOURS",
			int(p.CleanupInterval/time.Hour),
			time.Hour,
		),
		CleanupMaxAge: env.GetDuration("CLEANUP_MAX_AGE_HOURS", int(p.CleanupMaxAge/time.Hour), time.Hour),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", p.MetricsEnabled),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", p.MetricsNamespace),
		MetricsPort:      env.GetInt("METRICS_PORT", p.MetricsPort),

		SecretKey: env.GetString("SECRET_KEY", p.SecretKey),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the invariants Load cannot express as defaults.
func (c *Config) Validate() error {
	if c.Environment == EnvProduction && c.SecretKey == "" {
		return ErrSecretKeyRequired
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.CleanupMaxAge < MinCleanupMaxAge {
		return fmt.Errorf("%w, got %s", ErrCleanupMaxAgeTooShort, c.CleanupMaxAge)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("CLEANUP_INTERVAL_HOURS must be positive, got %s", c.CleanupInterval)
	}
	return nil
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}

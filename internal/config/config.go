// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
// The env tag names the variable each field is read from and is used in
// validation errors.
type Config struct {
	// Server settings
	Host string `env:"APP_HOST"`
	Port string `env:"APP_PORT" validate:"required,numeric"`
	Env  string `env:"APP_ENV" validate:"oneof=development production testing"`

	// PostgreSQL connection
	DBHost     string `env:"DATABASE_HOST" validate:"required"`
	DBPort     string `env:"DATABASE_PORT" validate:"required,numeric"`
	DBUser     string `env:"DATABASE_USER" validate:"required"`
	DBPassword string `env:"DATABASE_PASSWORD" validate:"required"`
	DBName     string `env:"DATABASE_NAME" validate:"required"`
	DBMaxConns int    `env:"DATABASE_MAX_CONNS" validate:"min=1,max=1000"`

	// Valkey (Redis-compatible), used for rate limiting. Empty host disables it.
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT" validate:"numeric"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`
	RateLimit      int    `env:"RATE_LIMIT_PER_MINUTE" validate:"min=1"`

	// HTTP surface
	APITokenHash string `env:"API_TOKEN_HASH" validate:"omitempty,startswith=$2"`
	CORSOrigin   string `env:"CORS_ORIGIN" validate:"required"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFile  string `env:"LOG_FILE"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// LoadDotEnv reads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables, applying defaults
// where appropriate, and validates the result.
func Load() (*Config, error) {
	maxConns, err := envInt("DATABASE_MAX_CONNS", 16)
	if err != nil {
		return nil, err
	}
	rateLimit, err := envInt("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "3030"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("DATABASE_HOST", "localhost"),
		DBPort:     envOrDefault("DATABASE_PORT", "5432"),
		DBUser:     os.Getenv("DATABASE_USER"),
		DBPassword: os.Getenv("DATABASE_PASSWORD"),
		DBName:     envOrDefault("DATABASE_NAME", "postgres"),
		DBMaxConns: maxConns,

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		RateLimit:      rateLimit,

		APITokenHash: os.Getenv("API_TOKEN_HASH"),
		CORSOrigin:   envOrDefault("CORS_ORIGIN", "*"),

		LogLevel: strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		LogFile:  os.Getenv("LOG_FILE"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("DATABASE_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// describe turns validator errors into one message naming the variables.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
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

// RateLimitEnabled reports whether a Valkey host is configured.
func (c *Config) RateLimitEnabled() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt reads an integer environment variable with a fallback.
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

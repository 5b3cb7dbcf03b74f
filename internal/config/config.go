package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Poll    PollConfig
	Session SessionConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// BackendConfig points at the attendance REST backend
type BackendConfig struct {
	BaseURL    string
	Timeout    time.Duration
	AlertsPath string
}

type PollConfig struct {
	Interval      time.Duration
	ActivityLimit int
}

type SessionConfig struct {
	Secret      string
	IdleTimeout time.Duration
}

// Load reads the environment, after applying .env when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// Backend configuration
	backendTimeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}

	config.Backend = BackendConfig{
		BaseURL:    getEnv("BACKEND_BASE_URL", "http://localhost:5000"),
		Timeout:    backendTimeout,
		AlertsPath: getEnv("ALERTS_PATH", "/api/dashboard/alerts"),
	}

	// Polling configuration
	pollInterval, err := time.ParseDuration(getEnv("POLL_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
	}
	activityLimit, err := strconv.Atoi(getEnv("ACTIVITY_LIMIT", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACTIVITY_LIMIT: %w", err)
	}

	config.Poll = PollConfig{
		Interval:      pollInterval,
		ActivityLimit: activityLimit,
	}

	// Session configuration
	idleTimeout, err := time.ParseDuration(getEnv("SESSION_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT: %w", err)
	}

	config.Session = SessionConfig{
		Secret:      getEnv("SESSION_SECRET", ""),
		IdleTimeout: idleTimeout,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_BASE_URL must be an absolute URL")
	}
	if !strings.HasPrefix(c.Backend.AlertsPath, "/") {
		return fmt.Errorf("ALERTS_PATH must start with /")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if c.Poll.ActivityLimit <= 0 {
		return fmt.Errorf("ACTIVITY_LIMIT must be positive")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET is required and must be at least 32 bytes")
	}
	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

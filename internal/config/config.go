package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ytdl-ng/ytdl-web/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port              string
	LogLevel          string
	LogFormat         string
	Tool              string
	ToolArgs          []string
	WorkDir           string
	DefaultProfile    string
	TokenServerCmd    string
	TokenServerScript string
	TokenServerURL    string
	DBPath            string
	ProfileCacheTTL   time.Duration
	BroadcastInterval time.Duration

	// Warnings lists settings that were replaced by defaults while loading.
	Warnings []string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	cfg := &Config{
		Port:              getEnv("YTDL_PORT", constants.DefaultPort),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		Tool:              getEnv("YTDL_TOOL", constants.DefaultTool),
		ToolArgs:          strings.Fields(getEnv("YTDL_TOOL_ARGS", constants.DefaultToolArgs)),
		WorkDir:           getEnv("YTDL_WORK_DIR", constants.DefaultWorkDir),
		DefaultProfile:    getEnv("YTDL_DEFAULT_PROFILE", constants.DefaultProfile),
		TokenServerCmd:    getEnv("YTDL_TOKEN_SERVER_CMD", constants.DefaultTokenServerCmd),
		TokenServerScript: getEnv("YTDL_TOKEN_SERVER_SCRIPT", constants.DefaultTokenServerScript),
		TokenServerURL:    getEnv("YTDL_TOKEN_SERVER_URL", constants.DefaultTokenServerURL),
		DBPath:            getEnv("DB_PATH", constants.DefaultDBPath),
		ProfileCacheTTL:   getDuration("PROFILE_CACHE_TTL", constants.DefaultProfileCacheTTL),
		BroadcastInterval: getDuration("BROADCAST_INTERVAL", constants.DefaultBroadcastInterval),
	}

	// An unusable port falls back to the default; only failing to bind is fatal.
	if !validPort(cfg.Port) {
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("YTDL_PORT %q is not a valid port, using %s", cfg.Port, constants.DefaultPort))
		cfg.Port = constants.DefaultPort
	}

	return cfg
}

func validPort(s string) bool {
	port, err := strconv.Atoi(s)
	return err == nil && port >= 1 && port <= 65535
}

// Addr returns the listen address, bound to all interfaces.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	// Validate Port
	if c.Port == "" {
		errors = append(errors, "YTDL_PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("YTDL_PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("YTDL_PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.Tool == "" {
		errors = append(errors, "YTDL_TOOL cannot be empty")
	}

	if c.WorkDir == "" {
		errors = append(errors, "YTDL_WORK_DIR cannot be empty")
	}

	if strings.TrimSpace(c.DefaultProfile) == "" {
		errors = append(errors, "YTDL_DEFAULT_PROFILE cannot be empty")
	}

	if c.TokenServerCmd == "" {
		errors = append(errors, "YTDL_TOKEN_SERVER_CMD cannot be empty")
	}

	// Validate TokenServerURL
	if c.TokenServerURL != "" {
		if _, err := url.ParseRequestURI(c.TokenServerURL); err != nil {
			errors = append(errors, fmt.Sprintf("YTDL_TOKEN_SERVER_URL is not a valid URL: %s", c.TokenServerURL))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	if c.ProfileCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("PROFILE_CACHE_TTL cannot be negative, got: %s", c.ProfileCacheTTL))
	}

	if c.BroadcastInterval <= 0 {
		errors = append(errors, fmt.Sprintf("BROADCAST_INTERVAL must be positive, got: %s", c.BroadcastInterval))
	}

	// Validate LogLevel
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	// Validate LogFormat
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getDuration parses a duration variable. Unparseable values yield -1 so
// Validate reports them instead of silently using the default.
func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return -1
	}
	return d
}

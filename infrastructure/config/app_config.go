package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"dochub/logging"
)

// AppConfig holds application-wide system configuration.
// This is infrastructure configuration, not user browsing preferences.
type AppConfig struct {
	HTTPAddr    string
	HTTPLogPath string
	Graph       *GraphConfig
	Logging     *logging.Config
}

// GraphConfig holds the remote document-graph API configuration.
type GraphConfig struct {
	BaseURL        string
	AccessToken    string
	SitePath       string
	PageSize       int
	RequestTimeout time.Duration
	RatePerSecond  float64
	RateBurst      int
	CanEditLabels  bool
}

// LoadAppConfigFromEnv loads complete application configuration from environment variables.
func LoadAppConfigFromEnv() *AppConfig {
	return &AppConfig{
		HTTPAddr:    getEnvWithDefault("HTTP_ADDR", ":8080"),
		HTTPLogPath: getEnvWithDefault("HTTP_LOG_PATH", ""),
		Graph:       LoadGraphConfigFromEnv(),
		Logging:     LoadLoggingConfigFromEnv(),
	}
}

// LoadGraphConfigFromEnv loads document-graph API configuration from environment variables.
func LoadGraphConfigFromEnv() *GraphConfig {
	return &GraphConfig{
		BaseURL:        getEnvWithDefault("GRAPH_BASE_URL", "https://graph.microsoft.com/v1.0"),
		AccessToken:    getEnvWithDefault("GRAPH_ACCESS_TOKEN", ""),
		SitePath:       getEnvWithDefault("GRAPH_SITE_PATH", ""),
		PageSize:       getEnvIntWithDefault("GRAPH_PAGE_SIZE", 50),
		RequestTimeout: getEnvDurationWithDefault("GRAPH_REQUEST_TIMEOUT", 30*time.Second),
		RatePerSecond:  getEnvFloatWithDefault("GRAPH_RATE_PER_SECOND", 10),
		RateBurst:      getEnvIntWithDefault("GRAPH_RATE_BURST", 20),
		CanEditLabels:  getEnvBoolWithDefault("GRAPH_CAN_EDIT_LABELS", false),
	}
}

// LoadLoggingConfigFromEnv loads logging configuration from environment variables.
func LoadLoggingConfigFromEnv() *logging.Config {
	return &logging.Config{
		Level:  getEnvWithDefault("LOG_LEVEL", "info"),
		Format: getEnvWithDefault("LOG_FORMAT", "json"),
		Output: getEnvWithDefault("LOG_OUTPUT", "stdout"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(v string, def bool) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// Helper functions for environment variable parsing.
func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return parseBool(value, defaultValue)
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

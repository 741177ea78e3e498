package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host           string
	Port           string
	RequestTimeout time.Duration
	MaxUploadSize  int64

	// Description generation
	UseLocalLLM           bool
	FallbackOnRemoteError bool
	TopColors             int

	// Remote provider (OpenAI)
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	RemoteTimeout time.Duration
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// HasRemoteCredentials reports whether the remote provider can be called
func (c *Config) HasRemoteCredentials() bool {
	return strings.TrimSpace(c.OpenAIAPIKey) != ""
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:                  getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                  getEnvOrDefault("PORT", "8080"),
		RequestTimeout:        parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		MaxUploadSize:         parseIntOrDefault("MAX_UPLOAD_SIZE", 10*1024*1024), // 10MB
		UseLocalLLM:           parseBoolOrDefault("USE_LOCAL_LLM", true),
		FallbackOnRemoteError: parseBoolOrDefault("FALLBACK_ON_REMOTE_ERROR", false),
		TopColors:             int(parseIntOrDefault("TOP_COLORS", 5)),
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:           getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:         os.Getenv("OPENAI_BASE_URL"),
		RemoteTimeout:         parseDurationOrDefault("REMOTE_TIMEOUT", 20*time.Second),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be > 0 (got %d)", cfg.MaxUploadSize)
	}
	if cfg.TopColors <= 0 {
		return nil, fmt.Errorf("TOP_COLORS must be > 0 (got %d)", cfg.TopColors)
	}
	if cfg.RequestTimeout <= 0 || cfg.RemoteTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, remote=%s)",
			cfg.RequestTimeout, cfg.RemoteTimeout)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

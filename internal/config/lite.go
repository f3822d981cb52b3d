// Package config provides configuration management for the servers.
// This file contains the environment-only configuration used by the MCP stdio server.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/ctd-ild-mcp-server/internal/domain"
)

// LiteConfig is a simplified configuration read from environment variables only.
type LiteConfig struct {
	// Transport settings
	Transport string // Transport type: stdio

	// Logging
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: json, text

	// Narrative endpoint, disabled unless a URL is set
	NarrativeURL       string
	NarrativeAPIKey    string
	NarrativeModel     string
	NarrativeTimeout   time.Duration
	NarrativeRateLimit int
}

// DefaultLiteConfig returns a configuration with sensible defaults.
func DefaultLiteConfig() *LiteConfig {
	return &LiteConfig{
		Transport:          "stdio",
		LogLevel:           "info",
		LogFormat:          "json",
		NarrativeTimeout:   60 * time.Second,
		NarrativeRateLimit: 1,
	}
}

// LoadLiteConfig loads configuration from environment variables.
// Falls back to defaults if not set.
func LoadLiteConfig() *LiteConfig {
	cfg := DefaultLiteConfig()

	if v := os.Getenv("CTD_ILD_TRANSPORT"); v != "" {
		cfg.Transport = v
	}

	if v := os.Getenv("CTD_ILD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CTD_ILD_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	cfg.NarrativeURL = os.Getenv("CTD_ILD_NARRATIVE_URL")
	cfg.NarrativeAPIKey = os.Getenv("CTD_ILD_NARRATIVE_API_KEY")
	cfg.NarrativeModel = os.Getenv("CTD_ILD_NARRATIVE_MODEL")
	if v := os.Getenv("CTD_ILD_NARRATIVE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.NarrativeTimeout = d
		}
	}
	if v := os.Getenv("CTD_ILD_NARRATIVE_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.NarrativeRateLimit = n
		}
	}

	return cfg
}

// Narrative returns the narrative client settings.
func (c *LiteConfig) Narrative() domain.NarrativeConfig {
	return domain.NarrativeConfig{
		Enabled:   c.NarrativeURL != "",
		BaseURL:   c.NarrativeURL,
		APIKey:    c.NarrativeAPIKey,
		Model:     c.NarrativeModel,
		Timeout:   c.NarrativeTimeout,
		RateLimit: c.NarrativeRateLimit,
	}
}

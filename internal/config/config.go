// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment
// variables and validates security-sensitive values.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinSessionSecretLength is the minimum required length for the session
// secret. 32 bytes covers AES-256 key material.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIBaseURL    string `env:"NEWSDESK_API_BASE_URL,required"` // Publishing backend REST API
	SessionSecret string `env:"NEWSDESK_SESSION_SECRET,required"`
	DBPath        string `env:"NEWSDESK_DB_PATH" envDefault:"./data/newsdesk.db"`
	ServerHost    string `env:"NEWSDESK_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"NEWSDESK_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"NEWSDESK_ENV" envDefault:"development"`
	LogLevel      string `env:"NEWSDESK_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"NEWSDESK_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"NEWSDESK_CACHE_PREFIX" envDefault:"ndsk:"`   // Redis key prefix
	CacheTTL     int    `env:"NEWSDESK_CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"NEWSDESK_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Upstream request timeout in seconds
	APITimeout int `env:"NEWSDESK_API_TIMEOUT" envDefault:"30"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("NEWSDESK_API_BASE_URL must be an absolute URL, got %q", cfg.APIBaseURL)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("NEWSDESK_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("NEWSDESK_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	return cfg, nil
}

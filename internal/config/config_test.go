// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
)

const testSecret = "0123456789abcdefghijABCDEFGHIJ!?"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NEWSDESK_API_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("NEWSDESK_SESSION_SECRET", testSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIBaseURL != "https://api.example.com/v1" {
		t.Errorf("APIBaseURL = %q, want trailing slash trimmed", cfg.APIBaseURL)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() should be false without NEWSDESK_REDIS_URL")
	}
}

func TestLoadMissingAPIBaseURL(t *testing.T) {
	t.Setenv("NEWSDESK_API_BASE_URL", "")
	t.Setenv("NEWSDESK_SESSION_SECRET", testSecret)

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without API base URL")
	}
}

func TestLoadRelativeAPIBaseURL(t *testing.T) {
	t.Setenv("NEWSDESK_API_BASE_URL", "/api/v1")
	t.Setenv("NEWSDESK_SESSION_SECRET", testSecret)

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a relative API base URL")
	}
}

func TestLoadShortSessionSecret(t *testing.T) {
	t.Setenv("NEWSDESK_API_BASE_URL", "https://api.example.com")
	t.Setenv("NEWSDESK_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should reject a short session secret")
	}
	if !strings.Contains(err.Error(), "NEWSDESK_SESSION_SECRET") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestLoadWeakSessionSecret(t *testing.T) {
	t.Setenv("NEWSDESK_API_BASE_URL", "https://api.example.com")
	t.Setenv("NEWSDESK_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a known weak secret")
	}
}

func TestUseRedisCache(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NEWSDESK_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() should be true when NEWSDESK_REDIS_URL is set")
	}
}

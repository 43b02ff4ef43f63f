// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveWithHeaders(cfg SecurityHeadersConfig, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	SecurityHeaders(cfg)(okHandler()).ServeHTTP(rec, r)
	return rec
}

func TestSecurityHeadersDefaults(t *testing.T) {
	rec := serveWithHeaders(DefaultSecurityHeadersConfig(false), "/")

	checks := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "SAMEORIGIN",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, want := range checks {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "default-src 'self'") {
		t.Errorf("CSP missing default-src: %q", csp)
	}
	if !strings.Contains(csp, "frame-ancestors 'none'") {
		t.Errorf("production CSP should deny framing: %q", csp)
	}
}

func TestSecurityHeadersHSTSProductionOnly(t *testing.T) {
	prod := serveWithHeaders(DefaultSecurityHeadersConfig(false), "/")
	hsts := prod.Header().Get("Strict-Transport-Security")
	if !strings.Contains(hsts, "max-age=31536000") || !strings.Contains(hsts, "includeSubDomains") {
		t.Errorf("production HSTS = %q", hsts)
	}

	dev := serveWithHeaders(DefaultSecurityHeadersConfig(true), "/")
	if dev.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must be disabled in development")
	}
}

func TestSecurityHeadersExcludePaths(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ExcludePaths = []string{"/healthz"}

	rec := serveWithHeaders(cfg, "/healthz")
	if rec.Header().Get("Content-Security-Policy") != "" {
		t.Error("excluded path should skip security headers")
	}
}

func TestBuildCSPOrdering(t *testing.T) {
	csp := buildCSP(map[string]string{
		"script-src":  "'self'",
		"default-src": "'self'",
	})
	if !strings.HasPrefix(csp, "default-src") {
		t.Errorf("default-src should come first: %q", csp)
	}
}

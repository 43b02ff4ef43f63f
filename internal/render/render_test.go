// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/web"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates fs: %v", err)
	}
	r, err := New(Config{TemplatesFS: templatesFS, IsDev: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestAllEmbeddedTemplatesParse(t *testing.T) {
	r := testRenderer(t)

	// Every page the handlers render must have been parsed.
	for _, name := range []string{
		"auth/login",
		"admin/dashboard",
		"admin/articles", "admin/article_form", "admin/articles_pending",
		"admin/categories", "admin/category_form",
		"admin/ads", "admin/ad_form",
		"admin/users", "admin/user_form",
		"admin/ai_articles", "admin/ai_trending", "admin/ai_article", "admin/ai_article_form",
		"admin/timesavers", "admin/timesaver_form",
		"admin/analytics", "admin/profile", "admin/events",
	} {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestMarkdownFuncSanitizes(t *testing.T) {
	r := testRenderer(t)
	markdown := r.TemplateFuncs()["markdown"].(func(string) template.HTML)

	got := string(markdown("# Heading\n\n<script>alert(1)</script>ok"))
	if !strings.Contains(got, "<h1>") {
		t.Errorf("markdown not rendered: %q", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("script tag survived sanitization: %q", got)
	}
}

func TestTemplateFuncs(t *testing.T) {
	r := testRenderer(t)
	funcs := r.TemplateFuncs()

	truncate := funcs["truncate"].(func(string, int) string)
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("ab", 3); got != "ab" {
		t.Errorf("truncate short = %q", got)
	}

	roleLabel := funcs["roleLabel"].(func(model.Role) string)
	if got := roleLabel(model.RoleAdManager); got != "Ad Manager" {
		t.Errorf("roleLabel = %q", got)
	}
	if got := roleLabel(model.RoleUnknown); got != "Unknown" {
		t.Errorf("roleLabel unknown = %q", got)
	}

	formatDatePtr := funcs["formatDatePtr"].(func(*time.Time) string)
	if got := formatDatePtr(nil); got != "N/A" {
		t.Errorf("formatDatePtr nil = %q", got)
	}
}

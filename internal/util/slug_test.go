// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Breaking: Markets Rally!", "breaking-markets-rally"},
		{"Café au lait", "cafe-au-lait"},
		{"  spaces  everywhere  ", "spaces-everywhere"},
		{"already-a-slug", "already-a-slug"},
		{"ALL CAPS HEADLINE", "all-caps-headline"},
		{"100% renewable", "100-renewable"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := strings.Repeat("headline ", 30)
	got := Slugify(long)
	if len(got) > maxSlugLen {
		t.Errorf("slug length %d exceeds %d", len(got), maxSlugLen)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("truncated slug ends with hyphen: %q", got)
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "abc-def", "news-2026", "x1"}
	invalid := []string{"", "-leading", "trailing-", "double--hyphen", "Upper", "with space", "ünicode"}

	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

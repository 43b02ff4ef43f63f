// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package newsapi

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTagListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want TagList
	}{
		{"array", `["go","news"]`, TagList{"go", "news"}},
		{"comma string", `"go, news , tech"`, TagList{"go", "news", "tech"}},
		{"array with empties", `[" go ","","news"]`, TagList{"go", "news"}},
		{"string with empties", `"go,,news,"`, TagList{"go", "news"}},
		{"null", `null`, TagList{}},
		{"empty string", `""`, TagList{}},
		{"number", `17`, TagList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TagList
			if err := json.Unmarshal([]byte(tt.body), &got); err != nil {
				t.Fatalf("Unmarshal(%q): %v", tt.body, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestSerializeTags(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"go", "news"}, "go,news"},
		{[]string{" go ", "", "news "}, "go,news"},
		{[]string{}, ""},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := SerializeTags(tt.in); got != tt.want {
			t.Errorf("SerializeTags(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTagRoundTripIdempotent(t *testing.T) {
	// normalize → serialize → parse must be a fixed point for both
	// array and comma-string origins.
	inputs := [][]string{
		{"go", "news", "tech"},
		{" spaced ", "tags"},
		{"one"},
		{},
	}
	for _, in := range inputs {
		first := NormalizeTags(in...)
		second := ParseTags(SerializeTags(first))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("round trip changed %v: %v != %v", in, first, second)
		}
		third := ParseTags(SerializeTags(second))
		if !reflect.DeepEqual(second, third) {
			t.Errorf("second round trip changed %v: %v != %v", in, second, third)
		}
	}

	for _, s := range []string{"a,b,c", " a , b ", "", "a,,b"} {
		first := ParseTags(s)
		second := ParseTags(SerializeTags(first))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("round trip changed %q: %v != %v", s, first, second)
		}
	}
}

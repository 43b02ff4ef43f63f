// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// idParam parses the {id} URL parameter. Returns 0 and false when the
// parameter is missing or not a positive integer.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pageParam parses the ?page query parameter, defaulting to 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// formInt64 parses an int64 form value, returning 0 when absent or invalid.
func formInt64(r *http.Request, key string) int64 {
	v, err := strconv.ParseInt(r.FormValue(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// formFloat parses a float form value, returning 0 when absent or invalid.
func formFloat(r *http.Request, key string) float64 {
	v, err := strconv.ParseFloat(r.FormValue(key), 64)
	if err != nil {
		return 0
	}
	return v
}

// formBool reports whether a checkbox-style form value is set.
func formBool(r *http.Request, key string) bool {
	switch r.FormValue(key) {
	case "on", "true", "1":
		return true
	}
	return false
}

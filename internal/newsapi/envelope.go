// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package newsapi

import (
	"encoding/json"
	"log/slog"

	"github.com/olegiv/newsdesk-go/internal/model"
)

// The backend wraps payloads in one of three envelope shapes,
// inconsistently across endpoints:
//
//	{ "success": true, "data": { "<name>": X, "pagination": {...} } }
//	{ "success": true, "data": X }
//	X
//
// where X is a single object on detail endpoints and a list (named
// array, bare array, or {items, pagination}) on list endpoints. The
// extractors below try those shapes in that fixed order; the first one
// that yields a payload wins. A shape the chain cannot recognize is
// logged and treated as an empty result, never as an error: only
// genuine transport failures reach page handlers as errors.

// jsonObject is a lazily-decoded JSON object.
type jsonObject map[string]json.RawMessage

// asObject decodes raw as a JSON object, returning nil when raw is
// absent or not an object.
func asObject(raw json.RawMessage) jsonObject {
	if len(raw) == 0 {
		return nil
	}
	var obj jsonObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

// isArray reports whether raw is a JSON array.
func isArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// extractListRaw walks the fallback chain and returns the raw list
// payload and its adjacent pagination block, if any.
func extractListRaw(body []byte, name string) (items, pagination json.RawMessage, ok bool) {
	if len(body) == 0 {
		return nil, nil, false
	}

	// Flat bare array.
	if isArray(body) {
		return body, nil, true
	}

	root := asObject(body)
	if root == nil {
		return nil, nil, false
	}

	// Walk into data, then data.data, preferring the deepest envelope.
	scopes := []jsonObject{}
	if data, exists := root["data"]; exists {
		if isArray(data) {
			return data, root["pagination"], true
		}
		if inner := asObject(data); inner != nil {
			if deep, exists := inner["data"]; exists {
				if isArray(deep) {
					return deep, inner["pagination"], true
				}
				if deepObj := asObject(deep); deepObj != nil {
					scopes = append(scopes, deepObj)
				}
			}
			scopes = append(scopes, inner)
		}
	}
	scopes = append(scopes, root)

	for _, scope := range scopes {
		for _, key := range []string{name, "items"} {
			if list, exists := scope[key]; exists {
				return list, scope["pagination"], true
			}
		}
	}
	return nil, nil, false
}

// wirePagination tolerates the field-name variants the backend emits.
type wirePagination struct {
	CurrentPage *int  `json:"currentPage"`
	Page        *int  `json:"page"`
	TotalPages  *int  `json:"totalPages"`
	TotalItems  *int  `json:"totalItems"`
	Total       *int  `json:"total"`
	HasNext     *bool `json:"hasNext"`
	HasPrevious *bool `json:"hasPrevious"`
	HasPrev     *bool `json:"hasPrev"`
}

// normalizePagination reduces a raw pagination block to the canonical
// form, deriving anything missing from requestedPage and itemCount.
func normalizePagination(raw json.RawMessage, requestedPage, itemCount int) model.Pagination {
	if requestedPage < 1 {
		requestedPage = 1
	}

	var wire wirePagination
	if len(raw) > 0 {
		// A malformed block degrades to the synthesized form.
		_ = json.Unmarshal(raw, &wire)
	}

	p := model.Pagination{CurrentPage: requestedPage, TotalPages: 1, TotalItems: itemCount}

	if wire.CurrentPage != nil && *wire.CurrentPage > 0 {
		p.CurrentPage = *wire.CurrentPage
	} else if wire.Page != nil && *wire.Page > 0 {
		p.CurrentPage = *wire.Page
	}
	if wire.TotalItems != nil && *wire.TotalItems >= 0 {
		p.TotalItems = *wire.TotalItems
	} else if wire.Total != nil && *wire.Total >= 0 {
		p.TotalItems = *wire.Total
	}
	if wire.TotalPages != nil && *wire.TotalPages > 0 {
		p.TotalPages = *wire.TotalPages
	}

	if wire.HasNext != nil {
		p.HasNext = *wire.HasNext
	} else {
		p.HasNext = p.CurrentPage < p.TotalPages
	}
	switch {
	case wire.HasPrevious != nil:
		p.HasPrevious = *wire.HasPrevious
	case wire.HasPrev != nil:
		p.HasPrevious = *wire.HasPrev
	default:
		p.HasPrevious = p.CurrentPage > 1
	}

	return p
}

// decodeItems coerces a raw list payload into a slice. null decodes to
// empty and a bare single object decodes to a one-element slice.
func decodeItems[T any](raw json.RawMessage) ([]T, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}, true
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		if items == nil {
			items = []T{}
		}
		return items, true
	}

	var single T
	if err := json.Unmarshal(raw, &single); err == nil && asObject(raw) != nil {
		return []T{single}, true
	}
	return nil, false
}

// decodeList normalizes a list response body. It never fails on shape:
// an unrecognizable payload yields the canonical empty list with
// synthesized pagination and a diagnostics log entry.
func decodeList[T any](body []byte, name string, requestedPage int) model.List[T] {
	rawItems, rawPagination, ok := extractListRaw(body, name)
	if !ok {
		slog.Warn("response shape mismatch, treating as empty list",
			"category", "normalizer", "resource", name)
		return model.EmptyList[T](requestedPage)
	}

	items, ok := decodeItems[T](rawItems)
	if !ok {
		slog.Warn("list items failed to decode, treating as empty list",
			"category", "normalizer", "resource", name)
		return model.EmptyList[T](requestedPage)
	}

	return model.List[T]{
		Items:      items,
		Pagination: normalizePagination(rawPagination, requestedPage, len(items)),
	}
}

// looksLikeEnvelope reports whether obj appears to be a response
// wrapper rather than a resource.
func looksLikeEnvelope(obj jsonObject) bool {
	if _, exists := obj["data"]; exists {
		return true
	}
	if _, exists := obj["success"]; exists {
		return true
	}
	return false
}

// decodeDetail normalizes a detail response body. The chain is the
// same nested-named → singly-nested → flat order as for lists; when no
// recognizable object is found it returns nil rather than an error so
// callers can render a not-found state.
func decodeDetail[T any](body []byte, name string) *T {
	if len(body) == 0 {
		return nil
	}

	var candidates []json.RawMessage
	root := asObject(body)
	if root == nil {
		return nil
	}

	if data, exists := root["data"]; exists {
		if inner := asObject(data); inner != nil {
			if deep, exists := inner["data"]; exists {
				if deepObj := asObject(deep); deepObj != nil {
					if named, exists := deepObj[name]; exists {
						candidates = append(candidates, named)
					}
					candidates = append(candidates, deep)
				}
			}
			if named, exists := inner[name]; exists {
				candidates = append(candidates, named)
			}
			if !looksLikeEnvelope(inner) {
				candidates = append(candidates, data)
			}
		}
	}
	if named, exists := root[name]; exists {
		candidates = append(candidates, named)
	}
	if !looksLikeEnvelope(root) {
		candidates = append(candidates, json.RawMessage(body))
	}

	for _, candidate := range candidates {
		if asObject(candidate) == nil {
			continue
		}
		var out T
		if err := json.Unmarshal(candidate, &out); err == nil {
			return &out
		}
	}

	slog.Warn("detail shape mismatch, treating as not found",
		"category", "normalizer", "resource", name)
	return nil
}

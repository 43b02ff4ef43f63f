// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Pagination is the canonical pagination block attached to every
// normalized list. TotalItems is always defined and non-negative, even
// when the upstream payload omits its own pagination.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// SynthesizePagination builds a degenerate single-page pagination block
// for responses that carried no usable pagination of their own.
func SynthesizePagination(requestedPage, itemCount int) Pagination {
	if requestedPage < 1 {
		requestedPage = 1
	}
	return Pagination{
		CurrentPage: requestedPage,
		TotalPages:  1,
		TotalItems:  itemCount,
		HasNext:     false,
		HasPrevious: false,
	}
}

// List is the canonical envelope all page-level consumers rely on.
// Items is never nil: a degraded or empty response yields an empty
// slice with synthesized pagination, never a nil list.
type List[T any] struct {
	Items      []T
	Pagination Pagination
}

// EmptyList returns the canonical empty envelope for the requested page.
func EmptyList[T any](requestedPage int) List[T] {
	return List[T]{
		Items:      []T{},
		Pagination: SynthesizePagination(requestedPage, 0),
	}
}

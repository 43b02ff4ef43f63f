// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/url"

	"github.com/olegiv/newsdesk-go/internal/model"
)

// AdminPagination holds pagination data for admin templates.
type AdminPagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
	Pages       []AdminPaginationPage
	BaseURL     string
	QueryString string
}

// AdminPaginationPage represents a single page link in admin pagination.
type AdminPaginationPage struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// BuildAdminPagination creates pagination data for admin templates from
// a normalized backend pagination block.
// baseURL is the path without query string (e.g., "/articles");
// queryParams are the current query parameters to preserve (e.g., filters).
func BuildAdminPagination(p model.Pagination, baseURL string, queryParams url.Values) AdminPagination {
	totalPages := p.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	currentPage := p.CurrentPage
	if currentPage < 1 {
		currentPage = 1
	}

	pagination := AdminPagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  p.TotalItems,
		HasPrev:     p.HasPrevious,
		HasNext:     p.HasNext,
		PrevPage:    currentPage - 1,
		NextPage:    currentPage + 1,
		BaseURL:     baseURL,
	}

	// Build query string without page parameter
	if queryParams != nil {
		params := make(url.Values)
		for k, v := range queryParams {
			if k != "page" && len(v) > 0 && v[0] != "" {
				params[k] = v
			}
		}
		if len(params) > 0 {
			pagination.QueryString = params.Encode()
		}
	}

	buildURL := func(page int) string {
		if pagination.QueryString != "" {
			return fmt.Sprintf("%s?%s&page=%d", baseURL, pagination.QueryString, page)
		}
		return fmt.Sprintf("%s?page=%d", baseURL, page)
	}

	// Build page links (show max 5 pages around current with ellipsis)
	start := currentPage - 2
	end := currentPage + 2
	if start < 1 {
		start = 1
		end = 5
	}
	if end > totalPages {
		end = totalPages
		start = end - 4
		if start < 1 {
			start = 1
		}
	}

	if start > 1 {
		pagination.Pages = append(pagination.Pages, AdminPaginationPage{
			Number: 1,
			URL:    buildURL(1),
		})
		if start > 2 {
			pagination.Pages = append(pagination.Pages, AdminPaginationPage{IsEllipsis: true})
		}
	}

	for i := start; i <= end; i++ {
		pagination.Pages = append(pagination.Pages, AdminPaginationPage{
			Number:    i,
			URL:       buildURL(i),
			IsCurrent: i == currentPage,
		})
	}

	if end < totalPages {
		if end < totalPages-1 {
			pagination.Pages = append(pagination.Pages, AdminPaginationPage{IsEllipsis: true})
		}
		pagination.Pages = append(pagination.Pages, AdminPaginationPage{
			Number: totalPages,
			URL:    buildURL(totalPages),
		})
	}

	return pagination
}

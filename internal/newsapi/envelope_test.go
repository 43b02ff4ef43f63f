// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package newsapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testArticle struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestDecodeListEnvelopeShapes(t *testing.T) {
	// All three documented envelope shapes must yield identical items.
	tests := []struct {
		name string
		body string
	}{
		{
			"nested named",
			`{"success":true,"data":{"articles":[{"id":1,"title":"a"},{"id":2,"title":"b"}],"pagination":{"currentPage":1,"totalPages":1,"totalItems":2}}}`,
		},
		{
			"doubly nested named",
			`{"success":true,"data":{"data":{"articles":[{"id":1,"title":"a"},{"id":2,"title":"b"}]}}}`,
		},
		{
			"singly nested array",
			`{"success":true,"data":[{"id":1,"title":"a"},{"id":2,"title":"b"}]}`,
		},
		{
			"flat named",
			`{"articles":[{"id":1,"title":"a"},{"id":2,"title":"b"}]}`,
		},
		{
			"bare array",
			`[{"id":1,"title":"a"},{"id":2,"title":"b"}]`,
		},
		{
			"items key",
			`{"success":true,"data":{"items":[{"id":1,"title":"a"},{"id":2,"title":"b"}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := decodeList[testArticle]([]byte(tt.body), "articles", 1)
			require.Len(t, list.Items, 2)
			assert.Equal(t, int64(1), list.Items[0].ID)
			assert.Equal(t, "b", list.Items[1].Title)
		})
	}
}

func TestDecodeListPagination(t *testing.T) {
	body := `{"success":true,"data":{"articles":[{"id":1,"title":"a"}],"pagination":{"currentPage":2,"totalPages":5,"totalItems":41}}}`
	list := decodeList[testArticle]([]byte(body), "articles", 2)

	assert.Equal(t, 2, list.Pagination.CurrentPage)
	assert.Equal(t, 5, list.Pagination.TotalPages)
	assert.Equal(t, 41, list.Pagination.TotalItems)
	assert.True(t, list.Pagination.HasNext)
	assert.True(t, list.Pagination.HasPrevious)
}

func TestDecodeListPaginationVariants(t *testing.T) {
	// page/total aliases are accepted.
	body := `{"articles":[{"id":1,"title":"a"}],"pagination":{"page":3,"total":30,"totalPages":3}}`
	list := decodeList[testArticle]([]byte(body), "articles", 3)

	assert.Equal(t, 3, list.Pagination.CurrentPage)
	assert.Equal(t, 30, list.Pagination.TotalItems)
	assert.False(t, list.Pagination.HasNext)
	assert.True(t, list.Pagination.HasPrevious)
}

func TestDecodeListGarbageShapes(t *testing.T) {
	// Anything unrecognizable degrades to an empty list, never an error.
	garbage := []string{
		`{"success":true}`,
		`{"whatever":{"nope":true}}`,
		`"just a string"`,
		`42`,
		`null`,
		``,
		`{not even json`,
	}

	for _, body := range garbage {
		list := decodeList[testArticle]([]byte(body), "articles", 4)
		require.NotNil(t, list.Items, "body %q", body)
		assert.Empty(t, list.Items, "body %q", body)
		assert.Equal(t, 0, list.Pagination.TotalItems, "body %q", body)
		assert.Equal(t, 4, list.Pagination.CurrentPage, "body %q", body)
	}
}

func TestDecodeListEmptyBareArray(t *testing.T) {
	list := decodeList[testArticle]([]byte(`[]`), "articles", 1)
	require.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
	assert.Equal(t, 0, list.Pagination.TotalItems)
}

func TestDecodeListNullAndSingleObjectCoercion(t *testing.T) {
	// null list field coerces to empty.
	list := decodeList[testArticle]([]byte(`{"data":{"articles":null}}`), "articles", 1)
	require.NotNil(t, list.Items)
	assert.Empty(t, list.Items)

	// A single object where an array was expected coerces to one item.
	list = decodeList[testArticle]([]byte(`{"data":{"articles":{"id":7,"title":"solo"}}}`), "articles", 1)
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(7), list.Items[0].ID)
}

func TestDecodeListSynthesizedPagination(t *testing.T) {
	// No pagination block: synthesized from the item count.
	list := decodeList[testArticle]([]byte(`[{"id":1,"title":"a"},{"id":2,"title":"b"},{"id":3,"title":"c"}]`), "articles", 1)
	assert.Equal(t, 3, list.Pagination.TotalItems)
	assert.Equal(t, 1, list.Pagination.TotalPages)
	assert.False(t, list.Pagination.HasNext)
	assert.False(t, list.Pagination.HasPrevious)
}

func TestDecodeDetailShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"nested named", `{"success":true,"data":{"article":{"id":9,"title":"x"}}}`},
		{"doubly nested named", `{"success":true,"data":{"data":{"article":{"id":9,"title":"x"}}}}`},
		{"singly nested", `{"success":true,"data":{"id":9,"title":"x"}}`},
		{"flat named", `{"article":{"id":9,"title":"x"}}`},
		{"flat", `{"id":9,"title":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeDetail[testArticle]([]byte(tt.body), "article")
			require.NotNil(t, got)
			assert.Equal(t, int64(9), got.ID)
			assert.Equal(t, "x", got.Title)
		})
	}
}

func TestDecodeDetailUnrecognizable(t *testing.T) {
	for _, body := range []string{`{"success":false}`, `[]`, `null`, ``, `"str"`} {
		if got := decodeDetail[testArticle]([]byte(body), "article"); got != nil {
			t.Errorf("decodeDetail(%q) = %+v, want nil", body, got)
		}
	}
}

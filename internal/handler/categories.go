// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/olegiv/newsdesk-go/internal/cache"
	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/session"
	"github.com/olegiv/newsdesk-go/internal/util"
)

// CategoriesHandler handles category management routes.
type CategoriesHandler struct {
	api      *newsapi.Client
	renderer *render.Renderer
	sessions *session.Store
	cache    *cache.CategoryCache
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(api *newsapi.Client, renderer *render.Renderer, sessions *session.Store, cc *cache.CategoryCache) *CategoriesHandler {
	return &CategoriesHandler{api: api, renderer: renderer, sessions: sessions, cache: cc}
}

type categoryListData struct {
	Categories []model.Category
	Pagination AdminPagination
}

type categoryFormData struct {
	Category *model.Category
	IsEdit   bool
}

// List renders the category list.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	list, err := h.api.ListCategories(r.Context(), page)
	if err != nil && backendReadFailure(w, r, h.renderer, h.sessions, h.api, err) {
		return
	}

	data := categoryListData{
		Categories: list.Items,
		Pagination: BuildAdminPagination(list.Pagination, RouteCategories, url.Values{}),
	}
	if err := h.renderer.Render(w, r, "admin/categories", render.TemplateData{
		Title: "Categories",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering category list", "error", err)
	}
}

// New renders the empty category form.
func (h *CategoriesHandler) New(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "admin/category_form", render.TemplateData{
		Title: "New Category",
		Data:  categoryFormData{},
	}); err != nil {
		logAndInternalError(w, "rendering category form", "error", err)
	}
}

// Create handles category form submission.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteCategories+RouteSuffixNew) {
		return
	}

	input, msg := categoryInputFromForm(r)
	if msg != "" {
		flashError(w, r, h.renderer, RouteCategories+RouteSuffixNew, msg)
		return
	}

	if err := h.api.CreateCategory(r.Context(), input); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteCategories+RouteSuffixNew, err)
		return
	}
	h.cache.Invalidate(r.Context())
	flashSuccess(w, r, h.renderer, redirectCategories, "Category created.")
}

// Edit renders the edit form for one category.
func (h *CategoriesHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectCategories, "Category not found.")
		return
	}

	category, err := h.api.GetCategory(r.Context(), id)
	if err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteCategories, err)
		return
	}
	if category == nil {
		flashError(w, r, h.renderer, redirectCategories, "Category not found.")
		return
	}

	if err := h.renderer.Render(w, r, "admin/category_form", render.TemplateData{
		Title: "Edit Category",
		Data:  categoryFormData{Category: category, IsEdit: true},
	}); err != nil {
		logAndInternalError(w, "rendering category form", "error", err)
	}
}

// Update handles edit form submission.
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectCategories, "Category not found.")
		return
	}
	formURL := fmt.Sprintf("/categories/%d/edit", id)
	if !parseFormOrRedirect(w, r, h.renderer, formURL) {
		return
	}

	input, msg := categoryInputFromForm(r)
	if msg != "" {
		flashError(w, r, h.renderer, formURL, msg)
		return
	}

	if err := h.api.UpdateCategory(r.Context(), id, input); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, formURL, err)
		return
	}
	h.cache.Invalidate(r.Context())
	flashSuccess(w, r, h.renderer, redirectCategories, "Category updated.")
}

// Delete removes a category. The backend refuses deletion for
// categories that still hold articles; that arrives as a client error
// and surfaces through the normal transport notice.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectCategories, "Category not found.")
		return
	}
	if err := h.api.DeleteCategory(r.Context(), id); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteCategories, err)
		return
	}
	h.cache.Invalidate(r.Context())
	flashSuccess(w, r, h.renderer, redirectCategories, "Category deleted.")
}

func categoryInputFromForm(r *http.Request) (newsapi.CategoryInput, string) {
	input := newsapi.CategoryInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Slug:        strings.TrimSpace(r.FormValue("slug")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if input.Name == "" {
		return input, "Name is required."
	}
	if input.Slug == "" {
		input.Slug = util.Slugify(input.Name)
	} else if !util.IsValidSlug(input.Slug) {
		return input, "Slug may only contain lowercase letters, digits and hyphens."
	}
	return input, ""
}

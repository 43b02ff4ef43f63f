// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/session"
)

// AdsHandler handles advertisement management routes.
type AdsHandler struct {
	api      *newsapi.Client
	renderer *render.Renderer
	sessions *session.Store
}

// NewAdsHandler creates a new AdsHandler.
func NewAdsHandler(api *newsapi.Client, renderer *render.Renderer, sessions *session.Store) *AdsHandler {
	return &AdsHandler{api: api, renderer: renderer, sessions: sessions}
}

type adListData struct {
	Ads        []model.Advertisement
	Pagination AdminPagination
}

type adFormData struct {
	Ad     *model.Advertisement
	IsEdit bool
}

// List renders the advertisement list.
func (h *AdsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	list, err := h.api.ListAds(r.Context(), page)
	if err != nil && backendReadFailure(w, r, h.renderer, h.sessions, h.api, err) {
		return
	}

	data := adListData{
		Ads:        list.Items,
		Pagination: BuildAdminPagination(list.Pagination, RouteAds, url.Values{}),
	}
	if err := h.renderer.Render(w, r, "admin/ads", render.TemplateData{
		Title: "Advertisements",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering ad list", "error", err)
	}
}

// New renders the empty advertisement form.
func (h *AdsHandler) New(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "admin/ad_form", render.TemplateData{
		Title: "New Advertisement",
		Data:  adFormData{},
	}); err != nil {
		logAndInternalError(w, "rendering ad form", "error", err)
	}
}

// Create handles advertisement form submission.
func (h *AdsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAds+RouteSuffixNew) {
		return
	}

	input, msg := adInputFromForm(r)
	if msg != "" {
		flashError(w, r, h.renderer, RouteAds+RouteSuffixNew, msg)
		return
	}

	if err := h.api.CreateAd(r.Context(), input); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteAds+RouteSuffixNew, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAds, "Advertisement created.")
}

// Edit renders the edit form for one advertisement.
func (h *AdsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAds, "Advertisement not found.")
		return
	}

	ad, err := h.api.GetAd(r.Context(), id)
	if err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteAds, err)
		return
	}
	if ad == nil {
		flashError(w, r, h.renderer, redirectAds, "Advertisement not found.")
		return
	}

	if err := h.renderer.Render(w, r, "admin/ad_form", render.TemplateData{
		Title: "Edit Advertisement",
		Data:  adFormData{Ad: ad, IsEdit: true},
	}); err != nil {
		logAndInternalError(w, "rendering ad form", "error", err)
	}
}

// Update handles edit form submission.
func (h *AdsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAds, "Advertisement not found.")
		return
	}
	formURL := fmt.Sprintf("/ads/%d/edit", id)
	if !parseFormOrRedirect(w, r, h.renderer, formURL) {
		return
	}

	input, msg := adInputFromForm(r)
	if msg != "" {
		flashError(w, r, h.renderer, formURL, msg)
		return
	}

	if err := h.api.UpdateAd(r.Context(), id, input); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, formURL, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAds, "Advertisement updated.")
}

// Delete removes an advertisement.
func (h *AdsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAds, "Advertisement not found.")
		return
	}
	if err := h.api.DeleteAd(r.Context(), id); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteAds, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAds, "Advertisement deleted.")
}

// adInputFromForm builds the write payload from the posted form. The
// active checkbox maps to the ACTIVE/PAUSED status pair; date fields
// are optional and arrive in the date input's 2006-01-02 form.
func adInputFromForm(r *http.Request) (newsapi.AdInput, string) {
	status := model.AdStatusPaused
	if formBool(r, "is_active") {
		status = model.AdStatusActive
	}
	input := newsapi.AdInput{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Status:      status,
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		TargetURL:   strings.TrimSpace(r.FormValue("target_url")),
		Budget:      formFloat(r, "budget"),
		StartDate:   formDate(r, "start_date"),
		EndDate:     formDate(r, "end_date"),
	}
	switch {
	case input.Title == "":
		return input, "Title is required."
	case input.Budget < 0:
		return input, "Budget cannot be negative."
	}
	return input, ""
}

// formDate parses an optional yyyy-mm-dd form value.
func formDate(r *http.Request, key string) *time.Time {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}

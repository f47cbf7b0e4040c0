// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashgrid/ashgrid/internal/database"
)

// Fires returns a page of incidents matching the common filter, sorted by
// burned area descending. Pagination params: page (default 1) and limit
// (default and maximum from config).
func (h *Handler) Fires(w http.ResponseWriter, r *http.Request) {
	filter, err := buildFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	req := FiresRequest{
		Page:  getIntParam(r, "page", 1),
		Limit: getIntParam(r, "limit", h.config.API.DefaultPageSize),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if req.Limit > h.config.API.MaxPageSize {
		req.Limit = h.config.API.MaxPageSize
	}

	type firesKey struct {
		Filter database.IncidentFilter
		Page   int
		Limit  int
	}
	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteWithKey(w, r, "Fires", filter,
		firesKey{Filter: filter, Page: req.Page, Limit: req.Limit},
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetFires(ctx, filter, req.Page, req.Limit)
		})
}

// FiresByYear returns every incident of one year at or above the
// configured minimum size, for the map export. The year comes from the
// URL path.
func (h *Handler) FiresByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "year must be an integer", nil)
		return
	}

	req := FiresByYearRequest{Year: year}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	type yearKey struct {
		Year     int
		MinAcres float64
	}
	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteWithKey(w, r, "FiresByYear", database.IncidentFilter{},
		yearKey{Year: year, MinAcres: h.config.API.YearDumpMinAcres},
		func(ctx context.Context, _ database.IncidentFilter) (interface{}, error) {
			return h.db.GetFiresByYear(ctx, year, h.config.API.YearDumpMinAcres)
		})
}

// ComplexNames returns the distinct named complex fires.
func (h *Handler) ComplexNames(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	names, err := h.db.GetComplexNames(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to query complex names", err)
		return
	}

	respondSuccess(w, names, start)
}

// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package api

import (
	"context"
	"net/http"

	"github.com/ashgrid/ashgrid/internal/database"
)

// PerformanceAgencies returns the top-N agencies by incident count with
// their nested top-3 cause breakdowns. limit defaults and caps come from
// config.
func (h *Handler) PerformanceAgencies(w http.ResponseWriter, r *http.Request) {
	filter, err := buildFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	req := AgenciesRequest{
		Limit: getIntParam(r, "limit", h.config.API.AgencyLimitDefault),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if req.Limit > h.config.API.AgencyLimitMax {
		req.Limit = h.config.API.AgencyLimitMax
	}

	type agenciesKey struct {
		Filter database.IncidentFilter
		Limit  int
	}
	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteWithKey(w, r, "PerformanceAgencies", filter,
		agenciesKey{Filter: filter, Limit: req.Limit},
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetAgencyPerformance(ctx, filter, req.Limit)
		})
}

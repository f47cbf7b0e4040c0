// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package api

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/ashgrid/ashgrid/internal/database"
	"github.com/ashgrid/ashgrid/internal/models"
)

// Aggregate is the universal grouped count. group_by must come from the
// allow-list; anything else is a 400, never a silent empty result.
// Optional limit truncates the result and order=value re-sorts by group
// key ascending instead of the default count descending.
func (h *Handler) Aggregate(w http.ResponseWriter, r *http.Request) {
	filter, err := buildFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	req := AggregateRequest{
		GroupBy: r.URL.Query().Get("group_by"),
		Limit:   getIntParam(r, "limit", 0),
		Order:   r.URL.Query().Get("order"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()

	buckets, err := h.db.GetAggregateCounts(r.Context(), filter, req.GroupBy)
	if err != nil {
		if errors.Is(err, database.ErrInvalidGroupBy) {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
				"group_by must be one of: "+strings.Join(database.AllowedGroupByFields(), ", "), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to execute query: Aggregate", err)
		return
	}

	if req.Order == "value" {
		sort.Slice(buckets, func(i, j int) bool { return buckets[i].Group < buckets[j].Group })
	}
	if req.Limit > 0 && len(buckets) > req.Limit {
		buckets = buckets[:req.Limit]
	}
	if buckets == nil {
		buckets = []models.AggregateBucket{}
	}

	respondSuccess(w, buckets, start)
}

// AggregateCounty returns per-county counts keyed by 5-digit FIPS code.
func (h *Handler) AggregateCounty(w http.ResponseWriter, r *http.Request) {
	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteSimple(w, r, "AggregateCounty",
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetCountyAggregate(ctx, filter)
		})
}

// AggregateState returns per-state counts.
func (h *Handler) AggregateState(w http.ResponseWriter, r *http.Request) {
	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteSimple(w, r, "AggregateState",
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetStateAggregate(ctx, filter)
		})
}

// SummaryCauses returns incident counts per cause, the grouped count
// the dashboard's cause chart consumes.
func (h *Handler) SummaryCauses(w http.ResponseWriter, r *http.Request) {
	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteSimple(w, r, "SummaryCauses",
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetAggregateCounts(ctx, filter, "STAT_CAUSE_DESCR")
		})
}

// SummarySizeClassByCause returns the size-class by top-4-causes pivot.
func (h *Handler) SummarySizeClassByCause(w http.ResponseWriter, r *http.Request) {
	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteSimple(w, r, "SummarySizeClassByCause",
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetSizeClassByCause(ctx, filter)
		})
}

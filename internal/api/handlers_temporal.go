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

// TemporalDiurnal returns per-hour incident counts and mean sizes.
func (h *Handler) TemporalDiurnal(w http.ResponseWriter, r *http.Request) {
	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteSimple(w, r, "TemporalDiurnal",
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetDiurnalActivity(ctx, filter)
		})
}

// TemporalWeekly returns the (day of week, cause) cadence with the top
// five causes per day and an "Other" collapse.
func (h *Handler) TemporalWeekly(w http.ResponseWriter, r *http.Request) {
	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteSimple(w, r, "TemporalWeekly",
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetWeeklyCadence(ctx, filter)
		})
}

// TemporalWeeklySummary returns the fixed-category variant of the weekly
// cadence.
func (h *Handler) TemporalWeeklySummary(w http.ResponseWriter, r *http.Request) {
	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteSimple(w, r, "TemporalWeeklySummary",
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetWeeklyCauseSummary(ctx, filter)
		})
}

// SummaryMonthlyFrequency returns the zero-filled per-year monthly count
// matrix. Only the state filter applies; the matrix always spans the full
// observed year range.
func (h *Handler) SummaryMonthlyFrequency(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")

	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteWithKey(w, r, "SummaryMonthlyFrequency",
		database.IncidentFilter{State: state},
		database.IncidentFilter{State: state},
		func(ctx context.Context, _ database.IncidentFilter) (interface{}, error) {
			return h.db.GetMonthlyFrequency(ctx, state)
		})
}

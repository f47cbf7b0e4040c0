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

// StatisticsSummary returns headline totals for the filtered set.
// extended=true adds the cumulative-to-range-end comparison population.
func (h *Handler) StatisticsSummary(w http.ResponseWriter, r *http.Request) {
	extended := r.URL.Query().Get("extended") == "true"

	executor := NewAnalyticsQueryExecutor(h)
	if extended {
		executor.ExecuteSimple(w, r, "StatisticsSummaryExtended",
			func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
				return h.db.GetSummaryStatsExtended(ctx, filter)
			})
		return
	}

	executor.ExecuteSimple(w, r, "StatisticsSummary",
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetSummaryStats(ctx, filter)
		})
}

// StatisticsCorrelation returns a bounded random sample of
// (size, day of year, duration, cause) tuples. sample_size defaults and
// caps come from config; results are not cached since every draw is a
// fresh random sample.
func (h *Handler) StatisticsCorrelation(w http.ResponseWriter, r *http.Request) {
	filter, err := buildFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	req := CorrelationRequest{
		SampleSize: getIntParam(r, "sample_size", h.config.API.DefaultSampleSize),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if req.SampleSize > h.config.API.MaxSampleSize {
		req.SampleSize = h.config.API.MaxSampleSize
	}

	executor := NewAnalyticsQueryExecutor(h)
	executor.executeUncached(w, r, "StatisticsCorrelation", filter,
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetCorrelationSample(ctx, filter, req.SampleSize)
		})
}

// SummaryDurationDistribution returns the 31-bin containment-duration
// histogram.
func (h *Handler) SummaryDurationDistribution(w http.ResponseWriter, r *http.Request) {
	executor := NewAnalyticsQueryExecutor(h)
	executor.ExecuteSimple(w, r, "SummaryDurationDistribution",
		func(ctx context.Context, filter database.IncidentFilter) (interface{}, error) {
			return h.db.GetDurationDistribution(ctx, filter)
		})
}

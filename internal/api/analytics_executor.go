// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ashgrid/ashgrid/internal/cache"
	"github.com/ashgrid/ashgrid/internal/database"
	"github.com/ashgrid/ashgrid/internal/metrics"
	"github.com/ashgrid/ashgrid/internal/models"
)

// AnalyticsQueryExecutor encapsulates the shared flow of every aggregation
// handler:
//
//  1. Build the common incident filter from query parameters
//  2. Check the TTL cache for an existing result
//  3. Execute the query on a miss
//  4. Cache the result
//  5. Respond in the standard envelope with query-time metadata
//
// All charts rendered from one dashboard view share the same filter, so a
// single executor guarantees they all reflect the same filtered
// population.
type AnalyticsQueryExecutor struct {
	handler *Handler
}

// NewAnalyticsQueryExecutor creates an executor bound to the handler's
// database, cache, and config.
func NewAnalyticsQueryExecutor(h *Handler) *AnalyticsQueryExecutor {
	return &AnalyticsQueryExecutor{handler: h}
}

// AnalyticsQueryFunc executes one aggregation against the incident store.
// The result must be JSON-serializable since it is cached as-is.
type AnalyticsQueryFunc func(ctx context.Context, filter database.IncidentFilter) (interface{}, error)

// ExecuteSimple runs a query that needs only the common filter. Handlers
// with extra parameters (limit, group_by, sample_size) fold them into the
// cache key via ExecuteWithKey.
func (e *AnalyticsQueryExecutor) ExecuteSimple(
	w http.ResponseWriter,
	r *http.Request,
	cacheKeyPrefix string,
	queryFunc AnalyticsQueryFunc,
) {
	filter, err := buildFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	e.ExecuteWithKey(w, r, cacheKeyPrefix, filter, filter, queryFunc)
}

// ExecuteWithKey runs a query with an explicit cache key payload. keyParams
// must include everything that affects the result beyond the prefix, so
// two requests differing only in, say, limit never share a cache entry.
func (e *AnalyticsQueryExecutor) ExecuteWithKey(
	w http.ResponseWriter,
	r *http.Request,
	cacheKeyPrefix string,
	filter database.IncidentFilter,
	keyParams interface{},
	queryFunc AnalyticsQueryFunc,
) {
	if e.handler.db == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Database not available", nil)
		return
	}

	start := time.Now()
	cacheKey := cache.GenerateKey(cacheKeyPrefix, keyParams)

	if e.handler.cache != nil {
		if cached, found := e.handler.cache.Get(cacheKey); found {
			metrics.CacheHits.WithLabelValues("analytics").Inc()
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status: "success",
				Data:   cached,
				Metadata: models.Metadata{
					Timestamp:   time.Now(),
					QueryTimeMS: 0,
					Cached:      true,
				},
			})
			return
		}
		metrics.CacheMisses.WithLabelValues("analytics").Inc()
	}

	data, err := queryFunc(r.Context(), filter)
	metrics.RecordDBQuery(cacheKeyPrefix, time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			fmt.Sprintf("Failed to execute query: %s", cacheKeyPrefix), err)
		return
	}

	if e.handler.cache != nil {
		e.handler.cache.Set(cacheKey, data)
	}

	respondSuccess(w, data, start)
}

// executeUncached runs a query straight through, bypassing the cache.
// Used for the correlation sample, where every request draws fresh random
// rows and a cached draw would defeat the point.
func (e *AnalyticsQueryExecutor) executeUncached(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	filter database.IncidentFilter,
	queryFunc AnalyticsQueryFunc,
) {
	if e.handler.db == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Database not available", nil)
		return
	}

	start := time.Now()

	data, err := queryFunc(r.Context(), filter)
	metrics.RecordDBQuery(operation, time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			fmt.Sprintf("Failed to execute query: %s", operation), err)
		return
	}

	respondSuccess(w, data, start)
}

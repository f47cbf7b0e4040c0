// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

// Package api implements the HTTP surface of the wildfire analytics
// service: the incident listing, the temporal, geographic, and statistical
// aggregation endpoints, the cause prediction endpoint, and the health
// probes.
//
// Every aggregation handler runs through the AnalyticsQueryExecutor, which
// gives them a shared cache-first flow: build the common incident filter
// from query parameters, serve from the TTL cache when possible, otherwise
// query the store and cache the result. Responses share the
// models.APIResponse envelope with query-time metadata.
//
// Handler methods are split across files by area:
//   - handlers.go: Handler struct and constructor
//   - handlers_helpers.go: response encoding and parameter parsing
//   - handlers_fires.go: incident listing and export endpoints
//   - handlers_temporal.go: diurnal and weekly aggregations
//   - handlers_aggregate.go: grouped and geographic counts
//   - handlers_statistics.go: summary stats, correlation, histograms
//   - handlers_performance.go: agency performance
//   - handlers_predict.go: cause prediction
//   - handlers_health.go: liveness and readiness probes
package api

// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package api

import (
	"net/http"
	"time"
)

// healthStatus is the health endpoint payload.
type healthStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	RecordCount   *int64  `json:"record_count,omitempty"`
	ModelLoaded   bool    `json:"model_loaded"`
	Database      string  `json:"database"`
}

// Health reports overall service health: database reachability, incident
// count, and whether the cause model is backing predictions.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := healthStatus{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		ModelLoaded:   h.predictor != nil && h.predictor.Loaded(),
		Database:      "ok",
	}

	if err := h.db.Ping(r.Context()); err != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
	} else if count, err := h.db.GetRecordCount(r.Context()); err == nil {
		status.RecordCount = &count
	}

	respondSuccess(w, status, start)
}

// HealthLive is the liveness probe: the process is up and serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady is the readiness probe: the store must answer a ping before
// the instance takes traffic.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"database not ready", err)
		return
	}

	respondSuccess(w, map[string]string{"status": "ready"}, start)
}

// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/ashgrid/ashgrid/internal/metrics"
	"github.com/ashgrid/ashgrid/internal/predictor"
)

// PredictCause runs the cause model over a validated feature record and
// returns every cause with its probability, most likely first. With no
// loaded model the predictor returns its flagged placeholder rather than
// an error.
func (h *Handler) PredictCause(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body", nil)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()

	results := h.predictor.Predict(predictor.Input{
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		FireSize:   req.FireSize,
		State:      req.State,
		Date:       req.Date,
		OwnerCode:  req.OwnerCode,
		AgencyCode: req.AgencyCode,
	})
	metrics.RecordPrediction(h.predictor.Loaded(), time.Since(start))

	respondSuccess(w, results, start)
}

// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package api

import (
	"time"

	"github.com/ashgrid/ashgrid/internal/cache"
	"github.com/ashgrid/ashgrid/internal/config"
	"github.com/ashgrid/ashgrid/internal/database"
	"github.com/ashgrid/ashgrid/internal/logging"
	"github.com/ashgrid/ashgrid/internal/predictor"
)

// Handler carries the dependencies shared by all endpoint methods.
type Handler struct {
	db        *database.DB
	config    *config.Config
	predictor *predictor.Predictor
	cache     *cache.Cache
	startTime time.Time
}

// NewHandler creates the API handler. The cache is optional: a nil cache
// (cache disabled in config) makes every request hit the store directly.
func NewHandler(db *database.DB, cfg *config.Config, pred *predictor.Predictor) *Handler {
	var c *cache.Cache
	if cfg.Cache.Enabled {
		c = cache.New(cfg.Cache.TTL)
	}

	return &Handler{
		db:        db,
		config:    cfg,
		predictor: pred,
		cache:     c,
		startTime: time.Now(),
	}
}

// ClearCache invalidates all cached aggregation results. Called after a
// bulk data reload so clients see the new incident set immediately.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Info().Msg("Analytics cache cleared")
	}
}

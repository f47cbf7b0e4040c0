// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/ashgrid/ashgrid/internal/config"
	"github.com/ashgrid/ashgrid/internal/database"
	"github.com/ashgrid/ashgrid/internal/models"
	"github.com/ashgrid/ashgrid/internal/predictor"
)

// apiTestSemaphore serializes tests that open a DuckDB connection.
// Concurrent CGO connections can hang under CI resource pressure.
var apiTestSemaphore = make(chan struct{}, 1)

// testEnv bundles everything a handler test needs.
type testEnv struct {
	handler *Handler
	router  http.Handler
	db      *database.DB
}

// newTestEnv creates an in-memory store, a placeholder-mode predictor, and
// the full route tree. The semaphore is held until the test completes.
// Response caching is off so every request hits the store.
func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithCache(t, false)
}

func newTestEnvWithCache(t *testing.T, cacheEnabled bool) *testEnv {
	t.Helper()

	apiTestSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-apiTestSemaphore
	})

	cfg := config.Default()
	cfg.Cache.Enabled = cacheEnabled
	cfg.Security.RateLimitDisabled = true
	cfg.Database.Path = ":memory:"
	cfg.Database.MaxMemory = "1GB"
	cfg.Predictor.ModelPath = filepath.Join(t.TempDir(), "absent-model.json")

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	pred := predictor.New(cfg.Predictor.ModelPath)
	handler := NewHandler(db, cfg, pred)
	chiMw := NewChiMiddlewareFromConfig(cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled)

	return &testEnv{
		handler: handler,
		router:  NewRouter(handler, chiMw).SetupChi(),
		db:      db,
	}
}

// seedIncident inserts one row through the raw connection; the service
// layer itself never writes.
func (env *testEnv) seedIncident(t *testing.T, fodID int64, year int, state, cause string, fireSize float64) {
	t.Helper()

	discovery := time.Date(year, time.July, 15, 14, 0, 0, 0, time.UTC)
	_, err := env.db.Conn().Exec(`
		INSERT INTO incidents (
			fod_id, fire_name, fire_year, discovery_time, discovery_doy,
			discovery_month, discovery_day_of_week, discovery_hour,
			fire_duration_days, stat_cause_descr, fire_size, fire_size_class,
			latitude, longitude, state
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fodID, "TEST FIRE", year, discovery, discovery.YearDay(),
		int(discovery.Month()), int(discovery.Weekday()), discovery.Hour(),
		3.0, cause, fireSize, "C", 38.5, -120.5, state,
	)
	if err != nil {
		t.Fatalf("failed to seed incident: %v", err)
	}
}

// doRequest runs a request through the full route tree and decodes the
// envelope.
func (env *testEnv) doRequest(t *testing.T, method, target string, body *string) (*httptest.ResponseRecorder, *models.APIResponse) {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(*body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	var envelope models.APIResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec, &envelope
}

// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashgrid/ashgrid/internal/middleware"
)

// Router wires the handler and middleware factory into the Chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given handler.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
	}
}

// SetupChi builds the full route tree.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(chiMiddleware(middleware.Compression))

	// Health probes: looser rate limit, polled by orchestrators.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Data endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/fires", router.handler.Fires)
		r.Get("/fires/year/{year}", router.handler.FiresByYear)
		r.Get("/complex-names", router.handler.ComplexNames)

		r.Get("/temporal/diurnal", router.handler.TemporalDiurnal)
		r.Get("/temporal/weekly", router.handler.TemporalWeekly)
		r.Get("/temporal/weekly-summary", router.handler.TemporalWeeklySummary)

		r.Get("/performance/agencies", router.handler.PerformanceAgencies)

		r.Get("/aggregate", router.handler.Aggregate)
		r.Get("/aggregate/county", router.handler.AggregateCounty)
		r.Get("/aggregate/state", router.handler.AggregateState)

		r.Get("/statistics/summary", router.handler.StatisticsSummary)
		r.Get("/statistics/correlation", router.handler.StatisticsCorrelation)

		r.Get("/summary/containment-duration-distribution", router.handler.SummaryDurationDistribution)
		r.Get("/summary/size-class-by-cause", router.handler.SummarySizeClassByCause)
		r.Get("/summary/monthly-frequency", router.handler.SummaryMonthlyFrequency)
		r.Get("/summary/causes", router.handler.SummaryCauses)

		r.Post("/predict/cause", router.handler.PredictCause)
	})

	// Prometheus metrics, outside the versioned API.
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r
}

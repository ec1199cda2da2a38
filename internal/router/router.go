// Package router sets up all HTTP routes and middleware chains for the
// slidepress API. Pipeline endpoints share one middleware stack; the
// model-backed generate endpoint is additionally rate limited.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"slidepress/internal/handlers"
	"slidepress/internal/middleware"
)

// Options carries the observability hooks the router mounts. A nil
// Gatherer disables /metrics; a nil HTTPMetrics disables instrumentation;
// a nil GenerateLimiter leaves generation unthrottled.
type Options struct {
	Gatherer        prometheus.Gatherer
	HTTPMetrics     *middleware.HTTPMetrics
	GenerateLimiter *middleware.RateLimiter
	MaxBody         int64
}

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(api *handlers.API, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	if opts.HTTPMetrics != nil {
		r.Use(opts.HTTPMetrics.Instrument)
	}

	r.Get("/health", healthHandler)
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	maxBody := opts.MaxBody
	if maxBody <= 0 {
		maxBody = middleware.DefaultMaxBody
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIHeaders)
		r.Use(middleware.MaxBody(maxBody))

		r.Route("/slides", func(r chi.Router) {
			r.Post("/process", api.ProcessSlide)
			r.Group(func(r chi.Router) {
				if opts.GenerateLimiter != nil {
					r.Use(opts.GenerateLimiter.Middleware)
				}
				r.Post("/generate", api.GenerateSlide)
			})
		})

		r.Route("/decks/{deckID}", func(r chi.Router) {
			r.Post("/process", api.ProcessDeck)
			r.Get("/slides", api.ListSlides)
			r.Delete("/cache", api.InvalidateCache)
			r.Post("/export", api.ExportDeck)
			r.Get("/export", api.LatestExport)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for pipeline activity.
type Metrics struct {
	passDuration *prometheus.HistogramVec
	passFailures *prometheus.CounterVec
	slides       *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// MustNewMetrics registers the pipeline collectors with reg. Collectors that
// are already registered are reused so several pipelines can share one
// registry. Any other registration error panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	passDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "slidepress",
			Subsystem: "pipeline",
			Name:      "pass_duration_seconds",
			Help:      "Time spent in each post-processing pass.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"pass", "status"},
	)
	passFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slidepress",
			Subsystem: "pipeline",
			Name:      "pass_failures_total",
			Help:      "Passes that failed and were rolled back.",
		},
		[]string{"pass", "reason"},
	)
	slides := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slidepress",
			Subsystem: "pipeline",
			Name:      "slides_processed_total",
			Help:      "Slides run through the pipeline, by outcome.",
		},
		[]string{"outcome"},
	)
	cacheLookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slidepress",
			Subsystem: "pipeline",
			Name:      "layout_cache_lookups_total",
			Help:      "Per-deck layout cache lookups, by result.",
		},
		[]string{"result"},
	)

	register := func(c prometheus.Collector) prometheus.Collector {
		if err := reg.Register(c); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				return already.ExistingCollector
			}
			panic(err)
		}
		return c
	}
	return &Metrics{
		passDuration: register(passDuration).(*prometheus.HistogramVec),
		passFailures: register(passFailures).(*prometheus.CounterVec),
		slides:       register(slides).(*prometheus.CounterVec),
		cacheLookups: register(cacheLookups).(*prometheus.CounterVec),
	}
}

// ObservePass records how long a pass took.
func (m *Metrics) ObservePass(pass, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.passDuration.WithLabelValues(pass, status).Observe(d.Seconds())
}

// IncPassFailure counts a rolled-back pass.
func (m *Metrics) IncPassFailure(pass, reason string) {
	if m == nil {
		return
	}
	m.passFailures.WithLabelValues(pass, reason).Inc()
}

// IncSlide counts a processed slide.
func (m *Metrics) IncSlide(outcome string) {
	if m == nil {
		return
	}
	m.slides.WithLabelValues(outcome).Inc()
}

func (m *Metrics) incCache(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

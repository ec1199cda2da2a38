// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the slidepress API.
// Handlers receive their dependencies through the API struct. Only the
// pipeline is required; persistence, caching, export storage and the model
// provider are optional and the endpoints that need them answer 503 when
// they are absent.
package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"slidepress/internal/cache"
	"slidepress/internal/jsonx"
	"slidepress/internal/models"
	"slidepress/internal/pipeline"
)

// SlideRepository persists processed slides.
type SlideRepository interface {
	Save(ctx context.Context, ps *models.ProcessedSlide) (*models.ProcessedSlide, error)
	ListByDeck(ctx context.Context, deckID string) ([]models.ProcessedSlide, error)
}

// ExportRepository records deck exports.
type ExportRepository interface {
	Create(ctx context.Context, e *models.DeckExport) (*models.DeckExport, error)
	LatestByDeck(ctx context.Context, deckID string) (*models.DeckExport, error)
}

// SlideCache memoizes processed slides by content key.
type SlideCache interface {
	Get(ctx context.Context, deckID, contentKey string) ([]byte, bool)
	Set(ctx context.Context, deckID, contentKey string, payload []byte)
	InvalidateDeck(ctx context.Context, deckID string) int
}

// ObjectStore uploads deck exports.
type ObjectStore interface {
	ExportDeck(ctx context.Context, deckID string, doc []byte, now time.Time) (key, url string, err error)
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// SlideDrafter asks a language model for a slide.
type SlideDrafter interface {
	Generate(ctx context.Context, prompt string, sctx *models.Context) (*models.Slide, error)
}

// Deps lists the collaborators of the API. Leave optional fields nil (not
// a typed nil pointer) when the backend is not configured.
type Deps struct {
	Pipeline        *pipeline.Pipeline
	Slides          SlideRepository
	Exports         ExportRepository
	Cache           SlideCache
	Objects         ObjectStore
	Drafter         SlideDrafter
	DeckConcurrency int
	Now             func() time.Time
}

// API groups the slide and deck handlers.
type API struct {
	pipeline        *pipeline.Pipeline
	slides          SlideRepository
	exports         ExportRepository
	cache           SlideCache
	objects         ObjectStore
	drafter         SlideDrafter
	deckConcurrency int
	now             func() time.Time
}

// NewAPI creates the handler group.
func NewAPI(d Deps) *API {
	a := &API{
		pipeline:        d.Pipeline,
		slides:          d.Slides,
		exports:         d.Exports,
		cache:           d.Cache,
		objects:         d.Objects,
		drafter:         d.Drafter,
		deckConcurrency: d.DeckConcurrency,
		now:             d.Now,
	}
	if a.pipeline == nil {
		a.pipeline = pipeline.New(pipeline.Options{})
	}
	if a.deckConcurrency <= 0 {
		a.deckConcurrency = pipeline.DefaultDeckConcurrency
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// processCached runs the pipeline over one slide, serving and filling the
// slide cache. The returned key identifies the slide's content.
func (a *API) processCached(ctx context.Context, in pipeline.SlideInput) (pipeline.SlideResult, string, error) {
	sctx := in.Context
	if sctx == nil {
		sctx = &models.Context{}
	}
	key, err := cache.ContentKey(in.Slide, sctx)
	if err != nil {
		return pipeline.SlideResult{}, "", err
	}

	if a.cache != nil {
		if payload, ok := a.cache.Get(ctx, sctx.DeckID, key); ok {
			var res pipeline.SlideResult
			if err := jsonx.Unmarshal(payload, &res); err == nil && res.Slide != nil {
				return res, key, nil
			}
			slog.Warn("discarding unreadable cached slide", "deck_id", sctx.DeckID, "key", key)
		}
	}

	s, report, err := a.pipeline.Process(ctx, in.Slide, sctx)
	if err != nil {
		return pipeline.SlideResult{}, key, err
	}
	res := pipeline.SlideResult{Slide: s, Report: report}

	if a.cache != nil {
		if payload, err := jsonx.Marshal(res); err == nil {
			a.cache.Set(ctx, sctx.DeckID, key, payload)
		}
	}
	return res, key, nil
}

// decodeBody reads a JSON request body into dst. It writes the error
// response itself and reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "could not read request body")
		return false
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "request body is required")
		return false
	}
	if err := jsonx.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}

// processError maps a pipeline error to a response.
func processError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrNilSlide):
		writeError(w, http.StatusBadRequest, "slide is required")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		slog.Error("slide processing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "slide processing failed")
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := jsonx.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("write json response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"slidepress/internal/jsonx"
	"slidepress/internal/models"
	"slidepress/internal/pipeline"
	"slidepress/internal/store"
)

// presignExpiry is how long a download link for the latest export stays valid.
const presignExpiry = 15 * time.Minute

// deckRequest carries deck-wide defaults applied to every slide context
// that does not set its own.
type deckRequest struct {
	Theme       *models.Theme          `json:"theme"`
	Palette     *models.Palette        `json:"palette"`
	DeckOutline *models.DeckOutline    `json:"deck_outline"`
	Structure   *models.ThemeStructure `json:"structure"`
	Slides      []pipeline.SlideInput  `json:"slides"`
}

type deckResponse struct {
	DeckID    string                 `json:"deck_id"`
	Slides    []pipeline.SlideResult `json:"slides"`
	Persisted bool                   `json:"persisted"`
}

// exportDocument is the JSON uploaded to object storage.
type exportDocument struct {
	DeckID     string                  `json:"deck_id"`
	ExportedAt time.Time               `json:"exported_at"`
	Slides     []models.ProcessedSlide `json:"slides"`
}

// deckID reads and validates the deck ID URL parameter.
func deckID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "deckID")
	if msg := validateDeckID(id); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return "", false
	}
	return id, true
}

// ProcessDeck runs the pipeline over every slide of a deck concurrently and
// returns the results in input order. Slides are persisted when a store is
// configured.
func (a *API) ProcessDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := deckID(w, r)
	if !ok {
		return
	}
	var req deckRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateDeck(len(req.Slides)); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	inputs := make([]pipeline.SlideInput, len(req.Slides))
	for i, in := range req.Slides {
		if msg := validateSlide(in.Slide, in.Context); msg != "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("slide %d: %s", i, msg))
			return
		}
		inputs[i] = pipeline.SlideInput{Slide: in.Slide, Context: req.scope(in.Context, id, i)}
	}

	start := time.Now()
	results, err := pipeline.ProcessDeck(r.Context(), inputs, a.deckConcurrency, func(ctx context.Context, i int, in pipeline.SlideInput) (pipeline.SlideResult, error) {
		res, key, err := a.processCached(ctx, in)
		if err != nil {
			return res, err
		}
		return res, a.persist(ctx, id, i, key, res)
	})
	if err != nil {
		processError(w, err)
		return
	}

	slog.Info("deck processed", "deck_id", id, "slides", len(results), "duration", time.Since(start))
	writeJSON(w, http.StatusOK, deckResponse{DeckID: id, Slides: results, Persisted: a.slides != nil})
}

// scope builds the context for slide i, filling deck-wide defaults. Every
// slide shares the request's theme and palette values so per-deck layout
// lookups are computed once.
func (req *deckRequest) scope(sctx *models.Context, deckID string, i int) *models.Context {
	c := pipeline.ScopeContext(sctx, deckID, i)
	if c.Theme == nil {
		c.Theme = req.Theme
	}
	if c.Palette == nil {
		c.Palette = req.Palette
	}
	if c.Structure == nil {
		c.Structure = req.Structure
	}
	if req.DeckOutline != nil && c.DeckOutline == (models.DeckOutline{}) {
		c.DeckOutline = *req.DeckOutline
	}
	return c
}

// persist stores a processed slide at its deck position. Without a store
// it does nothing.
func (a *API) persist(ctx context.Context, deckID string, index int, key string, res pipeline.SlideResult) error {
	if a.slides == nil {
		return nil
	}
	report, err := jsonx.Marshal(res.Report)
	if err != nil {
		return err
	}
	_, err = a.slides.Save(ctx, &models.ProcessedSlide{
		DeckID:     deckID,
		SlideIndex: index,
		Slide:      res.Slide,
		Report:     report,
		ContentKey: key,
	})
	return err
}

// ListSlides returns the persisted slides of a deck ordered by index.
func (a *API) ListSlides(w http.ResponseWriter, r *http.Request) {
	if a.slides == nil {
		writeError(w, http.StatusServiceUnavailable, "slide store not configured")
		return
	}
	id, ok := deckID(w, r)
	if !ok {
		return
	}
	slides, err := a.slides.ListByDeck(r.Context(), id)
	if err != nil {
		slog.Error("list deck slides failed", "deck_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load slides")
		return
	}
	if slides == nil {
		slides = []models.ProcessedSlide{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"deck_id": id, "slides": slides})
}

// InvalidateCache drops the deck's in-process layout cache and its cached
// slides in Valkey.
func (a *API) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	id, ok := deckID(w, r)
	if !ok {
		return
	}
	a.pipeline.Cache().Invalidate(id)
	removed := 0
	if a.cache != nil {
		removed = a.cache.InvalidateDeck(r.Context(), id)
	}
	slog.Info("deck cache invalidated", "deck_id", id, "cached_slides_removed", removed)
	writeJSON(w, http.StatusOK, map[string]any{"deck_id": id, "cached_slides_removed": removed})
}

// ExportDeck uploads the persisted deck as one JSON document to object
// storage and records the export.
func (a *API) ExportDeck(w http.ResponseWriter, r *http.Request) {
	if a.objects == nil || a.slides == nil {
		writeError(w, http.StatusServiceUnavailable, "export storage not configured")
		return
	}
	id, ok := deckID(w, r)
	if !ok {
		return
	}
	slides, err := a.slides.ListByDeck(r.Context(), id)
	if err != nil {
		slog.Error("load deck for export failed", "deck_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load slides")
		return
	}
	if len(slides) == 0 {
		writeError(w, http.StatusNotFound, "deck has no processed slides")
		return
	}

	now := a.now().UTC()
	doc, err := jsonx.Marshal(exportDocument{DeckID: id, ExportedAt: now, Slides: slides})
	if err != nil {
		slog.Error("encode deck export failed", "deck_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to encode deck")
		return
	}
	key, url, err := a.objects.ExportDeck(r.Context(), id, doc, now)
	if err != nil {
		slog.Error("upload deck export failed", "deck_id", id, "error", err)
		writeError(w, http.StatusBadGateway, "failed to upload deck export")
		return
	}

	export := &models.DeckExport{
		DeckID:     id,
		ObjectKey:  key,
		URL:        url,
		SlideCount: len(slides),
		SizeBytes:  int64(len(doc)),
		CreatedAt:  now,
	}
	if a.exports != nil {
		recorded, err := a.exports.Create(r.Context(), export)
		if err != nil {
			slog.Error("record deck export failed", "deck_id", id, "object_key", key, "error", err)
		} else {
			export = recorded
		}
	}
	slog.Info("deck exported", "deck_id", id, "object_key", key, "bytes", len(doc))
	writeJSON(w, http.StatusCreated, export)
}

// LatestExport returns the most recent export of a deck with a short-lived
// download link.
func (a *API) LatestExport(w http.ResponseWriter, r *http.Request) {
	if a.exports == nil {
		writeError(w, http.StatusServiceUnavailable, "export storage not configured")
		return
	}
	id, ok := deckID(w, r)
	if !ok {
		return
	}
	export, err := a.exports.LatestByDeck(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "deck has not been exported")
		return
	}
	if err != nil {
		slog.Error("load latest export failed", "deck_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load export")
		return
	}

	resp := map[string]any{"export": export}
	if a.objects != nil {
		if link, err := a.objects.PresignedURL(r.Context(), export.ObjectKey, presignExpiry); err == nil {
			resp["download_url"] = link
		} else {
			slog.Warn("presign export failed", "deck_id", id, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

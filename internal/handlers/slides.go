// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"slidepress/internal/ai"
	"slidepress/internal/models"
	"slidepress/internal/pipeline"
)

type generateRequest struct {
	Prompt  string          `json:"prompt"`
	Context *models.Context `json:"context"`
}

// ProcessSlide runs the pipeline over a single slide.
// Body: {"slide": {...}, "context": {...}}. Response: {"slide", "report"}.
func (a *API) ProcessSlide(w http.ResponseWriter, r *http.Request) {
	var req pipeline.SlideInput
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateSlide(req.Slide, req.Context); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, _, err := a.processCached(r.Context(), req)
	if err != nil {
		processError(w, err)
		return
	}
	if res.Report != nil && !res.Report.OK() {
		slog.Warn("slide processed with failed passes", "failed", res.Report.FailedPasses())
	}
	writeJSON(w, http.StatusOK, res)
}

// GenerateSlide drafts a slide with the active model provider and runs the
// pipeline over the draft.
// Body: {"prompt": "...", "context": {...}}. Response: {"slide", "report"}.
func (a *API) GenerateSlide(w http.ResponseWriter, r *http.Request) {
	if a.drafter == nil {
		writeError(w, http.StatusServiceUnavailable, "no AI provider configured")
		return
	}
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validatePrompt(req.Prompt); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	sctx := req.Context
	if sctx == nil {
		sctx = &models.Context{}
	}

	draft, err := a.drafter.Generate(r.Context(), req.Prompt, sctx)
	if err != nil {
		slog.Error("ai slide generation failed", "error", err)
		msg := "AI request failed. Check your provider configuration."
		if errors.Is(err, ai.ErrNoComponents) {
			msg = "the model returned a slide without components"
		}
		writeError(w, http.StatusBadGateway, msg)
		return
	}

	slide, report, err := a.pipeline.Process(r.Context(), draft, sctx)
	if err != nil {
		processError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.SlideResult{Slide: slide, Report: report})
}

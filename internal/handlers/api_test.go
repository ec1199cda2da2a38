// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slidepress/internal/ai"
	"slidepress/internal/models"
	"slidepress/internal/pipeline"
)

func newAPI(d Deps) (*API, http.Handler) {
	if d.Now == nil {
		d.Now = fixedNow
	}
	if d.Pipeline == nil {
		d.Pipeline = pipeline.New(pipeline.Options{Now: fixedNow})
	}
	a := NewAPI(d)
	return a, testRouter(a)
}

func TestProcessSlide(t *testing.T) {
	_, h := newAPI(Deps{})

	rr := do(t, h, http.MethodPost, "/api/slides/process", `{"slide":`+textSlide("Hello")+`,"context":{"slide_index":2}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp slideResponse
	decodeResponse(t, rr, &resp)
	if resp.Slide == nil || len(resp.Slide.Components) < 2 {
		t.Fatalf("slide = %+v, want background plus text", resp.Slide)
	}
	if resp.Slide.Components[0].Type != models.TypeBackground {
		t.Errorf("components[0] = %s, want Background", resp.Slide.Components[0].Type)
	}
	if got := firstText(resp.Slide); got != "Hello" {
		t.Errorf("text = %q, want Hello", got)
	}
	if resp.Slide.GeneratedAt != "2026-03-01T12:00:00Z" {
		t.Errorf("generated_at = %q", resp.Slide.GeneratedAt)
	}
	if len(resp.Report.Applied) == 0 {
		t.Error("report lists no applied passes")
	}
}

func TestProcessSlide_BadRequests(t *testing.T) {
	_, h := newAPI(Deps{})

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "empty body", body: "", wantMsg: "request body is required"},
		{name: "malformed json", body: `{"slide": {`, wantMsg: "malformed JSON body"},
		{name: "missing slide", body: `{"context": {}}`, wantMsg: "slide is required"},
		{name: "too many components", body: `{"slide":{"components":[` + strings.Repeat(`{"type":"Shape"},`, maxComponents) + `{"type":"Shape"}]}}`, wantMsg: "too many components"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/slides/process", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			if msg := errorMessage(t, rr); !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestProcessSlide_BodyTooLarge(t *testing.T) {
	a, _ := newAPI(Deps{})
	req := httptest.NewRequest(http.MethodPost, "/api/slides/process", strings.NewReader(`{"slide":`+textSlide("Hello")+`}`))
	rr := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rr, req.Body, 16)

	a.ProcessSlide(rr, req)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rr.Code)
	}
}

func TestProcessSlide_ServedFromCache(t *testing.T) {
	c := newMemCache()
	_, h := newAPI(Deps{Cache: c})
	body := `{"slide":` + textSlide("Cached") + `,"context":{"deck_id":"d1"}}`

	first := do(t, h, http.MethodPost, "/api/slides/process", body)
	second := do(t, h, http.MethodPost, "/api/slides/process", body)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status = %d/%d", first.Code, second.Code)
	}
	if c.sets != 1 || c.hits != 1 {
		t.Errorf("cache sets=%d hits=%d, want 1 and 1", c.sets, c.hits)
	}

	var a, b slideResponse
	decodeResponse(t, first, &a)
	decodeResponse(t, second, &b)
	if firstText(b.Slide) != "Cached" || len(a.Slide.Components) != len(b.Slide.Components) {
		t.Errorf("cached response differs: %s vs %s", first.Body.String(), second.Body.String())
	}
}

func TestProcessDeck(t *testing.T) {
	slides := newMemSlides()
	_, h := newAPI(Deps{Slides: slides, DeckConcurrency: 2})

	body := `{
		"deck_outline": {"title": "Q3 review"},
		"slides": [
			{"slide": ` + textSlide("one") + `},
			{"slide": ` + textSlide("two") + `},
			{"slide": ` + textSlide("three") + `, "context": {"slide_outline": {"type": "closing"}}}
		]
	}`
	rr := do(t, h, http.MethodPost, "/api/decks/q3-review/process", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		DeckID    string          `json:"deck_id"`
		Slides    []slideResponse `json:"slides"`
		Persisted bool            `json:"persisted"`
	}
	decodeResponse(t, rr, &resp)
	if resp.DeckID != "q3-review" || !resp.Persisted {
		t.Errorf("deck_id=%q persisted=%v", resp.DeckID, resp.Persisted)
	}
	want := []string{"one", "two", "three"}
	if len(resp.Slides) != len(want) {
		t.Fatalf("slides = %d, want %d", len(resp.Slides), len(want))
	}
	for i, w := range want {
		if got := firstText(resp.Slides[i].Slide); got != w {
			t.Errorf("slide %d text = %q, want %q", i, got, w)
		}
	}

	rr = do(t, h, http.MethodGet, "/api/decks/q3-review/slides", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	var listed struct {
		Slides []models.ProcessedSlide `json:"slides"`
	}
	decodeResponse(t, rr, &listed)
	if len(listed.Slides) != 3 {
		t.Fatalf("persisted = %d, want 3", len(listed.Slides))
	}
	for i, ps := range listed.Slides {
		if ps.SlideIndex != i || ps.DeckID != "q3-review" || ps.ContentKey == "" {
			t.Errorf("persisted[%d] = index %d deck %q key %q", i, ps.SlideIndex, ps.DeckID, ps.ContentKey)
		}
		if firstText(ps.Slide) != want[i] {
			t.Errorf("persisted[%d] text = %q, want %q", i, firstText(ps.Slide), want[i])
		}
		if !json.Valid(ps.Report) {
			t.Errorf("persisted[%d] report is not JSON: %s", i, ps.Report)
		}
	}
}

func TestProcessDeck_Errors(t *testing.T) {
	failing := newMemSlides()
	failing.err = errStoreDown

	tests := []struct {
		name       string
		deps       Deps
		path       string
		body       string
		wantStatus int
	}{
		{name: "invalid deck id", path: "/api/decks/bad.id/process", body: `{"slides":[{"slide":{}}]}`, wantStatus: http.StatusBadRequest},
		{name: "no slides", path: "/api/decks/d1/process", body: `{"slides":[]}`, wantStatus: http.StatusBadRequest},
		{name: "missing slide", path: "/api/decks/d1/process", body: `{"slides":[{"slide":{}},{"context":{}}]}`, wantStatus: http.StatusBadRequest},
		{name: "store failure", deps: Deps{Slides: failing}, path: "/api/decks/d1/process", body: `{"slides":[{"slide":{}}]}`, wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newAPI(tt.deps)
			rr := do(t, h, http.MethodPost, tt.path, tt.body)
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rr.Code, tt.wantStatus, rr.Body.String())
			}
		})
	}
}

func TestListSlides_NoStore(t *testing.T) {
	_, h := newAPI(Deps{})
	rr := do(t, h, http.MethodGet, "/api/decks/d1/slides", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}

func TestListSlides_EmptyDeckIsArray(t *testing.T) {
	_, h := newAPI(Deps{Slides: newMemSlides()})
	rr := do(t, h, http.MethodGet, "/api/decks/empty/slides", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"slides":[]`) {
		t.Errorf("body = %s, want an empty slides array", rr.Body.String())
	}
}

func TestInvalidateCache(t *testing.T) {
	c := newMemCache()
	_, h := newAPI(Deps{Cache: c})

	for _, text := range []string{"a", "b"} {
		do(t, h, http.MethodPost, "/api/decks/d1/process", `{"slides":[{"slide":`+textSlide(text)+`}]}`)
	}
	do(t, h, http.MethodPost, "/api/decks/d2/process", `{"slides":[{"slide":`+textSlide("c")+`}]}`)

	rr := do(t, h, http.MethodDelete, "/api/decks/d1/cache", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp struct {
		Removed int `json:"cached_slides_removed"`
	}
	decodeResponse(t, rr, &resp)
	if resp.Removed != 2 {
		t.Errorf("removed = %d, want 2", resp.Removed)
	}
	if len(c.data) != 1 {
		t.Errorf("remaining cache entries = %d, want 1 (other deck)", len(c.data))
	}
}

func TestExportDeck(t *testing.T) {
	slides := newMemSlides()
	exports := &memExports{}
	objects := &fakeObjects{}
	_, h := newAPI(Deps{Slides: slides, Exports: exports, Objects: objects})

	rr := do(t, h, http.MethodPost, "/api/decks/d1/export", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("empty deck export status = %d, want 404", rr.Code)
	}

	do(t, h, http.MethodPost, "/api/decks/d1/process", `{"slides":[{"slide":`+textSlide("a")+`},{"slide":`+textSlide("b")+`}]}`)
	rr = do(t, h, http.MethodPost, "/api/decks/d1/export", "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var export models.DeckExport
	decodeResponse(t, rr, &export)
	wantKey := "decks/d1/20260301T120000Z.json"
	if export.ObjectKey != wantKey || export.SlideCount != 2 || export.URL != "https://cdn.example.com/"+wantKey {
		t.Errorf("export = %+v", export)
	}
	doc, ok := objects.uploads[wantKey]
	if !ok {
		t.Fatalf("nothing uploaded at %s", wantKey)
	}
	if export.SizeBytes != int64(len(doc)) {
		t.Errorf("size = %d, uploaded %d bytes", export.SizeBytes, len(doc))
	}
	var uploaded struct {
		DeckID string                  `json:"deck_id"`
		Slides []models.ProcessedSlide `json:"slides"`
	}
	if err := json.Unmarshal(doc, &uploaded); err != nil {
		t.Fatalf("uploaded document is not JSON: %v", err)
	}
	if uploaded.DeckID != "d1" || len(uploaded.Slides) != 2 {
		t.Errorf("uploaded deck %q with %d slides", uploaded.DeckID, len(uploaded.Slides))
	}
	if len(exports.exports) != 1 {
		t.Errorf("recorded exports = %d, want 1", len(exports.exports))
	}

	rr = do(t, h, http.MethodGet, "/api/decks/d1/export", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("latest status = %d", rr.Code)
	}
	var latest struct {
		Export      models.DeckExport `json:"export"`
		DownloadURL string            `json:"download_url"`
	}
	decodeResponse(t, rr, &latest)
	if latest.Export.ObjectKey != wantKey || !strings.Contains(latest.DownloadURL, "X-Amz-Signature") {
		t.Errorf("latest = %+v", latest)
	}
}

func TestExportDeck_Unavailable(t *testing.T) {
	tests := []struct {
		name       string
		deps       Deps
		method     string
		wantStatus int
	}{
		{name: "export without storage", deps: Deps{Slides: newMemSlides()}, method: http.MethodPost, wantStatus: http.StatusServiceUnavailable},
		{name: "latest without records", deps: Deps{}, method: http.MethodGet, wantStatus: http.StatusServiceUnavailable},
		{name: "latest never exported", deps: Deps{Exports: &memExports{}}, method: http.MethodGet, wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newAPI(tt.deps)
			rr := do(t, h, tt.method, "/api/decks/d1/export", "")
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestGenerateSlide(t *testing.T) {
	draft := &models.Slide{Components: []models.Component{{Type: models.TypeTitle}}}
	draft.Components[0].SetText("Market size")
	drafter := &fakeDrafter{slide: draft}
	_, h := newAPI(Deps{Drafter: drafter})

	rr := do(t, h, http.MethodPost, "/api/slides/generate", `{"prompt":"  A title slide about market size ","context":{"slide_index":0}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if drafter.lastPrompt == "" {
		t.Error("drafter was not called")
	}
	var resp slideResponse
	decodeResponse(t, rr, &resp)
	if resp.Slide == nil || resp.Slide.Components[0].Type != models.TypeBackground {
		t.Errorf("generated slide was not post-processed: %s", rr.Body.String())
	}
	if len(draft.Components) != 1 {
		t.Error("the drafted slide was modified in place")
	}
}

func TestGenerateSlide_Errors(t *testing.T) {
	tests := []struct {
		name       string
		deps       Deps
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "no provider", body: `{"prompt":"x"}`, wantStatus: http.StatusServiceUnavailable, wantMsg: "no AI provider"},
		{name: "empty prompt", deps: Deps{Drafter: &fakeDrafter{}}, body: `{"prompt":"   "}`, wantStatus: http.StatusBadRequest, wantMsg: "prompt is required"},
		{name: "prompt too long", deps: Deps{Drafter: &fakeDrafter{}}, body: `{"prompt":"` + strings.Repeat("a", maxPromptLen+1) + `"}`, wantStatus: http.StatusBadRequest, wantMsg: "too long"},
		{name: "empty model answer", deps: Deps{Drafter: &fakeDrafter{err: ai.ErrNoComponents}}, body: `{"prompt":"x"}`, wantStatus: http.StatusBadGateway, wantMsg: "without components"},
		{name: "provider failure", deps: Deps{Drafter: &fakeDrafter{err: errStoreDown}}, body: `{"prompt":"x"}`, wantStatus: http.StatusBadGateway, wantMsg: "AI request failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newAPI(tt.deps)
			rr := do(t, h, http.MethodPost, "/api/slides/generate", tt.body)
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if msg := errorMessage(t, rr); !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", msg, tt.wantMsg)
			}
		})
	}
}

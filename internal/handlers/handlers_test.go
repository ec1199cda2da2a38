// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handlers_test.go provides in-memory fakes for the optional backends and a
// router that mounts the API the same way the service does.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"slidepress/internal/models"
	"slidepress/internal/store"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

// memSlides is an in-memory SlideRepository.
type memSlides struct {
	mu   sync.Mutex
	rows map[string]map[int]models.ProcessedSlide
	err  error
}

func newMemSlides() *memSlides {
	return &memSlides{rows: make(map[string]map[int]models.ProcessedSlide)}
}

func (m *memSlides) Save(_ context.Context, ps *models.ProcessedSlide) (*models.ProcessedSlide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := *ps
	out.ID = uuid.New()
	if m.rows[ps.DeckID] == nil {
		m.rows[ps.DeckID] = make(map[int]models.ProcessedSlide)
	}
	m.rows[ps.DeckID][ps.SlideIndex] = out
	return &out, nil
}

func (m *memSlides) ListByDeck(_ context.Context, deckID string) ([]models.ProcessedSlide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ProcessedSlide
	for _, ps := range m.rows[deckID] {
		out = append(out, ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlideIndex < out[j].SlideIndex })
	return out, nil
}

// memExports is an in-memory ExportRepository.
type memExports struct {
	mu      sync.Mutex
	exports []models.DeckExport
}

func (m *memExports) Create(_ context.Context, e *models.DeckExport) (*models.DeckExport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *e
	out.ID = uuid.New()
	m.exports = append(m.exports, out)
	return &out, nil
}

func (m *memExports) LatestByDeck(_ context.Context, deckID string) (*models.DeckExport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.exports) - 1; i >= 0; i-- {
		if m.exports[i].DeckID == deckID {
			e := m.exports[i]
			return &e, nil
		}
	}
	return nil, store.ErrNotFound
}

// memCache is an in-memory SlideCache that counts hits and writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (m *memCache) Get(_ context.Context, deckID, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[deckID+"/"+key]
	if ok {
		m.hits++
	}
	return v, ok
}

func (m *memCache) Set(_ context.Context, deckID, key string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[deckID+"/"+key] = payload
	m.sets++
}

func (m *memCache) InvalidateDeck(_ context.Context, deckID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.data {
		if strings.HasPrefix(k, deckID+"/") {
			delete(m.data, k)
			n++
		}
	}
	return n
}

// fakeObjects records uploads.
type fakeObjects struct {
	mu      sync.Mutex
	uploads map[string][]byte
	err     error
}

func (f *fakeObjects) ExportDeck(_ context.Context, deckID string, doc []byte, now time.Time) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", "", f.err
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	key := "decks/" + deckID + "/" + now.Format("20060102T150405Z") + ".json"
	f.uploads[key] = doc
	return key, "https://cdn.example.com/" + key, nil
}

func (f *fakeObjects) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://s3.example.com/" + key + "?X-Amz-Signature=test", nil
}

// fakeDrafter returns a canned slide.
type fakeDrafter struct {
	slide      *models.Slide
	err        error
	lastPrompt string
}

func (f *fakeDrafter) Generate(_ context.Context, prompt string, _ *models.Context) (*models.Slide, error) {
	f.lastPrompt = prompt
	return f.slide, f.err
}

// testRouter mounts the API routes.
func testRouter(a *API) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/slides/process", a.ProcessSlide)
	r.Post("/api/slides/generate", a.GenerateSlide)
	r.Route("/api/decks/{deckID}", func(r chi.Router) {
		r.Post("/process", a.ProcessDeck)
		r.Get("/slides", a.ListSlides)
		r.Delete("/cache", a.InvalidateCache)
		r.Post("/export", a.ExportDeck)
		r.Get("/export", a.LatestExport)
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeResponse(t, rr, &body)
	return body.Error
}

// slideResponse mirrors pipeline.SlideResult for decoding.
type slideResponse struct {
	Slide  *models.Slide `json:"slide"`
	Report struct {
		Applied []string `json:"applied"`
		Skipped []string `json:"skipped"`
	} `json:"report"`
}

func textSlide(text string) string {
	return `{"components":[{"type":"TextBlock","props":{"texts":[{"text":"` + text + `","fontSize":32}]}}]}`
}

func firstText(s *models.Slide) string {
	for _, c := range s.Components {
		if c.Type == models.TypeTextBlock {
			return c.Text()
		}
	}
	return ""
}

var errStoreDown = errors.New("store down")

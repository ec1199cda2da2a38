// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"slidepress/internal/layout"
	"slidepress/internal/models"
)

// LayoutCache memoizes per-deck layout lookups: the resolved colour set and
// the structure chosen for each slide type. Entries are keyed by deck ID,
// bounded by an LRU, and tied to the theme and palette they were computed
// from, so a deck whose theme changes recomputes on its own.
type LayoutCache struct {
	decks   *lru.Cache[string, *deckLayout]
	metrics *Metrics
}

type deckLayout struct {
	mu         sync.Mutex
	theme      *models.Theme
	palette    *models.Palette
	colors     *layout.Colors
	structures map[string]*models.ThemeStructure
}

// NewLayoutCache creates a cache holding up to size decks.
func NewLayoutCache(size int, m *Metrics) (*LayoutCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("layout cache size must be positive, got %d", size)
	}
	decks, err := lru.New[string, *deckLayout](size)
	if err != nil {
		return nil, fmt.Errorf("create layout cache: %w", err)
	}
	return &LayoutCache{decks: decks, metrics: m}, nil
}

func (c *LayoutCache) deck(deckID string) *deckLayout {
	if d, ok := c.decks.Get(deckID); ok {
		return d
	}
	fresh := &deckLayout{}
	if prev, ok, _ := c.decks.PeekOrAdd(deckID, fresh); ok {
		return prev
	}
	return fresh
}

// reset drops memoized values computed for a different theme or palette.
// Callers hold d.mu.
func (d *deckLayout) reset(theme *models.Theme, palette *models.Palette) {
	if d.theme == theme && d.palette == palette {
		return
	}
	d.theme, d.palette = theme, palette
	d.colors = nil
	d.structures = nil
}

// Colors returns the resolved colour set for a deck. An empty deck ID
// bypasses the cache.
func (c *LayoutCache) Colors(deckID string, theme *models.Theme, palette *models.Palette) *layout.Colors {
	if c == nil || deckID == "" {
		return layout.ResolveColors(theme, palette)
	}
	d := c.deck(deckID)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset(theme, palette)
	if d.colors != nil {
		c.metrics.incCache("hit")
		return d.colors
	}
	c.metrics.incCache("miss")
	d.colors = layout.ResolveColors(theme, palette)
	return d.colors
}

// Structure returns the theme structure for a slide type, memoized per
// deck. Lookup falls back to the "default" structure.
func (c *LayoutCache) Structure(deckID string, theme *models.Theme, palette *models.Palette, slideType string) *models.ThemeStructure {
	if c == nil || deckID == "" {
		return themeStructure(theme, slideType)
	}
	d := c.deck(deckID)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset(theme, palette)
	if s, ok := d.structures[slideType]; ok {
		return s
	}
	s := themeStructure(theme, slideType)
	if d.structures == nil {
		d.structures = make(map[string]*models.ThemeStructure)
	}
	d.structures[slideType] = s
	return s
}

// Invalidate forgets everything cached for a deck.
func (c *LayoutCache) Invalidate(deckID string) {
	if c == nil {
		return
	}
	if c.decks.Remove(deckID) {
		slog.Debug("layout cache invalidated", "deck_id", deckID)
	}
}

// Len reports how many decks are cached.
func (c *LayoutCache) Len() int {
	if c == nil {
		return 0
	}
	return c.decks.Len()
}

func themeStructure(theme *models.Theme, slideType string) *models.ThemeStructure {
	if theme == nil || len(theme.SlideStructures) == 0 {
		return nil
	}
	if s, ok := theme.SlideStructures[slideType]; ok && s != nil {
		return s
	}
	return theme.SlideStructures["default"]
}

// slideType classifies a slide for structure lookup.
func slideType(sctx *models.Context) string {
	if t := strings.ToLower(strings.TrimSpace(sctx.SlideOutline.Type)); t != "" {
		return t
	}
	if sctx.SlideIndex == 0 {
		return "title"
	}
	return "content"
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"slidepress/internal/models"
)

// SlideInput is one slide of a deck together with its context.
type SlideInput struct {
	Slide   *models.Slide   `json:"slide"`
	Context *models.Context `json:"context"`
}

// SlideResult is a processed slide and its report.
type SlideResult struct {
	Slide  *models.Slide `json:"slide"`
	Report *Report       `json:"report"`
}

// SlideFunc processes the slide at index i of a deck.
type SlideFunc func(ctx context.Context, i int, in SlideInput) (SlideResult, error)

// DefaultDeckConcurrency bounds concurrent slides when no limit is given.
const DefaultDeckConcurrency = 4

// ProcessDeck runs fn over every slide with at most limit slides in flight
// and returns the results in input order. The first error cancels the
// remaining slides.
func ProcessDeck(ctx context.Context, inputs []SlideInput, limit int, fn SlideFunc) ([]SlideResult, error) {
	if limit <= 0 {
		limit = DefaultDeckConcurrency
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([]SlideResult, len(inputs))
	for i, in := range inputs {
		g.Go(func() error {
			res, err := fn(ctx, i, in)
			if err != nil {
				return fmt.Errorf("slide %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ProcessDeck runs the pipeline over a whole deck. Each slide is scoped to
// deckID so layout lookups are shared between its slides.
func (p *Pipeline) ProcessDeck(ctx context.Context, deckID string, inputs []SlideInput, limit int) ([]SlideResult, error) {
	return ProcessDeck(ctx, inputs, limit, func(ctx context.Context, i int, in SlideInput) (SlideResult, error) {
		sctx := ScopeContext(in.Context, deckID, i)
		s, r, err := p.Process(ctx, in.Slide, sctx)
		if err != nil {
			return SlideResult{}, err
		}
		return SlideResult{Slide: s, Report: r}, nil
	})
}

// ScopeContext returns a copy of sctx bound to deckID. Inside a deck the
// slide index is always the slide's position; an index carried by the
// context is overridden so numbering matches the persisted order.
func ScopeContext(sctx *models.Context, deckID string, index int) *models.Context {
	var c models.Context
	if sctx != nil {
		c = *sctx
	}
	c.DeckID = deckID
	c.SlideIndex = index
	return &c
}

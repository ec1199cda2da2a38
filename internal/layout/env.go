// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package layout implements the slide post-processing passes: component
// normalisation, background enforcement, structural placement of title,
// subtitle, logo, slide number and sources, divider normalisation,
// icon/text pairing, hero decluttering and theme enforcement.
//
// Each pass works on a component slice and never reaches outside the slide
// it was given. Passes are written to be re-runnable: applying one twice
// leaves the second run with nothing to change.
package layout

import (
	"errors"

	"slidepress/internal/geometry"
	"slidepress/internal/models"
)

// ErrNoTheme is returned by passes that have nothing to apply without a
// theme. Callers treat it as a skip, not a failure.
var ErrNoTheme = errors.New("layout: no theme available")

// Fallback content column when the structure does not define one.
const (
	defaultContentX     = 80
	defaultContentY     = 220
	defaultContentWidth = geometry.CanvasWidth - 2*defaultContentX
	defaultTitleY       = 96
)

// Env is the read-only input shared by the passes for one slide.
type Env struct {
	Context    *models.Context
	Theme      *models.Theme
	Palette    *models.Palette
	Structure  *models.ThemeStructure
	Colors     *Colors
	Heuristics Heuristics

	// LineStyler resolves the divider colour. Nil uses the fallback.
	LineStyler LineStyler
}

// NewEnv assembles an Env, resolving colours when none are supplied.
func NewEnv(ctx *models.Context, theme *models.Theme, palette *models.Palette, structure *models.ThemeStructure, colors *Colors, h Heuristics) *Env {
	if ctx == nil {
		ctx = &models.Context{}
	}
	if colors == nil {
		colors = ResolveColors(theme, palette)
	}
	return &Env{
		Context:    ctx,
		Theme:      theme,
		Palette:    palette,
		Structure:  structure,
		Colors:     colors,
		Heuristics: h,
	}
}

// contentArea returns the structure's content column with defaults filled.
// ySet reports whether the structure supplied y explicitly.
func (e *Env) contentArea() (x, y, width int, ySet bool) {
	x, y, width = defaultContentX, defaultContentY, defaultContentWidth
	if e == nil || e.Structure == nil || e.Structure.Positioning.ContentArea == nil {
		return x, y, width, false
	}
	ca := e.Structure.Positioning.ContentArea
	x = ca.X.Int(x)
	width = ca.Width.Int(width)
	if width <= 0 {
		width = defaultContentWidth
	}
	if ca.Y.Valid() {
		return x, ca.Y.Int(y), width, true
	}
	return x, y, width, false
}

func (e *Env) slideIndex() int {
	if e == nil || e.Context == nil {
		return 0
	}
	return e.Context.SlideIndex
}

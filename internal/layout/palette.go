// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"slidepress/internal/geometry"
	"slidepress/internal/models"
)

// Colors is the resolved colour scheme for a slide: theme roles, possibly
// overridden by the deck palette, plus the set of colours considered
// on-palette.
type Colors struct {
	Background          string
	SecondaryBackground string
	Text                string
	SecondaryText       string
	Accent1             string
	Accent2             string

	// PaletteOverrides is true when the deck palette won over the theme.
	PaletteOverrides bool

	allowed map[string]struct{}
}

// PaletteMayOverride applies the palette precedence rule. Brand palettes
// always win. Generic database palettes win only when the theme itself is
// not brand-sourced. Anything else (AI palettes) never overrides.
func PaletteMayOverride(theme *models.Theme, palette *models.Palette) bool {
	if palette == nil {
		return false
	}
	if len(palette.Colors) == 0 && len(palette.Backgrounds) == 0 && palette.TextColors == nil {
		return false
	}
	if palette.Source.IsBrand() {
		return true
	}
	if palette.Source.IsGenericDatabase() {
		return theme == nil || !theme.ColorPalette.IsBrandSourced()
	}
	return false
}

// ResolveColors merges theme and palette into a Colors value.
func ResolveColors(theme *models.Theme, palette *models.Palette) *Colors {
	c := &Colors{allowed: make(map[string]struct{})}

	if theme != nil {
		cp := theme.ColorPalette
		c.Background = normalizedOr(cp.PrimaryBackground, "")
		c.SecondaryBackground = normalizedOr(cp.SecondaryBackground, "")
		c.Text = normalizedOr(cp.PrimaryText, "")
		c.SecondaryText = normalizedOr(cp.SecondaryText, "")
		c.Accent1 = normalizedOr(cp.Accent1, "")
		c.Accent2 = normalizedOr(cp.Accent2, "")
		c.allow(cp.Colors()...)
	}

	if PaletteMayOverride(theme, palette) || (theme == nil && palette != nil) {
		c.allow(palette.Colors...)
		c.allow(palette.Backgrounds...)
		if palette.TextColors != nil {
			c.allow(palette.TextColors.Primary, palette.TextColors.Secondary)
		}
	}

	if PaletteMayOverride(theme, palette) {
		c.PaletteOverrides = true
		if bg := firstValid(palette.Backgrounds); bg != "" {
			c.Background = bg
		}
		if len(palette.Backgrounds) > 1 {
			c.SecondaryBackground = normalizedOr(palette.Backgrounds[1], c.SecondaryBackground)
		}
		accents := validColors(palette.Colors)
		if len(accents) > 0 {
			c.Accent1 = accents[0]
		}
		if len(accents) > 1 {
			c.Accent2 = accents[1]
		}
		if palette.TextColors != nil {
			c.Text = normalizedOr(palette.TextColors.Primary, c.Text)
			c.SecondaryText = normalizedOr(palette.TextColors.Secondary, c.SecondaryText)
		}
	}

	if c.Accent2 == "" {
		c.Accent2 = c.Accent1
	}
	if c.SecondaryText == "" {
		c.SecondaryText = c.Text
	}

	// Corner-fade gradients darken their base; those shades are on-palette.
	for _, base := range []string{c.Background, c.SecondaryBackground} {
		if base != "" {
			d := geometry.DarkenSubtly(base)
			c.allow(d, geometry.DarkenSubtly(d))
		}
	}
	return c
}

// Allows reports whether colour is on-palette. With no palette information
// every colour is allowed.
func (c *Colors) Allows(colour string) bool {
	if c == nil || len(c.allowed) == 0 {
		return true
	}
	n, ok := geometry.NormalizeHex(colour)
	if !ok {
		return false
	}
	_, in := c.allowed[n]
	return in
}

// HasPalette reports whether any colour information was available.
func (c *Colors) HasPalette() bool {
	return c != nil && len(c.allowed) > 0
}

func (c *Colors) allow(colours ...string) {
	for _, col := range colours {
		if n, ok := geometry.NormalizeHex(col); ok {
			c.allowed[n] = struct{}{}
		}
	}
}

func normalizedOr(colour, fallback string) string {
	if n, ok := geometry.NormalizeHex(colour); ok {
		return n
	}
	return fallback
}

func firstValid(colours []string) string {
	for _, col := range colours {
		if n, ok := geometry.NormalizeHex(col); ok {
			return n
		}
	}
	return ""
}

func validColors(colours []string) []string {
	var out []string
	for _, col := range colours {
		if n, ok := geometry.NormalizeHex(col); ok {
			out = append(out, n)
		}
	}
	return out
}

// brightest returns the palette colour with the highest luminance.
func brightest(colours []string) string {
	best, bestL := "", -1.0
	for _, col := range validColors(colours) {
		if l := geometry.EstimateBrightness(col); l > bestL {
			best, bestL = col, l
		}
	}
	return best
}

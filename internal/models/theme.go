// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// Theme is the deck-wide colour and typography brief.
type Theme struct {
	Name            string                     `json:"theme_name,omitempty"`
	ColorPalette    ColorPalette               `json:"color_palette"`
	Typography      Typography                 `json:"typography"`
	SlideStructures map[string]*ThemeStructure `json:"slide_structures,omitempty"`

	Extra Extras `json:"-"`
}

type themeAlias Theme

// UnmarshalJSON decodes leniently.
func (t *Theme) UnmarshalJSON(b []byte) error {
	var a themeAlias
	extra, err := decodeLenient(b, &a)
	if err == errNotObject {
		*t = Theme{}
		return nil
	}
	if err != nil {
		return err
	}
	*t = Theme(a)
	t.Extra = extra
	return nil
}

// MarshalJSON re-emits unknown keys.
func (t Theme) MarshalJSON() ([]byte, error) {
	return encodeWithExtras(themeAlias(t), t.Extra)
}

// ColorPalette is the theme's named colour roles.
type ColorPalette struct {
	PrimaryBackground   string          `json:"primary_background,omitempty"`
	SecondaryBackground string          `json:"secondary_background,omitempty"`
	PrimaryText         string          `json:"primary_text,omitempty"`
	SecondaryText       string          `json:"secondary_text,omitempty"`
	Accent1             string          `json:"accent_1,omitempty"`
	Accent2             string          `json:"accent_2,omitempty"`
	Accent3             string          `json:"accent_3,omitempty"`
	Source              string          `json:"source,omitempty"`
	Gradients           []ThemeGradient `json:"gradients,omitempty"`

	Extra Extras `json:"-"`
}

type colorPaletteAlias ColorPalette

// UnmarshalJSON decodes leniently.
func (c *ColorPalette) UnmarshalJSON(b []byte) error {
	var a colorPaletteAlias
	extra, err := decodeLenient(b, &a)
	if err == errNotObject {
		*c = ColorPalette{}
		return nil
	}
	if err != nil {
		return err
	}
	*c = ColorPalette(a)
	c.Extra = extra
	return nil
}

// MarshalJSON re-emits unknown keys.
func (c ColorPalette) MarshalJSON() ([]byte, error) {
	return encodeWithExtras(colorPaletteAlias(c), c.Extra)
}

// Colors lists every colour the palette names, gradients included.
func (c ColorPalette) Colors() []string {
	out := []string{
		c.PrimaryBackground, c.SecondaryBackground,
		c.PrimaryText, c.SecondaryText,
		c.Accent1, c.Accent2, c.Accent3,
	}
	for _, g := range c.Gradients {
		out = append(out, g.Colors...)
	}
	return out
}

// IsBrandSourced reports whether the theme palette came from a brand source.
// This is a substring check on purpose; sources are free text.
func (c ColorPalette) IsBrandSourced() bool {
	return strings.Contains(strings.ToLower(c.Source), "brand")
}

// ThemeGradient is a named multi-colour gradient from the theme.
type ThemeGradient struct {
	Name   string   `json:"name,omitempty"`
	Type   string   `json:"type,omitempty"`
	Colors []string `json:"colors"`
}

// Typography holds the theme fonts.
type Typography struct {
	HeroTitle FontSpec `json:"hero_title"`
	BodyText  FontSpec `json:"body_text"`
}

// FontSpec names a font family and optional default size.
type FontSpec struct {
	Family string `json:"family,omitempty"`
	Size   *Num   `json:"size,omitempty"`
	Weight string `json:"weight,omitempty"`
}

// PaletteSource says where a palette came from.
type PaletteSource string

const (
	PaletteSourceDatabase      PaletteSource = "database"
	PaletteSourceTopicDatabase PaletteSource = "topic_database"
	PaletteSourceBrandDatabase PaletteSource = "brand_database"
	PaletteSourceWebScrape     PaletteSource = "web_scrape"
	PaletteSourceAIGenerated   PaletteSource = "ai_generated"
)

// IsBrand reports whether the palette is authoritative brand data.
func (s PaletteSource) IsBrand() bool {
	return s == PaletteSourceBrandDatabase || s == PaletteSourceWebScrape ||
		strings.Contains(strings.ToLower(string(s)), "brand")
}

// IsGenericDatabase reports whether the palette is a topic match from the
// colour database rather than brand data.
func (s PaletteSource) IsGenericDatabase() bool {
	return s == PaletteSourceDatabase || s == PaletteSourceTopicDatabase
}

// Palette is a deck-level colour list with provenance.
type Palette struct {
	Name        string        `json:"name,omitempty"`
	Source      PaletteSource `json:"source,omitempty"`
	Colors      []string      `json:"colors,omitempty"`
	Backgrounds []string      `json:"backgrounds,omitempty"`
	TextColors  *PaletteText  `json:"text_colors,omitempty"`

	Extra Extras `json:"-"`
}

type paletteAlias Palette

// UnmarshalJSON decodes leniently.
func (p *Palette) UnmarshalJSON(b []byte) error {
	var a paletteAlias
	extra, err := decodeLenient(b, &a)
	if err == errNotObject {
		*p = Palette{}
		return nil
	}
	if err != nil {
		return err
	}
	*p = Palette(a)
	p.Extra = extra
	return nil
}

// MarshalJSON re-emits unknown keys.
func (p Palette) MarshalJSON() ([]byte, error) {
	return encodeWithExtras(paletteAlias(p), p.Extra)
}

// PaletteText holds palette text colours.
type PaletteText struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

// ThemePanel is the frontend-facing summary of a theme.
type ThemePanel struct {
	Name   string           `json:"name,omitempty"`
	Colors ThemePanelColors `json:"colors"`
	Fonts  ThemePanelFonts  `json:"fonts"`

	Extra Extras `json:"-"`
}

type themePanelAlias ThemePanel

// UnmarshalJSON decodes leniently.
func (t *ThemePanel) UnmarshalJSON(b []byte) error {
	var a themePanelAlias
	extra, err := decodeLenient(b, &a)
	if err == errNotObject {
		*t = ThemePanel{}
		return nil
	}
	if err != nil {
		return err
	}
	*t = ThemePanel(a)
	t.Extra = extra
	return nil
}

// MarshalJSON re-emits unknown keys.
func (t ThemePanel) MarshalJSON() ([]byte, error) {
	return encodeWithExtras(themePanelAlias(t), t.Extra)
}

// ThemePanelColors are the colours the editor exposes.
type ThemePanelColors struct {
	Background          string `json:"background,omitempty"`
	SecondaryBackground string `json:"secondaryBackground,omitempty"`
	Text                string `json:"text,omitempty"`
	SecondaryText       string `json:"secondaryText,omitempty"`
	Accent              string `json:"accent,omitempty"`
	SecondaryAccent     string `json:"secondaryAccent,omitempty"`
}

// ThemePanelFonts are the fonts the editor exposes.
type ThemePanelFonts struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
}

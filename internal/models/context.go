// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "slidepress/internal/jsonx"

// Context is everything the pipeline knows about the slide besides its own
// JSON. It is scoped to one slide and never shared between slides.
type Context struct {
	DeckID       string             `json:"deck_id,omitempty"`
	SlideIndex   int                `json:"slide_index"`
	SlideOutline SlideOutline       `json:"slide_outline"`
	DeckOutline  DeckOutline        `json:"deck_outline"`
	Theme        *Theme             `json:"theme,omitempty"`
	Palette      *Palette           `json:"palette,omitempty"`
	Structure    *ThemeStructure    `json:"theme_structure,omitempty"`
	TaggedMedia  []jsonx.RawMessage `json:"tagged_media,omitempty"`
}

// SlideOutline is the planned content of one slide.
type SlideOutline struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Type    string `json:"type,omitempty"`
}

// DeckOutline is the deck-level plan.
type DeckOutline struct {
	ID               string            `json:"id,omitempty"`
	Title            string            `json:"title,omitempty"`
	StylePreferences *StylePreferences `json:"stylePreferences,omitempty"`
}

// StylePreferences carries user style choices for the deck.
type StylePreferences struct {
	LogoURL string `json:"logoUrl,omitempty"`
}

// LogoURL returns the preferred logo URL, if any.
func (d DeckOutline) LogoURL() string {
	if d.StylePreferences == nil {
		return ""
	}
	return d.StylePreferences.LogoURL
}

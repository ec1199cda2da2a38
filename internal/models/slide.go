// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the slide data the layout pipeline reads and
// writes: slides, typed component props, themes, palettes, per-slide
// structure briefs and the generation context.
package models

import (
	"fmt"

	"slidepress/internal/jsonx"
)

// Slide is one generated slide. It is created per generation call and
// mutated by every pipeline pass.
type Slide struct {
	Components     []Component     `json:"components"`
	ThemePanel     *ThemePanel     `json:"theme_panel,omitempty"`
	Theme          *Theme          `json:"theme,omitempty"`
	Palette        *Palette        `json:"palette,omitempty"`
	ThemeStructure *ThemeStructure `json:"theme_structure,omitempty"`
	GeneratedAt    string          `json:"generated_at,omitempty"`

	Extra Extras `json:"-"`
}

type slideAlias Slide

// UnmarshalJSON requires an object; unknown keys are kept.
func (s *Slide) UnmarshalJSON(b []byte) error {
	var a slideAlias
	extra, err := decodeLenient(b, &a)
	if err != nil {
		return fmt.Errorf("decode slide: %w", err)
	}
	*s = Slide(a)
	s.Extra = extra
	return nil
}

// MarshalJSON re-emits unknown keys. A nil component list is written as [].
func (s Slide) MarshalJSON() ([]byte, error) {
	if s.Components == nil {
		s.Components = []Component{}
	}
	return encodeWithExtras(slideAlias(s), s.Extra)
}

// Clone returns a deep copy of s.
func (s *Slide) Clone() (*Slide, error) {
	b, err := jsonx.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("clone slide: %w", err)
	}
	var out Slide
	if err := jsonx.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("clone slide: %w", err)
	}
	return &out, nil
}

// CountType returns how many components have type t.
func (s *Slide) CountType(t ComponentType) int {
	n := 0
	for i := range s.Components {
		if s.Components[i].Type == t {
			n++
		}
	}
	return n
}

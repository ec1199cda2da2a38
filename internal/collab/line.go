// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package collab

import (
	"strings"

	"slidepress/internal/geometry"
	"slidepress/internal/layout"
	"slidepress/internal/models"
)

// minDividerContrast keeps dividers visible without competing with text.
const minDividerContrast = 1.5

// SmartLineStyler picks divider colours that stand out from the slide
// background.
type SmartLineStyler struct {
	colors *layout.Colors
}

// NewSmartLineStyler creates a styler for one slide's resolved colours.
func NewSmartLineStyler(colors *layout.Colors) *SmartLineStyler {
	return &SmartLineStyler{colors: colors}
}

// ResolveLineColor walks color_priority, then theme_colors, and returns the
// first candidate with enough contrast against the background. Entries in
// color_priority may be hex values or palette role names such as
// "accent_1". When nothing qualifies, the best-contrast candidate wins,
// and fallback is used when there are no candidates at all.
func (s *SmartLineStyler) ResolveLineColor(style *models.DividerSpec, fallback string) string {
	var candidates []string
	if style != nil {
		for _, p := range style.ColorPriority {
			if c := s.lookup(p); c != "" {
				candidates = append(candidates, c)
			}
		}
		for _, p := range style.ThemeColors {
			if c, ok := geometry.NormalizeHex(p); ok {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		if c, ok := geometry.NormalizeHex(fallback); ok {
			return c
		}
		return fallback
	}

	bg := s.background()
	if bg == "" {
		return candidates[0]
	}
	best, bestRatio := candidates[0], 0.0
	for _, c := range candidates {
		r := geometry.ContrastRatio(c, bg)
		if r >= minDividerContrast {
			return c
		}
		if r > bestRatio {
			best, bestRatio = c, r
		}
	}
	return best
}

func (s *SmartLineStyler) background() string {
	if s.colors == nil {
		return ""
	}
	return s.colors.Background
}

func (s *SmartLineStyler) lookup(name string) string {
	if c, ok := geometry.NormalizeHex(name); ok {
		return c
	}
	if s.colors == nil {
		return ""
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "accent_1", "accent1", "accent", "primary":
		return s.colors.Accent1
	case "accent_2", "accent2", "secondary":
		return s.colors.Accent2
	case "primary_text", "text":
		return s.colors.Text
	case "secondary_text":
		return s.colors.SecondaryText
	case "secondary_background":
		return s.colors.SecondaryBackground
	}
	return ""
}

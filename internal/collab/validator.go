// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package collab holds the collaborators the slide pipeline delegates to:
// schema validation with adaptive font sizing, theme adaptation for the
// editor, and divider colour selection.
package collab

import (
	"log/slog"
	"math"
	"strings"

	"slidepress/internal/models"
)

// TypeSpec describes what the renderer accepts for one component type.
type TypeSpec struct {
	// Text components carry font size limits.
	MinFontSize int
	MaxFontSize int

	// RequiresContent drops the component when it has nothing to show.
	RequiresContent bool
}

// Registry maps every renderable component type to its spec.
type Registry map[models.ComponentType]TypeSpec

// DefaultRegistry returns the component types the slide renderer supports.
func DefaultRegistry() Registry {
	text := TypeSpec{MinFontSize: 12, MaxFontSize: 96, RequiresContent: true}
	heading := TypeSpec{MinFontSize: 12, MaxFontSize: 160, RequiresContent: true}
	return Registry{
		models.TypeBackground:      {},
		models.TypeTitle:           heading,
		models.TypeSubtitle:        text,
		models.TypeHeading:         heading,
		models.TypeTiptapTextBlock: {MinFontSize: 12, MaxFontSize: 240, RequiresContent: true},
		models.TypeTextBlock:       text,
		models.TypeIcon:            {},
		models.TypeImage:           {},
		models.TypeShape:           {},
		models.TypeChart:           {},
		models.TypeTable:           {},
		models.TypeCustomComponent: {},
		models.TypeLines:           {},
	}
}

// Average glyph advance and line height as fractions of the font size,
// used to estimate how much box area a text needs.
const (
	glyphAdvance    = 0.5
	fitLineHeight   = 1.2
	fallbackMinFont = 12
)

// ComponentValidator checks components against a Registry and shrinks
// text that would overflow its box.
type ComponentValidator struct {
	registry Registry
}

// NewComponentValidator creates a validator. A nil registry uses
// DefaultRegistry.
func NewComponentValidator(registry Registry) *ComponentValidator {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &ComponentValidator{registry: registry}
}

// ValidateComponents drops components without a type and empty text
// boxes, clamps opacity, rotation and zIndex into range, and fits font
// sizes to their boxes. Unknown types are kept and logged so new renderer
// components are not lost.
func (v *ComponentValidator) ValidateComponents(comps []models.Component, theme *models.Theme) []models.Component {
	out := comps[:0]
	for i := range comps {
		c := comps[i]
		if strings.TrimSpace(string(c.Type)) == "" {
			slog.Warn("component dropped: missing type", "id", c.ID)
			continue
		}
		spec, known := v.registry[c.Type]
		if !known {
			slog.Warn("unknown component type kept", "id", c.ID, "type", c.Type)
		}
		if spec.RequiresContent && c.Type.IsText() && strings.TrimSpace(c.Text()) == "" && c.Role() == models.RoleNone {
			slog.Debug("empty text component dropped", "id", c.ID)
			continue
		}

		clampProps(&c)
		if c.Type.IsText() {
			fitFont(&c, spec, theme)
		}
		out = append(out, c)
	}
	return out
}

func clampProps(c *models.Component) {
	p := &c.Props
	if p.Opacity != nil {
		o := p.Opacity.Float(1)
		if o < 0 || o > 1 || !p.Opacity.Valid() {
			p.Opacity = models.N(math.Min(math.Max(o, 0), 1))
		}
	}
	if p.Rotation.Valid() {
		if r := p.Rotation.Float(0); r <= -360 || r >= 360 {
			p.Rotation = models.N(math.Mod(r, 360))
		}
	}
	if p.ZIndex != nil && (!p.ZIndex.IsInt() || p.ZIndex.Int(0) < 0) {
		p.ZIndex = models.NInt(max(p.ZIndex.Int(0), 0))
	}
}

// fitFont shrinks the font until the estimated text area fits the box.
// Segment sizes are scaled by the same factor to keep their proportions.
func fitFont(c *models.Component, spec TypeSpec, theme *models.Theme) {
	fs := c.FontSize()
	if fs <= 0 && theme != nil {
		fs = theme.Typography.BodyText.Size.Int(0)
	}
	if fs <= 0 {
		return
	}
	minFS := spec.MinFontSize
	if minFS <= 0 {
		minFS = fallbackMinFont
	}

	target := fs
	if spec.MaxFontSize > 0 && target > spec.MaxFontSize {
		target = spec.MaxFontSize
	}
	chars := len([]rune(strings.TrimSpace(c.Text())))
	w, h := c.Width(), c.Height()
	if chars > 0 && w > 0 && h > 0 {
		need := float64(chars) * glyphAdvance * fitLineHeight * float64(target*target)
		if need > float64(w*h) {
			target = int(math.Sqrt(float64(w*h) / (float64(chars) * glyphAdvance * fitLineHeight)))
		}
	}
	if target < minFS {
		target = minFS
	}
	if target == fs {
		return
	}

	scale := float64(target) / float64(fs)
	c.Props.FontSize = models.NInt(target)
	for s := range c.Props.Texts {
		seg := &c.Props.Texts[s]
		if v := seg.FontSize.Int(0); v > 0 {
			seg.FontSize = models.NInt(max(int(math.Round(float64(v)*scale)), minFS))
		}
	}
	slog.Debug("font size adapted", "id", c.ID, "from", fs, "to", target)
}

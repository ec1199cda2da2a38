// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"github.com/google/uuid"

	"slidepress/internal/geometry"
	"slidepress/internal/models"
)

const (
	backgroundTypeColor    = "color"
	backgroundTypeGradient = "gradient"
	fallbackBackground     = "#FFFFFF"
)

// EnsureBackground guarantees exactly one full-canvas Background at index 0.
// A missing background is created as a solid fill from the palette or
// theme. An existing background keeps its identity but has its base props
// restored, and its fill replaced by a palette-derived gradient when the
// current one is off palette. Other solid fills become corner-fade
// gradients whenever colour information is available; a solid fill that
// already matches the created or themed background is left alone.
func EnsureBackground(env *Env, comps []models.Component) ([]models.Component, error) {
	comps = keepFirstBackground(comps)
	if len(comps) == 0 || comps[0].Type != models.TypeBackground {
		return append([]models.Component{newBackground(initialFill(env))}, comps...), nil
	}

	bg := &comps[0]
	applyBackgroundBase(bg)
	if settledFill(env, bg) {
		return comps, nil
	}

	switch {
	case bg.Props.BackgroundType == backgroundTypeGradient:
		if !gradientOnPalette(env, bg.Props.Gradient) {
			bg.Props.Gradient = themeGradient(env, bg.Props.BackgroundColor)
		}
		bg.Props.BackgroundColor = ""
	case env.Colors.HasPalette():
		bg.Props.BackgroundType = backgroundTypeGradient
		bg.Props.Gradient = cornerFade(backgroundBase(env, bg.Props.BackgroundColor))
		bg.Props.BackgroundColor = ""
	default:
		if bg.Props.BackgroundType == "" {
			bg.Props.BackgroundType = backgroundTypeColor
		}
		if _, ok := geometry.NormalizeHex(bg.Props.BackgroundColor); !ok {
			bg.Props.BackgroundColor = fallbackBackground
		}
	}
	return comps, nil
}

// GuaranteeBackground is the late safety net: when an earlier pass lost the
// background, it is rebuilt the same way EnsureBackground would.
func GuaranteeBackground(env *Env, comps []models.Component) ([]models.Component, error) {
	for i := range comps {
		if comps[i].Type == models.TypeBackground {
			if i == 0 {
				return comps, nil
			}
			return keepFirstBackground(comps), nil
		}
	}
	return EnsureBackground(env, comps)
}

// keepFirstBackground drops every Background after the first and moves the
// survivor to index 0.
func keepFirstBackground(comps []models.Component) []models.Component {
	var (
		first *models.Component
		rest  = make([]models.Component, 0, len(comps))
	)
	for i := range comps {
		if comps[i].Type != models.TypeBackground {
			rest = append(rest, comps[i])
			continue
		}
		if first == nil {
			first = &comps[i]
		}
	}
	if first == nil {
		return rest
	}
	return append([]models.Component{*first}, rest...)
}

func newBackground(fill string) models.Component {
	bg := models.Component{ID: uuid.NewString(), Type: models.TypeBackground}
	bg.Props.BackgroundType = backgroundTypeColor
	bg.Props.BackgroundColor = fill
	applyBackgroundBase(&bg)
	return bg
}

func applyBackgroundBase(bg *models.Component) {
	bg.SetPosition(0, 0)
	bg.SetSize(geometry.CanvasWidth, geometry.CanvasHeight)
	bg.Props.ZIndex = models.NInt(0)
	if !bg.Props.Opacity.Valid() {
		bg.Props.Opacity = models.NInt(1)
	}
	if !bg.Props.Rotation.Valid() {
		bg.Props.Rotation = models.NInt(0)
	}
}

// settledFill reports whether bg is a solid fill this pass or the theme
// colour pass would produce itself.
func settledFill(env *Env, bg *models.Component) bool {
	if bg.Props.BackgroundType != backgroundTypeColor {
		return false
	}
	c, ok := geometry.NormalizeHex(bg.Props.BackgroundColor)
	if !ok {
		return false
	}
	return c == initialFill(env) || (env.Colors != nil && c == env.Colors.Background)
}

// initialFill picks the colour for a newly created background: the
// brightest colour of a database palette, then the theme background.
func initialFill(env *Env) string {
	if env.Palette != nil && env.Palette.Source == models.PaletteSourceDatabase {
		if c := brightest(env.Palette.Colors); c != "" {
			return c
		}
	}
	if env.Theme != nil {
		if c, ok := geometry.NormalizeHex(env.Theme.ColorPalette.PrimaryBackground); ok {
			return c
		}
	}
	return fallbackBackground
}

func gradientOnPalette(env *Env, g *models.Gradient) bool {
	if g == nil || len(g.Stops) == 0 {
		return false
	}
	for _, s := range g.Stops {
		if !env.Colors.Allows(s.Color) {
			return false
		}
	}
	return true
}

// themeGradient prefers the theme's first named gradient and otherwise
// fades a single base colour.
func themeGradient(env *Env, current string) *models.Gradient {
	if env.Theme != nil && len(env.Theme.ColorPalette.Gradients) > 0 {
		cols := validColors(env.Theme.ColorPalette.Gradients[0].Colors)
		if len(cols) >= 2 {
			g := &models.Gradient{Type: "radial", Position: "top-right"}
			for i, c := range cols {
				g.Stops = append(g.Stops, models.GradientStop{
					Color:    c,
					Position: float64(i*100) / float64(len(cols)-1),
				})
			}
			return g
		}
	}
	return cornerFade(backgroundBase(env, current))
}

func backgroundBase(env *Env, current string) string {
	if env.Colors.Background != "" {
		return env.Colors.Background
	}
	if c, ok := geometry.NormalizeHex(current); ok {
		return c
	}
	return fallbackBackground
}

// cornerFade builds a barely visible radial fade from base.
func cornerFade(base string) *models.Gradient {
	mid := geometry.DarkenSubtly(base)
	return &models.Gradient{
		Type:     "radial",
		Position: "top-right",
		Stops: []models.GradientStop{
			{Color: base, Position: 0},
			{Color: mid, Position: 60},
			{Color: geometry.DarkenSubtly(mid), Position: 100},
		},
	}
}

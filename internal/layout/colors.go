// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"slidepress/internal/models"
)

// EnforceThemeColors brings background, custom component, icon and shape
// colours in line with the resolved palette. Colours the model chose are
// kept when they are on-palette.
func EnforceThemeColors(env *Env, comps []models.Component) ([]models.Component, error) {
	if env.Theme == nil {
		return comps, ErrNoTheme
	}
	col := env.Colors
	body := FontCase(env.Theme.Typography.BodyText.Family)

	for i := range comps {
		c := &comps[i]
		p := &c.Props
		switch c.Type {
		case models.TypeBackground:
			if p.BackgroundType != backgroundTypeGradient && col.Background != "" {
				p.BackgroundColor = col.Background
			}

		case models.TypeCustomComponent:
			p.PrimaryColor = orDefault(p.PrimaryColor, col.Accent1)
			p.SecondaryColor = orDefault(p.SecondaryColor, col.Accent2)
			p.TextColor = orDefault(p.TextColor, col.Text)
			p.FontFamily = orDefault(p.FontFamily, body)

		case models.TypeIcon:
			if col.Accent1 != "" && (p.Color == "" || !col.Allows(p.Color)) {
				p.Color = col.Accent1
			}

		case models.TypeShape:
			if col.Accent1 == "" {
				continue
			}
			if p.Gradient != nil && !gradientOnPalette(env, p.Gradient) {
				p.Gradient = accentGradient(col)
			}
			if p.Fill != "" && !col.Allows(p.Fill) {
				p.Fill = col.Accent1
			}
		}
	}
	return comps, nil
}

func accentGradient(col *Colors) *models.Gradient {
	return &models.Gradient{
		Type:  "linear",
		Angle: models.NInt(135),
		Stops: []models.GradientStop{
			{Color: col.Accent1, Position: 0},
			{Color: col.Accent2, Position: 100},
		},
	}
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

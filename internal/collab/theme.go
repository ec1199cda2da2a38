// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package collab

import (
	"slidepress/internal/geometry"
	"slidepress/internal/layout"
	"slidepress/internal/models"
)

// ThemeAdapter translates the generation theme into the editor's theme
// panel and fills component styling the model left blank.
type ThemeAdapter struct{}

// BuildFrontendTheme derives the theme panel from a theme. It returns nil
// when there is no theme.
func (ThemeAdapter) BuildFrontendTheme(theme *models.Theme) *models.ThemePanel {
	if theme == nil {
		return nil
	}
	cp := theme.ColorPalette
	panel := &models.ThemePanel{
		Name: theme.Name,
		Colors: models.ThemePanelColors{
			Background:          hexOr(cp.PrimaryBackground, "#FFFFFF"),
			SecondaryBackground: hexOr(cp.SecondaryBackground, hexOr(cp.PrimaryBackground, "#FFFFFF")),
			Text:                hexOr(cp.PrimaryText, "#111827"),
			SecondaryText:       hexOr(cp.SecondaryText, hexOr(cp.PrimaryText, "#4B5563")),
			Accent:              hexOr(cp.Accent1, "#2563EB"),
			SecondaryAccent:     hexOr(cp.Accent2, hexOr(cp.Accent1, "#2563EB")),
		},
		Fonts: models.ThemePanelFonts{
			Heading: layout.FontCase(theme.Typography.HeroTitle.Family),
			Body:    layout.FontCase(theme.Typography.BodyText.Family),
		},
	}
	if panel.Fonts.Heading == "" {
		panel.Fonts.Heading = panel.Fonts.Body
	}
	if panel.Fonts.Body == "" {
		panel.Fonts.Body = panel.Fonts.Heading
	}
	return panel
}

// ApplyThemeToComponents fills absent colours and fonts from the panel.
// Values already present are never overwritten. With neither a panel nor
// a theme the components are returned unchanged.
func (a ThemeAdapter) ApplyThemeToComponents(comps []models.Component, panel *models.ThemePanel, theme *models.Theme) []models.Component {
	if panel == nil {
		panel = a.BuildFrontendTheme(theme)
	}
	if panel == nil {
		return comps
	}
	pc := panel.Colors

	for i := range comps {
		p := &comps[i].Props
		switch t := comps[i].Type; {
		case t.IsText():
			font := panel.Fonts.Body
			if t == models.TypeTitle || t == models.TypeHeading || comps[i].Role() == models.RoleTitle {
				font = panel.Fonts.Heading
			}
			if p.FontFamily == "" {
				p.FontFamily = font
			}
			if len(p.Texts) == 0 && p.Color == "" {
				p.Color = pc.Text
			}
			for s := range p.Texts {
				if p.Texts[s].Color == "" {
					p.Texts[s].Color = pc.Text
				}
			}
		case t == models.TypeLines:
			if p.Stroke == "" {
				p.Stroke = pc.Accent
			}
		case t == models.TypeShape:
			if p.Fill == "" && p.Gradient == nil {
				p.Fill = pc.Accent
			}
		case t == models.TypeIcon:
			if p.Color == "" {
				p.Color = pc.Accent
			}
		case t == models.TypeCustomComponent:
			if p.PrimaryColor == "" {
				p.PrimaryColor = pc.Accent
			}
			if p.SecondaryColor == "" {
				p.SecondaryColor = pc.SecondaryAccent
			}
			if p.TextColor == "" {
				p.TextColor = pc.Text
			}
		}
	}
	return comps
}

func hexOr(c, fallback string) string {
	if n, ok := geometry.NormalizeHex(c); ok {
		return n
	}
	return fallback
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package collab

import (
	"strings"
	"testing"

	"slidepress/internal/layout"
	"slidepress/internal/models"
)

func textComp(id, text string, w, h, fontSize int) models.Component {
	c := models.Component{ID: id, Type: models.TypeTextBlock}
	c.SetSize(w, h)
	c.Props.Texts = []models.TextSegment{{Text: text, FontSize: models.NInt(fontSize)}}
	return c
}

func TestValidateComponents_Drops(t *testing.T) {
	untyped := models.Component{ID: "x"}
	empty := textComp("empty", "  ", 100, 100, 20)
	number := textComp("num", "", 100, 40, 18)
	number.Meta().Role = models.RoleSlideNumber
	video := models.Component{ID: "video", Type: "Video"}

	out := NewComponentValidator(nil).ValidateComponents([]models.Component{untyped, empty, number, video}, nil)
	var ids []string
	for _, c := range out {
		ids = append(ids, c.ID)
	}
	if strings.Join(ids, ",") != "num,video" {
		t.Errorf("kept = %v, want [num video]", ids)
	}
}

func TestValidateComponents_ClampsProps(t *testing.T) {
	c := models.Component{ID: "s", Type: models.TypeShape}
	c.Props.Opacity = models.N(1.7)
	c.Props.Rotation = models.NInt(450)
	c.Props.ZIndex = models.NInt(-3)

	out := NewComponentValidator(nil).ValidateComponents([]models.Component{c}, nil)
	p := out[0].Props
	if p.Opacity.Float(0) != 1 || p.Rotation.Float(0) != 90 || p.ZIndex.Int(-1) != 0 {
		t.Errorf("opacity=%v rotation=%v zIndex=%v", p.Opacity.Float(0), p.Rotation.Float(0), p.ZIndex.Int(-1))
	}
}

func TestValidateComponents_AdaptiveFontSize(t *testing.T) {
	tests := []struct {
		name string
		comp models.Component
		want int
	}{
		{name: "fits", comp: textComp("a", "Hello", 1760, 120, 48), want: 48},
		{name: "overflows", comp: textComp("b", strings.Repeat("word ", 200), 800, 200, 48), want: 16},
		{name: "floor at minimum", comp: textComp("c", strings.Repeat("word ", 2000), 200, 100, 48), want: 12},
		{name: "type maximum", comp: textComp("d", "Hi", 1760, 800, 300), want: 96},
	}
	v := NewComponentValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := v.ValidateComponents([]models.Component{tt.comp}, nil)
			if got := out[0].FontSize(); got != tt.want {
				t.Errorf("font size = %d, want %d", got, tt.want)
			}
			again := v.ValidateComponents(out, nil)
			if got := again[0].FontSize(); got != tt.want {
				t.Errorf("second run font size = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildFrontendTheme(t *testing.T) {
	var a ThemeAdapter
	if a.BuildFrontendTheme(nil) != nil {
		t.Error("nil theme should build no panel")
	}
	panel := a.BuildFrontendTheme(&models.Theme{
		Name:         "Ocean",
		ColorPalette: models.ColorPalette{PrimaryBackground: "0b1220", Accent1: "#38bdf8"},
		Typography:   models.Typography{BodyText: models.FontSpec{Family: "source sans pro"}},
	})
	if panel.Colors.Background != "#0B1220" || panel.Colors.Accent != "#38BDF8" || panel.Colors.SecondaryAccent != "#38BDF8" {
		t.Errorf("colors = %+v", panel.Colors)
	}
	if panel.Fonts.Body != "Source Sans Pro" || panel.Fonts.Heading != "Source Sans Pro" {
		t.Errorf("fonts = %+v", panel.Fonts)
	}
}

func TestApplyThemeToComponents_FillsOnlyAbsent(t *testing.T) {
	panel := &models.ThemePanel{
		Colors: models.ThemePanelColors{Text: "#111111", Accent: "#2563EB", SecondaryAccent: "#F59E0B"},
		Fonts:  models.ThemePanelFonts{Heading: "Lora", Body: "Inter"},
	}
	title := models.Component{ID: "t", Type: models.TypeTitle}
	title.Props.Texts = []models.TextSegment{{Text: "T", Color: "#FF0000"}}
	body := models.Component{ID: "b", Type: models.TypeTextBlock}
	body.Props.FontFamily = "Courier"
	line := models.Component{ID: "l", Type: models.TypeLines}
	shape := models.Component{ID: "s", Type: models.TypeShape, Props: models.Props{Gradient: &models.Gradient{}}}

	out := ThemeAdapter{}.ApplyThemeToComponents([]models.Component{title, body, line, shape}, panel, nil)
	if out[0].Props.FontFamily != "Lora" || out[0].Props.Texts[0].Color != "#FF0000" {
		t.Errorf("title = %+v", out[0].Props)
	}
	if out[1].Props.FontFamily != "Courier" || out[1].Props.Color != "#111111" {
		t.Errorf("body = %+v", out[1].Props)
	}
	if out[2].Props.Stroke != "#2563EB" {
		t.Errorf("line stroke = %q", out[2].Props.Stroke)
	}
	if out[3].Props.Fill != "" {
		t.Error("gradient shape must not get a fill")
	}
}

func TestResolveLineColor(t *testing.T) {
	colors := layout.ResolveColors(&models.Theme{ColorPalette: models.ColorPalette{
		PrimaryBackground: "#FFFFFF",
		PrimaryText:       "#111827",
		Accent1:           "#FAFAFA",
		Accent2:           "#2563EB",
	}}, nil)
	s := NewSmartLineStyler(colors)

	tests := []struct {
		name  string
		style *models.DividerSpec
		want  string
	}{
		{name: "no style uses fallback", style: nil, want: "#10B981"},
		{name: "low contrast accent skipped", style: &models.DividerSpec{ColorPriority: []string{"accent_1", "accent_2"}}, want: "#2563EB"},
		{name: "theme colours after priority", style: &models.DividerSpec{ColorPriority: []string{"unknown"}, ThemeColors: []string{"#334155"}}, want: "#334155"},
		{name: "best of poor candidates", style: &models.DividerSpec{ThemeColors: []string{"#FFFFFF", "#F0F0F0"}}, want: "#F0F0F0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ResolveLineColor(tt.style, "#10b981"); got != tt.want {
				t.Errorf("ResolveLineColor = %q, want %q", got, tt.want)
			}
		})
	}
}

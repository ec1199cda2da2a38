// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"slidepress/internal/geometry"
	"slidepress/internal/models"
)

const (
	titleMinY          = 60
	titleMaxY          = 200
	titleMinHeight     = 100
	subtitleMinHeight  = 60
	defaultSubtitleGap = 30

	defaultLogoW = 160
	defaultLogoH = 80

	defaultNumberW        = 120
	defaultNumberH        = 40
	defaultNumberFontSize = 18
	defaultNumberOpacity  = 0.7

	defaultSourcesText     = "Sources: [1][2][3]"
	defaultSourcesW        = 1200
	defaultSourcesH        = 40
	defaultSourcesFontSize = 16
)

var slideNumberText = regexp.MustCompile(`^\s*#?\d{1,3}\s*(/\s*\d{1,3})?\s*$`)

// ApplyStructure places the title, subtitle, logo, slide number and sources
// according to the slide structure. Each region is handled on its own; a
// region that cannot be resolved is skipped without affecting the others.
// Structural regions use top-left anchoring.
func ApplyStructure(env *Env, comps []models.Component) ([]models.Component, error) {
	titleBottom := -1
	guard("title", func() { titleBottom = placeTitle(env, comps) })
	guard("subtitle", func() { placeSubtitle(env, comps, titleBottom) })

	if env.Structure.Includes(models.RegionLogo) {
		guard("logo", func() { comps = placeLogo(env, comps) })
	}
	if env.Structure.Includes(models.RegionSlideNumber) {
		guard("slide_number", func() { comps = placeSlideNumber(env, comps) })
	}
	guard("sources", func() { comps = placeSources(env, comps) })
	return comps, nil
}

func guard(region string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("structural region skipped", "region", region, "error", fmt.Sprint(r))
		}
	}()
	fn()
}

// findTitle prefers an explicit title and otherwise takes the text with
// the largest font size.
func findTitle(comps []models.Component) int {
	best, bestSize := -1, 0
	for i := range comps {
		c := &comps[i]
		if !c.Type.IsText() {
			continue
		}
		if c.Role() == models.RoleTitle || c.Type == models.TypeTitle {
			return i
		}
	}
	for i := range comps {
		c := &comps[i]
		if !c.Type.IsText() || c.Role() != models.RoleNone && c.Role() != models.RoleHero {
			continue
		}
		if fs := c.FontSize(); fs > bestSize {
			best, bestSize = i, fs
		}
	}
	return best
}

func findSubtitle(comps []models.Component, title int) int {
	for i := range comps {
		if i == title || !comps[i].Type.IsText() {
			continue
		}
		if comps[i].Role() == models.RoleSubtitle || comps[i].Type == models.TypeSubtitle {
			return i
		}
	}
	return -1
}

// headerHeight estimates a header's height, using font size when the
// component has none.
func headerHeight(c *models.Component, min int) int {
	h := c.Height()
	if h <= 0 {
		h = c.FontSize() * 12 / 10
	}
	if h < min {
		h = min
	}
	return h
}

func placeTitle(env *Env, comps []models.Component) int {
	i := findTitle(comps)
	if i < 0 {
		return -1
	}
	t := &comps[i]
	x, caY, width, caYSet := env.contentArea()

	y := defaultTitleY
	switch {
	case t.HasY():
		y = geometry.Clamp(t.Y(), titleMinY, titleMaxY)
	case caYSet && caY <= titleMaxY:
		y = geometry.Clamp(caY, titleMinY, titleMaxY)
	}
	t.SetPosition(x, y)
	t.Props.Width = models.NInt(width)
	if t.Height() <= 0 {
		t.Props.Height = models.NInt(defaultTextHeight)
	}

	no := false
	for s := range t.Props.Texts {
		t.Props.Texts[s].Underline = &no
	}
	if t.Role() == models.RoleNone {
		t.Meta().Role = models.RoleTitle
	}
	return y + headerHeight(t, titleMinHeight)
}

func placeSubtitle(env *Env, comps []models.Component, titleBottom int) {
	i := findSubtitle(comps, findTitle(comps))
	if i < 0 {
		return
	}
	s := &comps[i]
	s.Meta().Role = models.RoleSubtitle
	if s.Height() <= 0 {
		s.Props.Height = models.NInt(defaultTextHeight)
	}
	if titleBottom < 0 {
		return
	}
	gap := defaultSubtitleGap
	if env.Structure != nil && env.Structure.Positioning.Subtitle != nil {
		gap = env.Structure.Positioning.Subtitle.GapBelowTitle.Int(gap)
	}
	x, _, _, _ := env.contentArea()
	s.SetPosition(x, titleBottom+gap)
}

func isLogo(c *models.Component) bool {
	if c.Type != models.TypeImage {
		return false
	}
	if strings.EqualFold(c.Props.Alt, "logo") || c.Role() == models.RoleLogo {
		return true
	}
	return c.Props.Metadata != nil && strings.EqualFold(c.Props.Metadata.Kind, "logo")
}

func findLogo(comps []models.Component) int {
	for i := range comps {
		if isLogo(&comps[i]) {
			return i
		}
	}
	return -1
}

func placeLogo(env *Env, comps []models.Component) []models.Component {
	spec := env.Structure.Positioning.Logo
	if spec == nil {
		spec = &models.LogoSpec{}
	}
	i := findLogo(comps)
	if i < 0 {
		if spec.Src == "" {
			return comps
		}
		comps = append(comps, models.Component{ID: uuid.NewString(), Type: models.TypeImage})
		i = len(comps) - 1
	}
	logo := &comps[i]

	w, h := defaultLogoW, defaultLogoH
	if spec.Size != nil {
		w = spec.Size.Width.Int(w)
		h = spec.Size.Height.Int(h)
	}
	if strings.EqualFold(spec.Aspect, "square") {
		w = min(w, h)
		h = w
	}
	margin := env.Heuristics.CanvasMargin
	x, y := geometry.CanvasWidth-margin-w, margin
	if spec.Position != nil {
		x = spec.Position.X.Int(x)
		y = spec.Position.Y.Int(y)
	}
	logo.SetPosition(x, y)
	logo.SetSize(w, h)
	if spec.Src != "" {
		logo.Props.Src = spec.Src
	}
	if logo.Props.Alt == "" {
		logo.Props.Alt = "logo"
	}
	if logo.Props.ObjectFit == "" {
		logo.Props.ObjectFit = "contain"
	}
	m := logo.Meta()
	m.Role = models.RoleLogo
	m.Kind = "logo"
	return comps
}

func findSlideNumber(comps []models.Component) int {
	for i := range comps {
		if comps[i].Role() == models.RoleSlideNumber {
			return i
		}
	}
	for i := range comps {
		c := &comps[i]
		if c.Type.IsText() && c.Role() == models.RoleNone && slideNumberText.MatchString(c.Text()) {
			return i
		}
	}
	return -1
}

func placeSlideNumber(env *Env, comps []models.Component) []models.Component {
	spec := env.Structure.Positioning.SlideNumber
	if spec == nil {
		spec = &models.SlideNumberSpec{}
	}
	num := fmt.Sprintf("%02d", env.slideIndex()+1)

	i := findSlideNumber(comps)
	if i < 0 {
		comps = append(comps, models.Component{ID: uuid.NewString(), Type: models.TypeTextBlock})
		i = len(comps) - 1
		comps[i].SetText(num)
	}
	c := &comps[i]
	c.Meta().Role = models.RoleSlideNumber
	if spec.Text != "" {
		c.SetText(strings.NewReplacer("{n}", num, "{number}", num).Replace(spec.Text))
	}

	margin := env.Heuristics.CanvasMargin
	w, h := c.Width(), c.Height()
	if w <= 0 {
		w = defaultNumberW
	}
	if h <= 0 {
		h = defaultNumberH
	}
	x, y := geometry.CanvasWidth-margin-w, geometry.CanvasHeight-margin-h
	if spec.Position != nil {
		x = spec.Position.X.Int(x)
		y = spec.Position.Y.Int(y)
	}
	c.SetPosition(x, y)
	c.SetSize(w, h)

	fontSize, opacity := float64(defaultNumberFontSize), defaultNumberOpacity
	color := ""
	if spec.Style != nil {
		fontSize = spec.Style.FontSize.Float(fontSize)
		opacity = spec.Style.Opacity.Float(opacity)
		color = spec.Style.Color
	}
	applyTextStyle(c, fontSize, color)
	c.Props.Opacity = models.N(opacity)
	return comps
}

func findSources(comps []models.Component) int {
	for i := range comps {
		if comps[i].Role().IsSourcesLike() {
			return i
		}
	}
	return -1
}

func placeSources(env *Env, comps []models.Component) []models.Component {
	i := findSources(comps)
	if i < 0 && !env.Structure.Includes(models.RegionSources) {
		return comps
	}
	var spec *models.SourcesSpec
	if env.Structure != nil {
		spec = env.Structure.Positioning.Sources
	}
	if spec == nil {
		spec = &models.SourcesSpec{}
	}

	if i < 0 {
		comps = append(comps, models.Component{ID: uuid.NewString(), Type: models.TypeTextBlock})
		i = len(comps) - 1
		comps[i].SetText(defaultSourcesText)
		comps[i].Meta().Role = models.RoleSources
	}
	c := &comps[i]
	if !c.Type.IsText() {
		text := c.Text()
		c.Type = models.TypeTextBlock
		if text == "" {
			text = defaultSourcesText
		}
		c.SetText(text)
	}

	w := spec.Width.Int(defaultSourcesW)
	h := spec.Height.Int(defaultSourcesH)
	x, _, _, _ := env.contentArea()
	y := geometry.CanvasHeight - env.Heuristics.CanvasMargin - h
	if spec.Position != nil {
		x = spec.Position.X.Int(x)
		y = spec.Position.Y.Int(y)
	}
	c.SetPosition(x, y)
	c.SetSize(w, h)

	fontSize, color := float64(defaultSourcesFontSize), ""
	if spec.Style != nil {
		fontSize = spec.Style.FontSize.Float(fontSize)
		color = spec.Style.Color
		if spec.Style.Opacity.Valid() {
			c.Props.Opacity = models.N(spec.Style.Opacity.Float(1))
		}
	}
	applyTextStyle(c, fontSize, color)
	return comps
}

// applyTextStyle sets font size and colour on the component and every
// rich-text segment.
func applyTextStyle(c *models.Component, fontSize float64, color string) {
	c.Props.FontSize = models.N(fontSize)
	if color != "" {
		c.Props.Color = color
	}
	for s := range c.Props.Texts {
		c.Props.Texts[s].FontSize = models.N(fontSize)
		if color != "" {
			c.Props.Texts[s].Color = color
		}
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"slidepress/internal/geometry"
	"slidepress/internal/models"
)

const (
	maxLineHeight      = 1.2
	titleLineHeight    = 1.1
	titleLetterSpacing = -0.5
	titleFontThreshold = 60
	pxLineHeightCutoff = 3
	fallbackFontSize   = 16
)

var noShadow = json.RawMessage(`"none"`)

// FontCase normalises a font family name to title case, keeping
// acronyms such as "IBM" intact.
func FontCase(family string) string {
	family = strings.Join(strings.Fields(family), " ")
	return cases.Title(language.Und, cases.NoLower).String(family)
}

// EnforceFonts applies the theme fonts to every text component and fills
// typographic defaults the model left out.
func EnforceFonts(env *Env, comps []models.Component) ([]models.Component, error) {
	if env.Theme == nil {
		return comps, ErrNoTheme
	}
	heading := FontCase(env.Theme.Typography.HeroTitle.Family)
	body := FontCase(env.Theme.Typography.BodyText.Family)
	if heading == "" {
		heading = body
	}
	if body == "" {
		body = heading
	}

	for i := range comps {
		c := &comps[i]
		if !c.Type.IsText() {
			continue
		}
		title := looksLikeTitle(c)

		if family := pick(title, heading, body); family != "" {
			c.Props.FontFamily = family
			for s := range c.Props.Texts {
				c.Props.Texts[s].FontFamily = family
			}
		}

		if v, ok := geometry.ParseFloat(rawOrNil(c.Props.LetterSpacing)); ok {
			c.Props.LetterSpacing = models.N(v)
		} else if c.Props.LetterSpacing == nil {
			c.Props.LetterSpacing = models.N(pickFloat(title, titleLetterSpacing, 0))
		}

		c.Props.LineHeight = models.N(lineHeight(c, title))

		if len(c.Props.TextShadow) == 0 {
			c.Props.TextShadow = noShadow
		}

		color := env.Colors.Text
		if !title && env.Colors.SecondaryText != "" && c.Role() == models.RoleSources {
			color = env.Colors.SecondaryText
		}
		if color == "" {
			continue
		}
		for s := range c.Props.Texts {
			if seg := &c.Props.Texts[s]; seg.Color == "" || geometry.IsBlack(seg.Color) {
				seg.Color = color
			}
		}
		if len(c.Props.Texts) == 0 && (c.Props.Color == "" || geometry.IsBlack(c.Props.Color)) {
			c.Props.Color = color
		}
	}
	return comps, nil
}

func looksLikeTitle(c *models.Component) bool {
	return c.Type == models.TypeTitle || c.FontSize() > titleFontThreshold || (c.HasY() && c.Y() < titleMaxY)
}

// lineHeight resolves the line height as a multiplier. Values above 3 are
// taken as pixels and divided by the font size.
func lineHeight(c *models.Component, title bool) float64 {
	v, ok := geometry.ParseFloat(rawOrNil(c.Props.LineHeight))
	if !ok || v <= 0 {
		return pickFloat(title, titleLineHeight, maxLineHeight)
	}
	if v > pxLineHeightCutoff {
		fs := c.FontSize()
		if fs <= 0 {
			fs = fallbackFontSize
		}
		v /= float64(fs)
	}
	return min(v, maxLineHeight)
}

// rawOrNil exposes a Num to geometry.ParseFloat.
func rawOrNil(n *models.Num) any {
	if n == nil {
		return nil
	}
	if raw, ok := n.Raw(); ok {
		return raw
	}
	return n.Float(0)
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

func pickFloat(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

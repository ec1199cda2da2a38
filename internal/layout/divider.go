// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"strings"

	"github.com/google/uuid"

	"slidepress/internal/geometry"
	"slidepress/internal/models"
)

// LineStyler picks a divider colour from a structure's style hints.
type LineStyler interface {
	ResolveLineColor(style *models.DividerSpec, fallback string) string
}

const (
	headerBottomFallback = 160
	dividerBelowHeader   = 40
	dividerAboveContent  = 20
	horizontalSlack      = 2
	defaultStrokeWidth   = 2
)

// NormalizeLines rewrites legacy lines into start/end points and enforces
// the header divider. When the structure asks for a divider exactly one
// horizontal divider remains below the header; otherwise plain horizontal
// lines hugging the header bottom are treated as stray underlines and
// removed. Arrowed and non-horizontal lines are never dropped.
func NormalizeLines(env *Env, comps []models.Component) ([]models.Component, error) {
	for i := range comps {
		if comps[i].Type == models.TypeLines {
			toEndpoints(&comps[i])
		}
	}

	hb := headerBottom(comps)
	tol := env.Heuristics.UnderlineTolerance
	nearHeader := func(c *models.Component) bool {
		return isPlainHorizontal(c) && geometry.Abs(lineY(c)-hb) <= tol
	}

	if !env.Structure.Includes(models.RegionDividerLine) {
		out := comps[:0]
		for i := range comps {
			if comps[i].Type == models.TypeLines && nearHeader(&comps[i]) {
				continue
			}
			out = append(out, comps[i])
		}
		return out, nil
	}

	caX, caY, caW, _ := env.contentArea()
	y := max(hb+dividerBelowHeader, caY-dividerAboveContent)

	keep := -1
	for i := range comps {
		if comps[i].Type == models.TypeLines && comps[i].Role() == models.RoleDivider && isPlainHorizontal(&comps[i]) {
			keep = i
			break
		}
	}
	if keep < 0 {
		for i := range comps {
			c := &comps[i]
			if c.Type == models.TypeLines && (nearHeader(c) || isPlainHorizontal(c) && geometry.Abs(lineY(c)-y) <= tol) {
				keep = i
				break
			}
		}
	}

	out := make([]models.Component, 0, len(comps)+1)
	for i := range comps {
		c := comps[i]
		if i != keep && c.Type == models.TypeLines {
			if nearHeader(&c) || c.Role() == models.RoleDivider && isPlainHorizontal(&c) {
				continue
			}
			if c.Role() == models.RoleDivider {
				c.Props.Metadata.Role = models.RoleNone
			}
		}
		out = append(out, c)
		if i == keep {
			keep = len(out) - 1
		}
	}
	if keep < 0 {
		out = append(out, models.Component{ID: uuid.NewString(), Type: models.TypeLines})
		keep = len(out) - 1
	}

	styleDivider(env, &out[keep], caX, caX+caW, y)
	return out, nil
}

func styleDivider(env *Env, d *models.Component, x1, x2, y int) {
	spec := env.Structure.Positioning.DividerLine
	if spec != nil {
		if spec.StartPoint != nil && spec.StartPoint.X.Valid() {
			x1 = spec.StartPoint.X.Int(x1)
		}
		if spec.EndPoint != nil && spec.EndPoint.X.Valid() {
			x2 = spec.EndPoint.X.Int(x2)
		}
	}
	d.Props.StartPoint = models.Pt(x1, y)
	d.Props.EndPoint = models.Pt(x2, y)

	fallback := env.Heuristics.DividerFallbackColor
	if c, ok := geometry.NormalizeHex(env.Structure.Styling.Colors.DividerColor); ok {
		fallback = c
	}
	color := fallback
	if env.LineStyler != nil {
		color = env.LineStyler.ResolveLineColor(spec, fallback)
	}
	d.Props.Stroke = color

	d.Props.StrokeWidth = models.NInt(defaultStrokeWidth)
	if spec != nil && spec.StrokeWidth.Valid() {
		d.Props.StrokeWidth = models.N(spec.StrokeWidth.Float(defaultStrokeWidth))
	}
	if spec != nil && spec.Opacity.Valid() {
		d.Props.Opacity = models.N(spec.Opacity.Float(1))
	}
	d.Meta().Role = models.RoleDivider
}

// headerBottom is the lowest edge of the title and subtitle.
func headerBottom(comps []models.Component) int {
	hb := -1
	for i := range comps {
		c := &comps[i]
		switch {
		case c.Type == models.TypeTitle || c.Role() == models.RoleTitle:
			hb = max(hb, c.Y()+headerHeight(c, titleMinHeight))
		case c.Type == models.TypeSubtitle || c.Role() == models.RoleSubtitle:
			hb = max(hb, c.Y()+headerHeight(c, subtitleMinHeight))
		}
	}
	if hb < 0 {
		return headerBottomFallback
	}
	return hb
}

// toEndpoints converts a legacy position/width/height line.
func toEndpoints(c *models.Component) {
	p := &c.Props
	if p.StartPoint == nil || p.EndPoint == nil {
		x, y, w, h := c.X(), c.Y(), c.Width(), c.Height()
		switch {
		case w > 0:
			p.StartPoint = models.Pt(x, y+h/2)
			p.EndPoint = models.Pt(x+w, y+h/2)
		case h > 0:
			p.StartPoint = models.Pt(x, y)
			p.EndPoint = models.Pt(x, y+h)
		default:
			p.StartPoint = models.Pt(x, y)
			p.EndPoint = models.Pt(x, y)
		}
	}
	p.Position = nil
	p.Width = nil
	p.Height = nil
}

func lineY(c *models.Component) int {
	return c.Props.StartPoint.Y.Int(0)
}

func isPlainHorizontal(c *models.Component) bool {
	p := c.Props
	if p.StartPoint == nil || p.EndPoint == nil {
		return false
	}
	if geometry.Abs(p.StartPoint.Y.Int(0)-p.EndPoint.Y.Int(0)) > horizontalSlack {
		return false
	}
	return !isArrow(p.StartShape) && !isArrow(p.EndShape)
}

func isArrow(shape string) bool {
	s := strings.ToLower(strings.TrimSpace(shape))
	return s != "" && s != "none" && s != "flat" && s != "butt"
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"sort"
	"strings"

	"slidepress/internal/geometry"
	"slidepress/internal/models"
)

// DeclutterVisuals keeps at most one hero visual. Competing hero candidates
// are demoted to supporting visuals, narrowed and sent behind the text, and
// heavy visuals that collide vertically are pushed apart.
func DeclutterVisuals(env *Env, comps []models.Component) ([]models.Component, error) {
	h := env.Heuristics

	var candidates []int
	for i := range comps {
		if isVisual(&comps[i]) && isHeroCandidate(h, &comps[i]) {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) > 0 {
		hero := candidates[0]
		for _, i := range candidates[1:] {
			if area(&comps[i]) > area(&comps[hero]) {
				hero = i
			}
		}
		comps[hero].Meta().Role = models.RoleHero

		z := max(minTextZ(comps)-1, 1)
		for _, i := range candidates {
			if i != hero {
				demote(h, &comps[i], z)
			}
		}
	}

	restack(h, comps)
	return comps, nil
}

func isVisual(c *models.Component) bool {
	if c.Type == models.TypeCustomComponent {
		return true
	}
	return c.Type == models.TypeImage && !isLogo(c)
}

func isHeroCandidate(h Heuristics, c *models.Component) bool {
	switch c.Role() {
	case models.RoleHero:
		return true
	case models.RoleSupportingVisual:
		return false
	}
	return c.Width() >= h.HeroMinWidth || c.Height() >= h.HeroMinHeight ||
		strings.EqualFold(c.Props.ObjectFit, "cover")
}

func area(c *models.Component) int {
	return c.Width() * c.Height()
}

func minTextZ(comps []models.Component) int {
	z, found := 0, false
	for i := range comps {
		if !comps[i].Type.IsText() || !comps[i].Props.ZIndex.Valid() {
			continue
		}
		if v := comps[i].Props.ZIndex.Int(0); !found || v < z {
			z, found = v, true
		}
	}
	if !found {
		return 2
	}
	return z
}

func demote(h Heuristics, c *models.Component, z int) {
	w, ht := c.Width(), c.Height()
	nw := geometry.Clamp(w, h.SupportingMinWidth, h.SupportingMaxWidth)
	if w > 0 && ht > 0 && nw != w {
		ht = ht * nw / w
	}
	c.SetSize(nw, ht)
	c.Props.ZIndex = models.NInt(z)
	if strings.EqualFold(c.Props.ObjectFit, "cover") {
		c.Props.ObjectFit = "contain"
	}
	c.Meta().Role = models.RoleSupportingVisual
}

func isHeavy(h Heuristics, c *models.Component) bool {
	if !isVisual(c) {
		return false
	}
	switch c.Role() {
	case models.RoleHero, models.RoleSupportingVisual:
		return true
	}
	return c.Width() >= h.SupportingMinWidth
}

// restack pushes heavy visuals down so that horizontally overlapping ones
// keep the configured gap. Positions are centers.
func restack(h Heuristics, comps []models.Component) {
	var heavy []int
	for i := range comps {
		if isHeavy(h, &comps[i]) {
			heavy = append(heavy, i)
		}
	}
	if len(heavy) < 2 {
		return
	}
	sort.SliceStable(heavy, func(a, b int) bool { return comps[heavy[a]].Y() < comps[heavy[b]].Y() })

	placed := make([]geometry.Rect, 0, len(heavy))
	for _, i := range heavy {
		c := &comps[i]
		box := c.BBox()
		floor := -1
		for _, p := range placed {
			if p.OverlapsHorizontally(box) && box.Top < p.Bottom+h.VisualGap {
				floor = max(floor, p.Bottom+h.VisualGap)
			}
		}
		cy := c.Y()
		if floor >= 0 {
			cy = floor + box.Height()/2
		}
		half := box.Height() / 2
		cy = geometry.Clamp(cy, half, geometry.CanvasHeight-half)
		if cy != c.Y() {
			c.SetPosition(c.X(), cy)
		}
		placed = append(placed, c.BBox())
	}
}

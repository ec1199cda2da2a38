// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"slidepress/internal/geometry"
	"slidepress/internal/models"
)

// Placement sides for paired icons.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// PairIconsWithText moves icons that belong to a text block next to it.
// Icons are anchored top-left, text blocks at their center. Decorative and
// opted-out icons, hero-sized icons and icons with no plausible text
// partner keep their position.
func PairIconsWithText(env *Env, comps []models.Component) ([]models.Component, error) {
	h := env.Heuristics
	groups := make(map[int][]int)
	for i := range comps {
		icon := &comps[i]
		if icon.Type != models.TypeIcon || icon.Role() == models.RoleHero || icon.Width() >= h.HeroIconMinSize {
			continue
		}
		if t := nearestText(comps, icon); t >= 0 {
			groups[t] = append(groups[t], i)
		}
	}

	textIdx := make([]int, 0, len(groups))
	for t := range groups {
		textIdx = append(textIdx, t)
	}
	sort.Ints(textIdx)

	for _, t := range textIdx {
		icons := groups[t]
		sort.SliceStable(icons, func(a, b int) bool { return comps[icons[a]].Y() < comps[icons[b]].Y() })

		text := &comps[t]
		box := text.BBox()
		nextY := map[string]int{SideLeft: -1, SideRight: -1}
		for _, i := range icons {
			icon := &comps[i]
			ok, side := shouldPair(h, icon, text)
			if !ok {
				continue
			}
			iw, ih := icon.Width(), icon.Height()
			gap := h.IconGap
			if iw >= 48 {
				gap = h.LargeIconGap
			}

			x := box.Left - gap - iw
			if side == SideRight {
				x = box.Right + gap
			}
			rel := geometry.Clamp(icon.Y()-box.Top, 0, max(box.Height()-ih, 0))
			y := box.Top + rel
			if y < nextY[side] {
				y = nextY[side]
			}
			nextY[side] = y + ih + h.IconStackSpacing

			m := h.CanvasMargin
			x = geometry.Clamp(x, m, geometry.CanvasWidth-m-iw)
			y = geometry.Clamp(y, m, geometry.CanvasHeight-m-ih)
			icon.SetPosition(x, y)
			linkPair(icon, text, side)
		}
	}
	return comps, nil
}

// nearestText returns the body text block closest to icon vertically.
func nearestText(comps []models.Component, icon *models.Component) int {
	iconCY := icon.Y() + icon.Height()/2
	best, bestDist := -1, 0
	for i := range comps {
		if !comps[i].Type.IsBodyText() {
			continue
		}
		d := geometry.Abs(iconCY - comps[i].Y())
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func shouldPair(h Heuristics, icon, text *models.Component) (bool, string) {
	im := icon.Props.Metadata
	if im == nil {
		im = &models.Metadata{}
	}
	tm := text.Props.Metadata
	if tm == nil {
		tm = &models.Metadata{}
	}

	switch strings.ToLower(im.Pairing) {
	case "none", "off":
		return false, ""
	}
	if bool(im.Decorative) || (tm.AcceptIconAdjacency != nil && !bool(*tm.AcceptIconAdjacency)) {
		return false, ""
	}

	preferred := SideLeft
	if strings.EqualFold(im.Placement, SideRight) {
		preferred = SideRight
	}
	if bool(im.ForceAdjacency) || bool(tm.ForceIconAdjacency) || (im.PairedTextID != "" && im.PairedTextID == text.ID) {
		return true, preferred
	}
	if h.isListRole(text.Role()) {
		return true, preferred
	}

	box := text.BBox()
	iconCY := icon.Y() + icon.Height()/2
	if iconCY < box.Top-h.AdjacencyVertical || iconCY > box.Bottom+h.AdjacencyVertical {
		return false, ""
	}
	iconCX := icon.X() + icon.Width()/2
	dl, dr := geometry.Abs(iconCX-box.Left), geometry.Abs(iconCX-box.Right)
	if min(dl, dr) > h.AdjacencyHorizontal {
		return false, ""
	}
	if dr < dl {
		return true, SideRight
	}
	return true, SideLeft
}

// linkPair records the pairing on both sides, reusing an existing pair ID.
func linkPair(icon, text *models.Component, side string) {
	im, tm := icon.Meta(), text.Meta()
	pid := im.PairID
	if pid == "" {
		pid = tm.PairID
	}
	if pid == "" {
		pid = uuid.NewString()
	}
	im.PairID = pid
	im.PairedTextID = text.ID
	im.Placement = side
	if tm.PairID == "" {
		tm.PairID = pid
	}
	for _, id := range tm.PairedIconIDs {
		if id == icon.ID {
			return
		}
	}
	tm.PairedIconIDs = append(tm.PairedIconIDs, icon.ID)
}

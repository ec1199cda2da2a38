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

// Slide types that carry the deck logo even when the structure does not
// ask for one.
var logoSlideTypes = map[string]bool{
	"title":   true,
	"section": true,
	"closing": true,
}

// InjectLogo adds the deck logo the model left out. It only acts when the
// deck has a logo URL, the slide has no logo yet, and the slide is a title,
// section or closing slide or its structure includes a logo.
func InjectLogo(env *Env, comps []models.Component) ([]models.Component, error) {
	url := env.Context.DeckOutline.LogoURL()
	if url == "" || findLogo(comps) >= 0 {
		return comps, nil
	}
	kind := strings.ToLower(strings.TrimSpace(env.Context.SlideOutline.Type))
	if !logoSlideTypes[kind] && env.slideIndex() != 0 && !env.Structure.Includes(models.RegionLogo) {
		return comps, nil
	}

	logo := models.Component{ID: uuid.NewString(), Type: models.TypeImage}
	logo.Props.Src = url
	logo.Props.Alt = "logo"
	logo.Props.ObjectFit = "contain"
	m := env.Heuristics.CanvasMargin
	logo.SetPosition(geometry.CanvasWidth-m-defaultLogoW, m)
	logo.SetSize(defaultLogoW, defaultLogoH)
	meta := logo.Meta()
	meta.Role = models.RoleLogo
	meta.Kind = "logo"
	return append(comps, logo), nil
}

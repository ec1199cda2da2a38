// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"fmt"
	"log/slog"

	"slidepress/internal/models"
)

// Fallback sizes by component type.
const (
	defaultIconSize   = 24
	defaultTextHeight = 120
	defaultImageW     = 800
	defaultImageH     = 600
	defaultBlockW     = 600
	defaultBlockH     = 300
)

// NormalizeComponents coerces position and size of every positioned
// component to integers. A component whose coercion fails is left as it was.
func NormalizeComponents(_ *Env, comps []models.Component) ([]models.Component, error) {
	for i := range comps {
		if comps[i].Type == models.TypeBackground || comps[i].Type == models.TypeLines {
			continue
		}
		if err := normalizeOne(&comps[i]); err != nil {
			slog.Warn("component normalization skipped", "id", comps[i].ID, "type", comps[i].Type, "error", err)
		}
	}
	return comps, nil
}

func normalizeOne(c *models.Component) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	c.SetPosition(c.X(), c.Y())

	w, h := c.Width(), c.Height()
	fw, fh := fallbackSize(c)
	if w <= 0 {
		w = fw
	}
	if h <= 0 {
		h = fh
	}
	c.SetSize(w, h)
	return nil
}

func fallbackSize(c *models.Component) (w, h int) {
	switch {
	case c.Type == models.TypeIcon:
		s := c.Props.Size.Int(defaultIconSize)
		if s <= 0 {
			s = defaultIconSize
		}
		return s, s
	case c.Type.IsText():
		return defaultContentWidth, defaultTextHeight
	case c.Type == models.TypeImage:
		return defaultImageW, defaultImageH
	default:
		return defaultBlockW, defaultBlockH
	}
}

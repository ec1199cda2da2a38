// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package geometry holds the pure helpers the layout passes share: lenient
// numeric parsing of AI-supplied props, center-anchored bounding boxes and
// a handful of colour utilities.
package geometry

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Canvas dimensions every slide is laid out against.
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080
)

// Fallback box used when a component has no usable size, so overlap math
// never works with a zero-area rectangle.
const (
	fallbackBoxWidth  = 800
	fallbackBoxHeight = 400
)

// ParseToInt converts an int, float or numeric string (optionally suffixed
// with "px" or "%") to an int, truncating toward zero. Anything else yields
// def.
func ParseToInt(value any, def int) int {
	f, ok := parseFloat(value, false)
	if !ok {
		return def
	}
	return int(f)
}

// ParseToFloat is ParseToInt without truncation. It additionally accepts
// "em", "rem" and "pt" suffixes, which show up in typography props.
func ParseToFloat(value any, def float64) float64 {
	f, ok := parseFloat(value, true)
	if !ok {
		return def
	}
	return f
}

// ParseFloat reports whether value parses as a number under the same rules
// as ParseToFloat.
func ParseFloat(value any) (float64, bool) {
	return parseFloat(value, true)
}

func parseFloat(value any, typographic bool) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		s = strings.TrimSuffix(s, "px")
		s = strings.TrimSuffix(s, "%")
		if typographic {
			s = strings.TrimSuffix(s, "rem")
			s = strings.TrimSuffix(s, "em")
			s = strings.TrimSuffix(s, "pt")
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Rect is an axis-aligned box in canvas pixels.
type Rect struct {
	Left, Top, Right, Bottom int
}

// BBox builds the box of a component whose position is its center. Missing
// dimensions count as zero; when neither is positive an 800x400 box is used.
func BBox(cx, cy, w, h int) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == 0 && h == 0 {
		w, h = fallbackBoxWidth, fallbackBoxHeight
	}
	return Rect{
		Left:   cx - w/2,
		Top:    cy - h/2,
		Right:  cx - w/2 + w,
		Bottom: cy - h/2 + h,
	}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() int { return r.Bottom - r.Top }

// CenterY returns the vertical midpoint of r.
func (r Rect) CenterY() int { return r.Top + r.Height()/2 }

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.OverlapsHorizontally(o) && r.Top < o.Bottom && o.Top < r.Bottom
}

// OverlapsHorizontally reports whether the x-ranges of r and o intersect.
func (r Rect) OverlapsHorizontally(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right
}

// Clamp limits v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Abs returns the absolute value of v.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeHex canonicalises a colour to "#RRGGBB" upper case. It accepts
// "#RGB", "#RRGGBB", "#RRGGBBAA" (alpha dropped), the same without "#",
// and "rgb(r, g, b)". The second result is false for anything else.
func NormalizeHex(c string) (string, bool) {
	s := strings.TrimSpace(strings.ToLower(c))
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return normalizeRGBFunc(s)
	}
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	case 8:
		s = s[:6]
	default:
		return "", false
	}
	if _, err := strconv.ParseUint(s, 16, 32); err != nil {
		return "", false
	}
	return "#" + strings.ToUpper(s), true
}

func normalizeRGBFunc(s string) (string, bool) {
	open := strings.IndexByte(s, '(')
	end := strings.IndexByte(s, ')')
	if open < 0 || end <= open {
		return "", false
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) < 3 {
		return "", false
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return "", false
		}
		rgb[i] = v
	}
	return fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2]), true
}

func channels(hex string) (r, g, b float64, ok bool) {
	n, ok := NormalizeHex(hex)
	if !ok {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(n[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return float64(v>>16&0xFF) / 255, float64(v>>8&0xFF) / 255, float64(v&0xFF) / 255, true
}

// EstimateBrightness returns perceptual luminance in [0,1]. Malformed input
// is treated as mid grey (0.5).
func EstimateBrightness(hex string) float64 {
	r, g, b, ok := channels(hex)
	if !ok {
		return 0.5
	}
	return 0.299*r + 0.587*g + 0.114*b
}

// DarkenSubtly scales every channel by 0.95. Malformed input is returned
// unchanged.
func DarkenSubtly(hex string) string {
	r, g, b, ok := channels(hex)
	if !ok {
		return hex
	}
	scale := func(v float64) int { return int(math.Round(v * 255 * 0.95)) }
	return fmt.Sprintf("#%02X%02X%02X", scale(r), scale(g), scale(b))
}

// ContrastRatio returns the WCAG contrast ratio between two colours, 1 when
// either is malformed.
func ContrastRatio(a, b string) float64 {
	la, okA := relativeLuminance(a)
	lb, okB := relativeLuminance(b)
	if !okA || !okB {
		return 1
	}
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func relativeLuminance(hex string) (float64, bool) {
	r, g, b, ok := channels(hex)
	if !ok {
		return 0, false
	}
	lin := func(c float64) float64 {
		if c <= 0.03928 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(r) + 0.7152*lin(g) + 0.0722*lin(b), true
}

// IsBlack reports whether c is literal black in any accepted notation.
func IsBlack(c string) bool {
	if strings.EqualFold(strings.TrimSpace(c), "black") {
		return true
	}
	n, ok := NormalizeHex(c)
	return ok && n == "#000000"
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import "slidepress/internal/models"

// Heuristics are the empirically tuned thresholds the passes use. They are
// loaded from YAML by the config package; zero values are not meaningful,
// so always start from DefaultHeuristics.
type Heuristics struct {
	// Hero detection and supporting-visual clamp.
	HeroMinWidth       int `yaml:"hero_min_width"`
	HeroMinHeight      int `yaml:"hero_min_height"`
	SupportingMinWidth int `yaml:"supporting_min_width"`
	SupportingMaxWidth int `yaml:"supporting_max_width"`
	VisualGap          int `yaml:"visual_gap"`

	// Icon/text adjacency.
	ListRoles            []models.Role `yaml:"list_roles"`
	AdjacencyVertical    int           `yaml:"adjacency_vertical_slack"`
	AdjacencyHorizontal  int           `yaml:"adjacency_horizontal_reach"`
	IconGap              int           `yaml:"icon_gap"`
	LargeIconGap         int           `yaml:"large_icon_gap"`
	HeroIconMinSize      int           `yaml:"hero_icon_min_size"`
	CanvasMargin         int           `yaml:"canvas_margin"`
	IconStackSpacing     int           `yaml:"icon_stack_spacing"`
	UnderlineTolerance   int           `yaml:"underline_tolerance"`
	DividerFallbackColor string        `yaml:"divider_fallback_color"`
}

// DefaultHeuristics returns the production thresholds.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		HeroMinWidth:       1200,
		HeroMinHeight:      500,
		SupportingMinWidth: 600,
		SupportingMaxWidth: 880,
		VisualGap:          40,
		ListRoles: []models.Role{
			models.RoleList, models.RoleBullets, models.RoleBullet,
			models.RoleLabels, models.RoleLabel, models.RoleStep, models.RoleSteps,
			models.RoleFeature, models.RoleFeatures, models.RoleKPIList,
		},
		AdjacencyVertical:    40,
		AdjacencyHorizontal:  400,
		IconGap:              16,
		LargeIconGap:         20,
		HeroIconMinSize:      120,
		CanvasMargin:         80,
		IconStackSpacing:     8,
		UnderlineTolerance:   24,
		DividerFallbackColor: "#2563EB",
	}
}

func (h Heuristics) isListRole(r models.Role) bool {
	for _, lr := range h.ListRoles {
		if lr == r {
			return true
		}
	}
	return false
}

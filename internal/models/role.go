// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	"slidepress/internal/jsonx"
)

// Role tags what a component is for, independent of its type.
type Role string

const (
	RoleNone             Role = ""
	RoleTitle            Role = "title"
	RoleSubtitle         Role = "subtitle"
	RoleDivider          Role = "divider"
	RoleLogo             Role = "logo"
	RoleSlideNumber      Role = "slide_number"
	RoleSources          Role = "sources"
	RoleCitations        Role = "citations"
	RoleHero             Role = "hero"
	RoleSupportingVisual Role = "supporting_visual"

	RoleList     Role = "list"
	RoleBullets  Role = "bullets"
	RoleBullet   Role = "bullet"
	RoleLabels   Role = "labels"
	RoleLabel    Role = "label"
	RoleStep     Role = "step"
	RoleSteps    Role = "steps"
	RoleFeature  Role = "feature"
	RoleFeatures Role = "features"
	RoleKPIList  Role = "kpi_list"
)

var roleAliases = map[string]Role{
	"slidenumber": RoleSlideNumber,
	"page_number": RoleSlideNumber,
	"citation":    RoleCitations,
	"source":      RoleSources,
}

// ParseRole folds case and separators and resolves known aliases. Roles
// outside the known set are kept as-is so unfamiliar AI tags survive.
func ParseRole(s string) Role {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	if r, ok := roleAliases[s]; ok {
		return r
	}
	return Role(s)
}

// UnmarshalJSON accepts any string and normalises it with ParseRole.
// Non-string values decode to RoleNone.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := jsonx.Unmarshal(b, &s); err != nil {
		*r = RoleNone
		return nil
	}
	*r = ParseRole(s)
	return nil
}

// IsSourcesLike reports whether r marks a citations footer.
func (r Role) IsSourcesLike() bool {
	return r == RoleSources || r == RoleCitations
}

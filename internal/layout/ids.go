// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"github.com/google/uuid"

	"slidepress/internal/models"
)

// AssignIDs gives every component a unique ID. Missing IDs and repeats of
// an ID already seen on the slide are replaced with fresh UUIDs.
func AssignIDs(_ *Env, comps []models.Component) ([]models.Component, error) {
	seen := make(map[string]bool, len(comps))
	for i := range comps {
		id := comps[i].ID
		if id == "" || seen[id] {
			id = uuid.NewString()
			comps[i].ID = id
		}
		seen[id] = true
	}
	return comps, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"

	"slidepress/internal/jsonx"
)

// ProcessedSlide is a pipeline result persisted for a deck. One row exists
// per (deck, slide index); reprocessing a slide replaces it.
type ProcessedSlide struct {
	ID         uuid.UUID        `json:"id"`
	DeckID     string           `json:"deck_id"`
	SlideIndex int              `json:"slide_index"`
	Slide      *Slide           `json:"slide"`
	Report     jsonx.RawMessage `json:"report,omitempty"`
	ContentKey string           `json:"content_key,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// DeckExport records a deck snapshot uploaded to object storage.
type DeckExport struct {
	ID         uuid.UUID `json:"id"`
	DeckID     string    `json:"deck_id"`
	ObjectKey  string    `json:"object_key"`
	URL        string    `json:"url"`
	SlideCount int       `json:"slide_count"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

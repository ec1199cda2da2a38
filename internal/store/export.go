// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"slidepress/internal/models"
)

// ExportStore records deck snapshots uploaded to object storage.
type ExportStore struct {
	db *sql.DB
}

// NewExportStore creates a new ExportStore.
func NewExportStore(db *sql.DB) *ExportStore {
	return &ExportStore{db: db}
}

// Create records an export and returns it with its generated ID and timestamp.
func (s *ExportStore) Create(ctx context.Context, e *models.DeckExport) (*models.DeckExport, error) {
	out := *e
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO deck_exports (id, deck_id, object_key, url, slide_count, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, out.ID, out.DeckID, out.ObjectKey, out.URL, out.SlideCount, out.SizeBytes).Scan(&out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create deck export: %w", err)
	}
	slog.Debug("deck export recorded", "deck_id", out.DeckID, "object_key", out.ObjectKey)
	return &out, nil
}

// LatestByDeck returns the most recent export of a deck.
func (s *ExportStore) LatestByDeck(ctx context.Context, deckID string) (*models.DeckExport, error) {
	var e models.DeckExport
	err := s.db.QueryRowContext(ctx, `
		SELECT id, deck_id, object_key, url, slide_count, size_bytes, created_at
		FROM deck_exports
		WHERE deck_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, deckID).Scan(&e.ID, &e.DeckID, &e.ObjectKey, &e.URL, &e.SlideCount, &e.SizeBytes, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest deck export: %w", err)
	}
	return &e, nil
}

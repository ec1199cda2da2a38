// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists processed slides and deck exports in PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"slidepress/internal/jsonx"
	"slidepress/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// SlideStore handles processed slide persistence. Slides are stored as
// JSONB so unknown component keys survive the round trip.
type SlideStore struct {
	db *sql.DB
}

// NewSlideStore creates a new SlideStore with the given database connection.
func NewSlideStore(db *sql.DB) *SlideStore {
	return &SlideStore{db: db}
}

const slideColumns = `id, deck_id, slide_index, slide, report, content_key, created_at, updated_at`

// Save upserts a processed slide keyed by deck and slide index. A missing
// ID is generated; on conflict the existing row keeps its ID.
func (s *SlideStore) Save(ctx context.Context, ps *models.ProcessedSlide) (*models.ProcessedSlide, error) {
	if ps.DeckID == "" {
		return nil, fmt.Errorf("save slide: deck id is required")
	}
	slideJSON, err := jsonx.Marshal(ps.Slide)
	if err != nil {
		return nil, fmt.Errorf("save slide: encode slide: %w", err)
	}
	report := ps.Report
	if len(report) == 0 {
		report = []byte("{}")
	}
	id := ps.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO processed_slides (id, deck_id, slide_index, slide, report, content_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (deck_id, slide_index) DO UPDATE
		SET slide = EXCLUDED.slide,
		    report = EXCLUDED.report,
		    content_key = EXCLUDED.content_key,
		    updated_at = NOW()
		RETURNING `+slideColumns,
		id, ps.DeckID, ps.SlideIndex, slideJSON, []byte(report), ps.ContentKey,
	)
	out, err := scanSlide(row)
	if err != nil {
		return nil, fmt.Errorf("save slide: %w", err)
	}
	return out, nil
}

// ListByDeck returns the persisted slides of a deck ordered by slide index.
func (s *SlideStore) ListByDeck(ctx context.Context, deckID string) ([]models.ProcessedSlide, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+slideColumns+`
		FROM processed_slides
		WHERE deck_id = $1
		ORDER BY slide_index ASC
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("list slides by deck: %w", err)
	}
	defer rows.Close()

	var items []models.ProcessedSlide
	for rows.Next() {
		ps, err := scanSlide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		items = append(items, *ps)
	}
	return items, rows.Err()
}

// FindByID retrieves a processed slide by its UUID.
func (s *SlideStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ProcessedSlide, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+slideColumns+` FROM processed_slides WHERE id = $1`, id)
	ps, err := scanSlide(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find slide by id: %w", err)
	}
	return ps, nil
}

// DeleteDeck removes every persisted slide of a deck and returns how many
// rows were deleted.
func (s *SlideStore) DeleteDeck(ctx context.Context, deckID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM processed_slides WHERE deck_id = $1`, deckID)
	if err != nil {
		return 0, fmt.Errorf("delete deck slides: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSlide(sc scanner) (*models.ProcessedSlide, error) {
	var (
		ps        models.ProcessedSlide
		slideJSON []byte
		report    []byte
	)
	if err := sc.Scan(
		&ps.ID, &ps.DeckID, &ps.SlideIndex, &slideJSON, &report,
		&ps.ContentKey, &ps.CreatedAt, &ps.UpdatedAt,
	); err != nil {
		return nil, err
	}
	ps.Slide = &models.Slide{}
	if err := jsonx.Unmarshal(slideJSON, ps.Slide); err != nil {
		return nil, fmt.Errorf("decode slide %s: %w", ps.ID, err)
	}
	ps.Report = report
	return &ps, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"slidepress/internal/models"
)

func testSlide(t *testing.T, in string) *models.Slide {
	t.Helper()
	var s models.Slide
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("decode slide: %v", err)
	}
	return &s
}

func TestSlideStore_SaveAndList(t *testing.T) {
	db := testDB(t)
	s := NewSlideStore(db)
	ctx := context.Background()
	deck := "test-deck-" + uuid.NewString()
	t.Cleanup(func() { cleanDecks(t, db, deck) })

	for _, idx := range []int{2, 0, 1} {
		_, err := s.Save(ctx, &models.ProcessedSlide{
			DeckID:     deck,
			SlideIndex: idx,
			Slide:      testSlide(t, `{"components":[{"id":"c","type":"Image","props":{"src":"a.png","filter":{"blur":2}}}],"layout":"split"}`),
			Report:     json.RawMessage(`{"applied":["normalize"]}`),
		})
		if err != nil {
			t.Fatalf("Save(%d): %v", idx, err)
		}
	}

	items, err := s.ListByDeck(ctx, deck)
	if err != nil {
		t.Fatalf("ListByDeck: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i, it := range items {
		if it.SlideIndex != i {
			t.Errorf("items[%d].SlideIndex = %d", i, it.SlideIndex)
		}
	}

	out, _ := json.Marshal(items[0].Slide)
	for _, want := range []string{`"layout":"split"`, `"filter":{"blur":2}`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("unknown key %s lost in storage: %s", want, out)
		}
	}
}

func TestSlideStore_SaveUpsertsByIndex(t *testing.T) {
	db := testDB(t)
	s := NewSlideStore(db)
	ctx := context.Background()
	deck := "test-deck-" + uuid.NewString()
	t.Cleanup(func() { cleanDecks(t, db, deck) })

	first, err := s.Save(ctx, &models.ProcessedSlide{DeckID: deck, Slide: &models.Slide{}, ContentKey: "k1"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := s.Save(ctx, &models.ProcessedSlide{DeckID: deck, Slide: &models.Slide{}, ContentKey: "k2"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert changed id: %s -> %s", first.ID, second.ID)
	}

	got, err := s.FindByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.ContentKey != "k2" {
		t.Errorf("ContentKey = %q, want k2", got.ContentKey)
	}
}

func TestSlideStore_NotFoundAndDelete(t *testing.T) {
	db := testDB(t)
	s := NewSlideStore(db)
	ctx := context.Background()
	deck := "test-deck-" + uuid.NewString()
	t.Cleanup(func() { cleanDecks(t, db, deck) })

	if _, err := s.FindByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID(missing) err = %v, want ErrNotFound", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := s.Save(ctx, &models.ProcessedSlide{DeckID: deck, SlideIndex: i, Slide: &models.Slide{}}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	n, err := s.DeleteDeck(ctx, deck)
	if err != nil {
		t.Fatalf("DeleteDeck: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
	items, _ := s.ListByDeck(ctx, deck)
	if len(items) != 0 {
		t.Errorf("slides left after delete: %d", len(items))
	}
}

func TestSlideStore_SaveRequiresDeck(t *testing.T) {
	s := NewSlideStore(nil)
	if _, err := s.Save(context.Background(), &models.ProcessedSlide{}); err == nil {
		t.Error("Save without deck id should fail")
	}
}

func TestExportStore(t *testing.T) {
	db := testDB(t)
	s := NewExportStore(db)
	ctx := context.Background()
	deck := "test-deck-" + uuid.NewString()
	t.Cleanup(func() { cleanDecks(t, db, deck) })

	if _, err := s.LatestByDeck(ctx, deck); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestByDeck(empty) err = %v, want ErrNotFound", err)
	}

	created, err := s.Create(ctx, &models.DeckExport{
		DeckID: deck, ObjectKey: "decks/" + deck + "/a.json",
		URL: "https://cdn.example.com/a.json", SlideCount: 3, SizeBytes: 1024,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil || created.CreatedAt.IsZero() {
		t.Errorf("created = %+v", created)
	}

	latest, err := s.LatestByDeck(ctx, deck)
	if err != nil {
		t.Fatalf("LatestByDeck: %v", err)
	}
	if latest.ID != created.ID || latest.SlideCount != 3 {
		t.Errorf("latest = %+v", latest)
	}
}

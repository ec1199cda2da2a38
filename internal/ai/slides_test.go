// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"slidepress/internal/models"
)

func TestParseSlide(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		count int
	}{
		{"plain object", `{"components":[{"type":"Title"}]}`, 1},
		{"wrapped", `{"slide":{"components":[{"type":"Title"},{"type":"Image"}]}}`, 2},
		{"bare array", `[{"type":"Title"},{"type":"TextBlock"}]`, 2},
		{"code fence", "```json\n{\"components\":[{\"type\":\"Title\"}]}\n```", 1},
		{"prose and trailing comma", "Here you go:\n{\"components\":[{\"type\":\"Title\"},]}", 1},
		{"truncated", `{"components":[{"type":"Title","props":{"texts":[{"text":"Hi"}]}}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSlide(tt.raw)
			if err != nil {
				t.Fatalf("ParseSlide: %v", err)
			}
			if len(s.Components) != tt.count {
				t.Errorf("components = %d, want %d", len(s.Components), tt.count)
			}
		})
	}
}

func TestParseSlide_Errors(t *testing.T) {
	if _, err := ParseSlide(`{"components":[]}`); !errors.Is(err, ErrNoComponents) {
		t.Errorf("empty components err = %v, want ErrNoComponents", err)
	}
	if _, err := ParseSlide("   "); err == nil {
		t.Error("blank response should fail")
	}
}

func TestSlideGenerator(t *testing.T) {
	mock := &mockProvider{name: "mock", response: "```json\n{\"components\":[{\"type\":\"Title\",\"props\":{\"texts\":[{\"text\":\"Growth\"}]}}]}\n```"}
	gen := NewSlideGenerator(mock)

	sctx := &models.Context{
		SlideIndex:   2,
		SlideOutline: models.SlideOutline{Title: "Growth", Content: "- Revenue up 42%", Type: "content"},
		DeckOutline:  models.DeckOutline{Title: "Q3 review"},
		Theme: &models.Theme{
			ColorPalette: models.ColorPalette{PrimaryBackground: "#FFFFFF", Accent1: "#2563EB"},
			Typography:   models.Typography{HeroTitle: models.FontSpec{Family: "Inter"}},
		},
	}
	s, err := gen.Generate(context.Background(), "Make a growth slide", sctx)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if s.Components[0].Text() != "Growth" {
		t.Errorf("title = %q", s.Components[0].Text())
	}

	if mock.lastSystem != slideSystemPrompt {
		t.Error("system prompt not sent")
	}
	for _, want := range []string{"Make a growth slide", "Slide 3 (content)", "Revenue up 42%", "Deck: Q3 review", "#2563EB", "Heading font Inter"} {
		if !strings.Contains(mock.lastUser, want) {
			t.Errorf("user prompt missing %q:\n%s", want, mock.lastUser)
		}
	}
}

func TestSlideGenerator_ProviderError(t *testing.T) {
	gen := NewSlideGenerator(&mockProvider{err: errors.New("quota")})
	if _, err := gen.Generate(context.Background(), "x", nil); err == nil || !strings.Contains(err.Error(), "quota") {
		t.Errorf("err = %v", err)
	}
}

package handlers

import (
	"strings"
	"testing"

	"slidepress/internal/models"
)

func TestValidateDeckID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantError bool
	}{
		{"simple", "deck1", false},
		{"dashes and underscores", "q3-review_final", false},
		{"uuid", "6f1c1f1e-8d7b-4a53-9a1e-2b1f3c4d5e6f", false},
		{"empty", "", true},
		{"leading dash", "-deck", true},
		{"dot", "deck.1", true},
		{"slash", "a/b", true},
		{"too long", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateDeckID(tt.id)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateSlide(t *testing.T) {
	tests := []struct {
		name      string
		slide     *models.Slide
		sctx      *models.Context
		wantError bool
	}{
		{"empty slide", &models.Slide{}, nil, false},
		{"nil slide", nil, nil, true},
		{"too many components", &models.Slide{Components: make([]models.Component, maxComponents+1)}, nil, true},
		{"outline too long", &models.Slide{}, &models.Context{SlideOutline: models.SlideOutline{Content: strings.Repeat("a", maxOutlineLen+1)}}, true},
		{"outline at limit", &models.Slide{}, &models.Context{SlideOutline: models.SlideOutline{Content: strings.Repeat("é", maxOutlineLen)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateSlide(tt.slide, tt.sctx)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateDeck(t *testing.T) {
	if validateDeck(0) == "" {
		t.Error("empty deck should be rejected")
	}
	if validateDeck(maxDeckSlides+1) == "" {
		t.Error("oversized deck should be rejected")
	}
	if msg := validateDeck(12); msg != "" {
		t.Errorf("unexpected error: %s", msg)
	}
}

func TestValidatePrompt(t *testing.T) {
	tests := []struct {
		name      string
		prompt    string
		wantError bool
	}{
		{"valid", "A slide about churn", false},
		{"empty", "", true},
		{"whitespace", "  \n\t", true},
		{"too long", strings.Repeat("a", maxPromptLen+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validatePrompt(tt.prompt)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

package handlers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"slidepress/internal/models"
)

// Validation limits for API inputs.
const (
	maxDeckIDLen  = 128
	maxComponents = 500
	maxDeckSlides = 200
	maxPromptLen  = 4_000
	maxOutlineLen = 20_000
)

var deckIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// validateDeckID checks a deck ID taken from the URL.
func validateDeckID(id string) string {
	if id == "" {
		return "deck id is required"
	}
	if len(id) > maxDeckIDLen {
		return fmt.Sprintf("deck id is too long (max %d characters)", maxDeckIDLen)
	}
	if !deckIDPattern.MatchString(id) {
		return "deck id may contain only letters, digits, '-' and '_'"
	}
	return ""
}

// validateSlide checks one slide and its context.
func validateSlide(s *models.Slide, sctx *models.Context) string {
	if s == nil {
		return "slide is required"
	}
	if len(s.Components) > maxComponents {
		return fmt.Sprintf("slide has too many components (max %d)", maxComponents)
	}
	if sctx != nil && utf8.RuneCountInString(sctx.SlideOutline.Content) > maxOutlineLen {
		return fmt.Sprintf("slide outline content is too long (max %d characters)", maxOutlineLen)
	}
	return ""
}

// validateDeck checks the slide count of a deck request.
func validateDeck(slides int) string {
	if slides == 0 {
		return "deck has no slides"
	}
	if slides > maxDeckSlides {
		return fmt.Sprintf("deck has too many slides (max %d)", maxDeckSlides)
	}
	return ""
}

// validatePrompt checks a generation prompt.
func validatePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "prompt is required"
	}
	if utf8.RuneCountInString(prompt) > maxPromptLen {
		return fmt.Sprintf("prompt is too long (max %d characters)", maxPromptLen)
	}
	return ""
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"slidepress/internal/jsonx"
	"slidepress/internal/models"
)

// ErrNoComponents is returned when the model answered with a document that
// holds no components.
var ErrNoComponents = errors.New("ai: response contained no components")

// Generator is anything that can answer a prompt; Registry and every
// Provider satisfy it.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// slideSystemPrompt describes the slide document the model must return.
const slideSystemPrompt = `You design presentation slides on a 1920x1080 canvas.
Reply with a single JSON object {"components": [...]} and nothing else.
Each component is {"id": string, "type": string, "props": object}.
Allowed types: Background, Title, Subtitle, Heading, TextBlock, TiptapTextBlock, Icon, Image, Shape, Lines, Chart, Table, CustomComponent.
Text components carry props.texts as [{"text": string, "fontSize": number}].
Positions are props.position {x, y} in pixels with width and height beside them.
Tag structural elements with props.metadata.role (title, subtitle, logo, slide_number, sources, divider, hero, bullets).`

// SlideGenerator drafts slides with a language model.
type SlideGenerator struct {
	gen Generator
}

// NewSlideGenerator creates a generator backed by gen.
func NewSlideGenerator(gen Generator) *SlideGenerator {
	return &SlideGenerator{gen: gen}
}

// Generate asks the model for a slide matching prompt and the slide's
// context, then repairs and decodes the answer.
func (g *SlideGenerator) Generate(ctx context.Context, prompt string, sctx *models.Context) (*models.Slide, error) {
	start := time.Now()
	raw, err := g.gen.Generate(ctx, slideSystemPrompt, userPrompt(prompt, sctx))
	if err != nil {
		return nil, fmt.Errorf("generate slide: %w", err)
	}
	slide, err := ParseSlide(raw)
	if err != nil {
		slog.Warn("ai slide response unusable", "error", err, "response_bytes", len(raw))
		return nil, err
	}
	slog.Info("ai slide generated", "components", len(slide.Components), "duration", time.Since(start))
	return slide, nil
}

// userPrompt renders the request and the context the model should honour.
func userPrompt(prompt string, sctx *models.Context) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(prompt))
	if sctx == nil {
		return b.String()
	}
	o := sctx.SlideOutline
	if o.Title != "" || o.Content != "" {
		fmt.Fprintf(&b, "\n\nSlide %d", sctx.SlideIndex+1)
		if o.Type != "" {
			fmt.Fprintf(&b, " (%s)", o.Type)
		}
		if o.Title != "" {
			fmt.Fprintf(&b, "\nTitle: %s", o.Title)
		}
		if o.Content != "" {
			fmt.Fprintf(&b, "\nContent:\n%s", o.Content)
		}
	}
	if sctx.DeckOutline.Title != "" {
		fmt.Fprintf(&b, "\n\nDeck: %s", sctx.DeckOutline.Title)
	}
	if t := sctx.Theme; t != nil {
		cp := t.ColorPalette
		fmt.Fprintf(&b, "\n\nTheme colours: background %s, text %s, accents %s %s.",
			orNone(cp.PrimaryBackground), orNone(cp.PrimaryText), orNone(cp.Accent1), orNone(cp.Accent2))
		if f := t.Typography.HeroTitle.Family; f != "" {
			fmt.Fprintf(&b, " Heading font %s.", f)
		}
		if f := t.Typography.BodyText.Family; f != "" {
			fmt.Fprintf(&b, " Body font %s.", f)
		}
	}
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// ParseSlide decodes model output into a slide. It accepts a slide object,
// an object wrapping one under "slide", or a bare component array, and
// repairs loosely formed JSON first.
func ParseSlide(raw string) (*models.Slide, error) {
	doc, err := jsonx.Repair(raw)
	if err != nil {
		return nil, fmt.Errorf("parse slide: %w", err)
	}

	var slide models.Slide
	switch doc = bytes.TrimSpace(doc); {
	case len(doc) > 0 && doc[0] == '[':
		if err := jsonx.Unmarshal(doc, &slide.Components); err != nil {
			return nil, fmt.Errorf("parse slide components: %w", err)
		}
	default:
		var wrapped struct {
			Slide jsonx.RawMessage `json:"slide"`
		}
		if err := jsonx.Unmarshal(doc, &wrapped); err == nil && len(wrapped.Slide) > 0 && wrapped.Slide[0] == '{' {
			doc = wrapped.Slide
		}
		if err := jsonx.Unmarshal(doc, &slide); err != nil {
			return nil, fmt.Errorf("parse slide: %w", err)
		}
	}

	if len(slide.Components) == 0 {
		return nil, ErrNoComponents
	}
	return &slide, nil
}

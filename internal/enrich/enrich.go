// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package enrich fills data-driven custom components (stat cards, KPI
// tiles, chip lists) from the slide outline text when the model left them
// empty.
package enrich

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"slidepress/internal/jsonx"
	"slidepress/internal/markdown"
	"slidepress/internal/models"
)

const (
	maxLabelWords = 6
	maxChips      = 4
	maxChipWords  = 4
)

// metricPattern matches numbers that carry a unit: percentages, currency,
// magnitudes (K/M/B/bn) and multipliers.
var metricPattern = regexp.MustCompile(
	`(?i)(?:[$€£]\s?\d[\d,]*(?:\.\d+)?\s?(?:bn|[kmb])?\b|\d[\d,]*(?:\.\d+)?\s?(?:%|bn\b|[kmb]\b|x\b))`,
)

var bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•▪‣]|\d+[.)])\s+`)

// Metric is a number with its unit and the phrase describing it.
type Metric struct {
	Value string
	Label string
}

// ExtractMetrics finds unit-bearing numbers in text, in order of
// appearance. The label is the short phrase that follows the number up to
// the next punctuation mark.
func ExtractMetrics(text string) []Metric {
	var out []Metric
	for _, loc := range metricPattern.FindAllStringIndex(text, -1) {
		value := strings.TrimSpace(text[loc[0]:loc[1]])
		out = append(out, Metric{Value: value, Label: labelAfter(text[loc[1]:])})
	}
	return out
}

func labelAfter(rest string) string {
	if i := strings.IndexAny(rest, ".,;:!?\n()"); i >= 0 {
		rest = rest[:i]
	}
	words := strings.Fields(rest)
	if len(words) > maxLabelWords {
		words = words[:maxLabelWords]
	}
	return strings.Join(words, " ")
}

// ExtractChips returns short bullet items from the outline content.
// Bullets are recognised line by line so that glyph bullets the Markdown
// grammar does not know still count; inline markup inside an item is
// stripped.
func ExtractChips(content string) []string {
	var chips []string
	for _, line := range strings.Split(content, "\n") {
		if !bulletPrefix.MatchString(line) {
			continue
		}
		item := markdown.PlainText(bulletPrefix.ReplaceAllString(line, ""))
		item = strings.TrimRight(item, ".;:")
		if item == "" || len(strings.Fields(item)) > maxChipWords || utf8.RuneCountInString(item) > 40 {
			continue
		}
		chips = append(chips, item)
		if len(chips) == maxChips {
			break
		}
	}
	return chips
}

// InjectOutlineValues fills value, label and chips on custom components
// that lack them, drawing metrics from the outline in order. Components
// that already carry a value keep it and do not consume a metric.
func InjectOutlineValues(comps []models.Component, outline models.SlideOutline) []models.Component {
	text := strings.TrimSpace(outline.Title + "\n" + markdown.PlainText(outline.Content))
	if text == "" {
		return comps
	}
	metrics := ExtractMetrics(text)
	chips := ExtractChips(outline.Content)

	next := 0
	for i := range comps {
		c := &comps[i]
		if c.Type != models.TypeCustomComponent {
			continue
		}
		p := &c.Props
		if len(p.Value) == 0 && next < len(metrics) {
			m := metrics[next]
			next++
			if raw, err := jsonx.Marshal(m.Value); err == nil {
				p.Value = raw
			}
			if p.Label == "" {
				p.Label = m.Label
			}
		}
		if len(p.Chips) == 0 && len(chips) > 0 && !p.Extra.Has("chips") {
			p.Chips = append([]string(nil), chips...)
		}
	}
	return comps
}

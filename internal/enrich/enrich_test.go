// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package enrich

import (
	"reflect"
	"testing"

	"slidepress/internal/models"
)

func TestExtractMetrics(t *testing.T) {
	text := "Revenue grew 42% year over year. We closed $3.2M in new bookings, and onboarding is 10x faster; churn fell to 1,200 accounts."
	got := ExtractMetrics(text)
	want := []Metric{
		{Value: "42%", Label: "year over year"},
		{Value: "$3.2M", Label: "in new bookings"},
		{Value: "10x", Label: "faster"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractMetrics = %+v, want %+v", got, want)
	}
}

func TestExtractChips(t *testing.T) {
	content := "Key pillars:\n- Speed\n- Security first\n* A very long bullet that is clearly a sentence\n1. Scale\n• Cost."
	got := ExtractChips(content)
	want := []string{"Speed", "Security first", "Scale", "Cost"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractChips = %v, want %v", got, want)
	}
}

func TestInjectOutlineValues(t *testing.T) {
	filled := models.Component{ID: "filled", Type: models.TypeCustomComponent}
	filled.Props.Value = []byte(`"99"`)
	empty1 := models.Component{ID: "e1", Type: models.TypeCustomComponent}
	empty2 := models.Component{ID: "e2", Type: models.TypeCustomComponent}
	empty2.Props.Label = "Custom"
	text := models.Component{ID: "t", Type: models.TypeTextBlock}

	outline := models.SlideOutline{Title: "Growth", Content: "Up 42% in Q3. NPS rose to 3x baseline.\n- Retention\n- Expansion"}
	out := InjectOutlineValues([]models.Component{filled, empty1, text, empty2}, outline)

	if string(out[0].Props.Value) != `"99"` {
		t.Errorf("existing value overwritten: %s", out[0].Props.Value)
	}
	if string(out[1].Props.Value) != `"42%"` || out[1].Props.Label != "in Q3" {
		t.Errorf("e1 = %s / %q", out[1].Props.Value, out[1].Props.Label)
	}
	if string(out[3].Props.Value) != `"3x"` || out[3].Props.Label != "Custom" {
		t.Errorf("e2 = %s / %q", out[3].Props.Value, out[3].Props.Label)
	}
	if !reflect.DeepEqual(out[1].Props.Chips, []string{"Retention", "Expansion"}) {
		t.Errorf("chips = %v", out[1].Props.Chips)
	}
	if out[2].Props.Value != nil {
		t.Error("text components must not be enriched")
	}
}

func TestInjectOutlineValues_EmptyOutline(t *testing.T) {
	c := models.Component{Type: models.TypeCustomComponent}
	out := InjectOutlineValues([]models.Component{c}, models.SlideOutline{})
	if out[0].Props.Value != nil || out[0].Props.Chips != nil {
		t.Error("nothing should be injected without an outline")
	}
}

func TestInjectOutlineValues_MarkdownOutline(t *testing.T) {
	c := models.Component{Type: models.TypeCustomComponent}
	outline := models.SlideOutline{Content: "## Results\n\nConversion up **18%** [after the redesign](https://example.com).\n\n- *Faster* checkout\n- `SSO`"}
	out := InjectOutlineValues([]models.Component{c}, outline)

	if string(out[0].Props.Value) != `"18%"` || out[0].Props.Label != "after the redesign" {
		t.Errorf("value/label = %s / %q", out[0].Props.Value, out[0].Props.Label)
	}
	if !reflect.DeepEqual(out[0].Props.Chips, []string{"Faster checkout", "SSO"}) {
		t.Errorf("chips = %v", out[0].Props.Chips)
	}
}

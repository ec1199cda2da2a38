// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Region names a theme structure may list in elements_to_include.
const (
	RegionLogo        = "logo"
	RegionSlideNumber = "slide_number"
	RegionSources     = "sources"
	RegionDividerLine = "divider_line"
)

// ThemeStructure is the per-slide positioning brief derived from the theme.
// Every part is optional; missing parts fall back to safe defaults.
type ThemeStructure struct {
	Positioning       Positioning `json:"positioning"`
	ElementsToInclude []string    `json:"elements_to_include,omitempty"`
	Styling           Styling     `json:"styling"`
}

// Includes reports whether region is listed in elements_to_include. A nil
// structure includes nothing.
func (s *ThemeStructure) Includes(region string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.ElementsToInclude {
		if r == region {
			return true
		}
	}
	return false
}

// Positioning groups the placement rules keyed by region.
type Positioning struct {
	ContentArea *ContentArea     `json:"content_area,omitempty"`
	Logo        *LogoSpec        `json:"logo,omitempty"`
	SlideNumber *SlideNumberSpec `json:"slide_number,omitempty"`
	Sources     *SourcesSpec     `json:"sources,omitempty"`
	DividerLine *DividerSpec     `json:"divider_line,omitempty"`
	Subtitle    *SubtitleSpec    `json:"subtitle,omitempty"`
}

// ContentArea is the main text column.
type ContentArea struct {
	X      *Num `json:"x,omitempty"`
	Y      *Num `json:"y,omitempty"`
	Width  *Num `json:"width,omitempty"`
	Height *Num `json:"height,omitempty"`
}

// Size is a width/height pair.
type Size struct {
	Width  *Num `json:"width,omitempty"`
	Height *Num `json:"height,omitempty"`
}

// LogoSpec places the deck logo.
type LogoSpec struct {
	Position *Point `json:"position,omitempty"`
	Size     *Size  `json:"size,omitempty"`
	Src      string `json:"src,omitempty"`
	Aspect   string `json:"aspect,omitempty"`
}

// TextStyle is the subset of text styling a structure can dictate.
type TextStyle struct {
	FontSize   *Num   `json:"fontSize,omitempty"`
	Opacity    *Num   `json:"opacity,omitempty"`
	Color      string `json:"color,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
}

// SlideNumberSpec places the slide number.
type SlideNumberSpec struct {
	Position *Point     `json:"position,omitempty"`
	Text     string     `json:"text,omitempty"`
	Style    *TextStyle `json:"style,omitempty"`
}

// SourcesSpec places the citations footer.
type SourcesSpec struct {
	Position *Point     `json:"position,omitempty"`
	Width    *Num       `json:"width,omitempty"`
	Height   *Num       `json:"height,omitempty"`
	Style    *TextStyle `json:"style,omitempty"`
}

// DividerSpec styles the header divider.
type DividerSpec struct {
	StartPoint    *Point   `json:"startPoint,omitempty"`
	EndPoint      *Point   `json:"endPoint,omitempty"`
	StrokeWidth   *Num     `json:"stroke_width,omitempty"`
	Opacity       *Num     `json:"opacity,omitempty"`
	ThemeColors   []string `json:"theme_colors,omitempty"`
	ColorPriority []string `json:"color_priority,omitempty"`
}

// SubtitleSpec spaces the subtitle from the title.
type SubtitleSpec struct {
	GapBelowTitle *Num `json:"gap_below_title,omitempty"`
}

// Styling carries structure-level colours.
type Styling struct {
	Colors StylingColors `json:"colors"`
}

// StylingColors holds structure-level colour overrides.
type StylingColors struct {
	DividerColor string `json:"divider_color,omitempty"`
}

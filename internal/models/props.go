// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	"slidepress/internal/jsonx"
)

// Props is the typed view of a component's property bag. Fields are grouped
// by the component types that use them; keys nobody declares land in Extra
// and are written back unchanged.
type Props struct {
	// Geometry shared by every positioned component.
	Position *Point `json:"position,omitempty"`
	Width    *Num   `json:"width,omitempty"`
	Height   *Num   `json:"height,omitempty"`
	ZIndex   *Num   `json:"zIndex,omitempty"`
	Opacity  *Num   `json:"opacity,omitempty"`
	Rotation *Num   `json:"rotation,omitempty"`

	// Text, Title, Subtitle, Heading, TextBlock, TiptapTextBlock.
	Texts         []TextSegment    `json:"texts,omitempty"`
	Text          *string          `json:"text,omitempty"`
	FontSize      *Num             `json:"fontSize,omitempty"`
	FontFamily    string           `json:"fontFamily,omitempty"`
	Color         string           `json:"color,omitempty"`
	LetterSpacing *Num             `json:"letterSpacing,omitempty"`
	LineHeight    *Num             `json:"lineHeight,omitempty"`
	TextShadow    jsonx.RawMessage `json:"textShadow,omitempty"`
	Alignment     string           `json:"alignment,omitempty"`

	// Background.
	BackgroundType  string    `json:"backgroundType,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	Gradient        *Gradient `json:"gradient,omitempty"`

	// Image.
	Src       string `json:"src,omitempty"`
	Alt       string `json:"alt,omitempty"`
	ObjectFit string `json:"objectFit,omitempty"`

	// Icon.
	Size     *Num   `json:"size,omitempty"`
	IconName string `json:"iconName,omitempty"`

	// Lines.
	StartPoint  *Point `json:"startPoint,omitempty"`
	EndPoint    *Point `json:"endPoint,omitempty"`
	Stroke      string `json:"stroke,omitempty"`
	StrokeWidth *Num   `json:"strokeWidth,omitempty"`
	StartShape  string `json:"startShape,omitempty"`
	EndShape    string `json:"endShape,omitempty"`

	// Shape.
	Fill      string `json:"fill,omitempty"`
	ShapeType string `json:"shapeType,omitempty"`

	// CustomComponent.
	PrimaryColor   string           `json:"primaryColor,omitempty"`
	SecondaryColor string           `json:"secondaryColor,omitempty"`
	TextColor      string           `json:"textColor,omitempty"`
	Value          jsonx.RawMessage `json:"value,omitempty"`
	Label          string           `json:"label,omitempty"`
	Chips          []string         `json:"chips,omitempty"`

	Metadata *Metadata `json:"metadata,omitempty"`

	Extra Extras `json:"-"`
}

type propsAlias Props

// UnmarshalJSON decodes leniently; a non-object bag decodes empty.
func (p *Props) UnmarshalJSON(b []byte) error {
	var a propsAlias
	extra, err := decodeLenient(b, &a)
	if err == errNotObject {
		*p = Props{}
		return nil
	}
	if err != nil {
		return err
	}
	*p = Props(a)
	p.Extra = extra
	return nil
}

// MarshalJSON re-emits unknown keys.
func (p Props) MarshalJSON() ([]byte, error) {
	return encodeWithExtras(propsAlias(p), p.Extra)
}

// Point is an x/y pair.
type Point struct {
	X *Num `json:"x,omitempty"`
	Y *Num `json:"y,omitempty"`
}

// Pt builds an integral point.
func Pt(x, y int) *Point { return &Point{X: NInt(x), Y: NInt(y)} }

// TextSegment is one styled run of rich text.
type TextSegment struct {
	Text       string `json:"text"`
	FontSize   *Num   `json:"fontSize,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
	Color      string `json:"color,omitempty"`
	Underline  *bool  `json:"underline,omitempty"`

	Extra Extras `json:"-"`
}

type segmentAlias TextSegment

// UnmarshalJSON accepts a bare string as a segment with that text.
func (s *TextSegment) UnmarshalJSON(b []byte) error {
	var text string
	if err := jsonx.Unmarshal(b, &text); err == nil {
		*s = TextSegment{Text: text}
		return nil
	}
	var a segmentAlias
	extra, err := decodeLenient(b, &a)
	if err == errNotObject {
		*s = TextSegment{}
		return nil
	}
	if err != nil {
		return err
	}
	*s = TextSegment(a)
	s.Extra = extra
	return nil
}

// MarshalJSON re-emits unknown keys.
func (s TextSegment) MarshalJSON() ([]byte, error) {
	return encodeWithExtras(segmentAlias(s), s.Extra)
}

// Gradient fills a Background or Shape.
type Gradient struct {
	Type     string         `json:"type,omitempty"`
	Angle    *Num           `json:"angle,omitempty"`
	Position string         `json:"position,omitempty"`
	Stops    []GradientStop `json:"stops,omitempty"`

	Extra Extras `json:"-"`
}

type gradientAlias Gradient

// UnmarshalJSON decodes leniently.
func (g *Gradient) UnmarshalJSON(b []byte) error {
	var a gradientAlias
	extra, err := decodeLenient(b, &a)
	if err == errNotObject {
		*g = Gradient{}
		return nil
	}
	if err != nil {
		return err
	}
	*g = Gradient(a)
	g.Extra = extra
	return nil
}

// MarshalJSON re-emits unknown keys.
func (g Gradient) MarshalJSON() ([]byte, error) {
	return encodeWithExtras(gradientAlias(g), g.Extra)
}

// GradientStop is a colour at a percentage along the gradient.
type GradientStop struct {
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// Flag is a boolean the model may spell as true, "true", "yes" or 1.
type Flag bool

// UnmarshalJSON never fails; unrecognised values are false.
func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := jsonx.Unmarshal(b, &v); err != nil {
		*f = false
		return nil
	}
	switch t := v.(type) {
	case bool:
		*f = Flag(t)
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1", "on":
			*f = true
		default:
			*f = false
		}
	case float64:
		*f = t != 0
	default:
		*f = false
	}
	return nil
}

// Metadata carries layout intent the passes read and write.
type Metadata struct {
	Role Role   `json:"role,omitempty"`
	Kind string `json:"kind,omitempty"`

	// Icon/text pairing controls.
	Pairing             string   `json:"pairing,omitempty"`
	Decorative          Flag     `json:"decorative,omitempty"`
	ForceAdjacency      Flag     `json:"forceAdjacency,omitempty"`
	ForceIconAdjacency  Flag     `json:"forceIconAdjacency,omitempty"`
	AcceptIconAdjacency *Flag    `json:"acceptIconAdjacency,omitempty"`
	Placement           string   `json:"placement,omitempty"`
	PairedTextID        string   `json:"pairedTextId,omitempty"`
	PairID              string   `json:"pairId,omitempty"`
	PairedIconIDs       []string `json:"pairedIconIds,omitempty"`

	Extra Extras `json:"-"`
}

type metadataAlias Metadata

// UnmarshalJSON decodes leniently; non-object metadata decodes empty.
func (m *Metadata) UnmarshalJSON(b []byte) error {
	var a metadataAlias
	extra, err := decodeLenient(b, &a)
	if err == errNotObject {
		*m = Metadata{}
		return nil
	}
	if err != nil {
		return err
	}
	*m = Metadata(a)
	m.Extra = extra
	return nil
}

// MarshalJSON re-emits unknown keys.
func (m Metadata) MarshalJSON() ([]byte, error) {
	return encodeWithExtras(metadataAlias(m), m.Extra)
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	"slidepress/internal/geometry"
	"slidepress/internal/jsonx"
)

// ComponentType distinguishes the kinds of visual element on a slide.
type ComponentType string

const (
	TypeBackground      ComponentType = "Background"
	TypeTitle           ComponentType = "Title"
	TypeSubtitle        ComponentType = "Subtitle"
	TypeHeading         ComponentType = "Heading"
	TypeTiptapTextBlock ComponentType = "TiptapTextBlock"
	TypeTextBlock       ComponentType = "TextBlock"
	TypeIcon            ComponentType = "Icon"
	TypeImage           ComponentType = "Image"
	TypeShape           ComponentType = "Shape"
	TypeChart           ComponentType = "Chart"
	TypeTable           ComponentType = "Table"
	TypeCustomComponent ComponentType = "CustomComponent"
	TypeLines           ComponentType = "Lines"
)

// IsText reports whether t renders rich or plain text.
func (t ComponentType) IsText() bool {
	switch t {
	case TypeTiptapTextBlock, TypeTextBlock, TypeTitle, TypeSubtitle, TypeHeading:
		return true
	}
	return false
}

// IsBodyText reports whether t is a free-form text block (not a heading).
func (t ComponentType) IsBodyText() bool {
	return t == TypeTextBlock || t == TypeTiptapTextBlock
}

// Component is one element of a slide.
type Component struct {
	ID    string        `json:"id,omitempty"`
	Type  ComponentType `json:"type"`
	Props Props         `json:"props"`

	Extra Extras `json:"-"`
}

type componentAlias Component

// UnmarshalJSON decodes leniently; a non-object component decodes empty.
func (c *Component) UnmarshalJSON(b []byte) error {
	var a componentAlias
	extra, err := decodeLenient(b, &a)
	if err == errNotObject {
		*c = Component{}
		return nil
	}
	if err != nil {
		return err
	}
	*c = Component(a)
	c.Extra = extra
	return nil
}

// MarshalJSON re-emits unknown top-level keys.
func (c Component) MarshalJSON() ([]byte, error) {
	return encodeWithExtras(componentAlias(c), c.Extra)
}

// Meta returns the component metadata, creating it when absent.
func (c *Component) Meta() *Metadata {
	if c.Props.Metadata == nil {
		c.Props.Metadata = &Metadata{}
	}
	return c.Props.Metadata
}

// Role returns the metadata role without allocating metadata.
func (c *Component) Role() Role {
	if c.Props.Metadata == nil {
		return RoleNone
	}
	return c.Props.Metadata.Role
}

// X returns position.x, or 0.
func (c *Component) X() int {
	if c.Props.Position == nil {
		return 0
	}
	return c.Props.Position.X.Int(0)
}

// Y returns position.y, or 0.
func (c *Component) Y() int {
	if c.Props.Position == nil {
		return 0
	}
	return c.Props.Position.Y.Int(0)
}

// HasY reports whether position.y is present and parseable.
func (c *Component) HasY() bool {
	return c.Props.Position != nil && c.Props.Position.Y.Valid()
}

// Width returns width, or 0.
func (c *Component) Width() int { return c.Props.Width.Int(0) }

// Height returns height, or 0.
func (c *Component) Height() int { return c.Props.Height.Int(0) }

// SetPosition overwrites position with integer coordinates.
func (c *Component) SetPosition(x, y int) {
	c.Props.Position = &Point{X: NInt(x), Y: NInt(y)}
}

// SetSize overwrites width and height.
func (c *Component) SetSize(w, h int) {
	c.Props.Width = NInt(w)
	c.Props.Height = NInt(h)
}

// BBox treats position as the component's center.
func (c *Component) BBox() geometry.Rect {
	return geometry.BBox(c.X(), c.Y(), c.Width(), c.Height())
}

// FontSize resolves the effective font size: the first text segment wins,
// then the component-level prop. Zero means unknown.
func (c *Component) FontSize() int {
	if len(c.Props.Texts) > 0 {
		if v := c.Props.Texts[0].FontSize.Int(0); v > 0 {
			return v
		}
	}
	return c.Props.FontSize.Int(0)
}

// Text returns the plain text content of the component.
func (c *Component) Text() string {
	if len(c.Props.Texts) > 0 {
		var sb strings.Builder
		for _, seg := range c.Props.Texts {
			sb.WriteString(seg.Text)
		}
		return sb.String()
	}
	if c.Props.Text != nil {
		return *c.Props.Text
	}
	return ""
}

// SetText replaces the text content, keeping the first segment's styling.
func (c *Component) SetText(s string) {
	if len(c.Props.Texts) > 0 {
		first := c.Props.Texts[0]
		first.Text = s
		c.Props.Texts = []TextSegment{first}
		return
	}
	c.Props.Text = &s
}

// Clone returns a deep copy of c.
func (c Component) Clone() (Component, error) {
	b, err := jsonx.Marshal(c)
	if err != nil {
		return Component{}, err
	}
	var out Component
	if err := jsonx.Unmarshal(b, &out); err != nil {
		return Component{}, err
	}
	return out, nil
}

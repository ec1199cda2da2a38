// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"math"
	"strconv"

	"slidepress/internal/geometry"
	"slidepress/internal/jsonx"
)

// Num is a numeric prop as the model emitted it: a JSON number, or a string
// like "42px" kept raw until a pass coerces it.
type Num struct {
	val   float64
	raw   string
	isRaw bool
}

// N returns a pointer to a numeric Num.
func N(v float64) *Num { return &Num{val: v} }

// NInt returns a pointer to an integral Num.
func NInt(v int) *Num { return &Num{val: float64(v)} }

// NRaw returns a pointer to a Num holding an unparsed string.
func NRaw(s string) *Num { return &Num{raw: s, isRaw: true} }

// UnmarshalJSON never fails: anything that is not a number is kept raw.
func (n *Num) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := jsonx.Unmarshal(b, &s); err == nil {
			*n = Num{raw: s, isRaw: true}
			return nil
		}
	}
	var f float64
	if err := jsonx.Unmarshal(b, &f); err == nil {
		*n = Num{val: f}
		return nil
	}
	*n = Num{raw: string(b), isRaw: true}
	return nil
}

// MarshalJSON writes integral values without a fractional part.
func (n Num) MarshalJSON() ([]byte, error) {
	if n.isRaw {
		return jsonx.Marshal(n.raw)
	}
	if n.val == math.Trunc(n.val) && math.Abs(n.val) < 1e15 {
		return []byte(strconv.FormatInt(int64(n.val), 10)), nil
	}
	return jsonx.Marshal(n.val)
}

// Int resolves n to an int, falling back to def when n is nil or unparseable.
func (n *Num) Int(def int) int {
	if n == nil {
		return def
	}
	if n.isRaw {
		return geometry.ParseToInt(n.raw, def)
	}
	return geometry.ParseToInt(n.val, def)
}

// Float resolves n to a float64, accepting typographic units on raw values.
func (n *Num) Float(def float64) float64 {
	if n == nil {
		return def
	}
	if n.isRaw {
		return geometry.ParseToFloat(n.raw, def)
	}
	return n.val
}

// Valid reports whether n is present and resolves to a number.
func (n *Num) Valid() bool {
	if n == nil {
		return false
	}
	if !n.isRaw {
		return true
	}
	_, ok := geometry.ParseFloat(n.raw)
	return ok
}

// IsInt reports whether n is a parsed, integral number.
func (n *Num) IsInt() bool {
	return n != nil && !n.isRaw && n.val == math.Trunc(n.val)
}

// Raw returns the unparsed string, if n holds one.
func (n *Num) Raw() (string, bool) {
	if n == nil || !n.isRaw {
		return "", false
	}
	return n.raw, true
}

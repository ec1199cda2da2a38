// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package jsonx wraps the JSON implementation used on hot paths and repairs
// the loosely formed JSON language models return.
package jsonx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/kaptinlin/jsonrepair"
)

// RawMessage is a raw encoded JSON value. It is the standard library type,
// so values cross package boundaries without conversion.
type RawMessage = json.RawMessage

// Marshal encodes v with go-json. Custom MarshalJSON methods are honoured.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes data into v with go-json.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// NewEncoder returns a streaming encoder writing to w.
func NewEncoder(w io.Writer) *json.Encoder {
	return json.NewEncoder(w)
}

// ErrEmpty is returned by Repair when the input holds no JSON at all.
var ErrEmpty = errors.New("jsonx: empty input")

// Repair extracts the JSON document from model output and fixes common
// defects (code fences, trailing commas, single quotes, truncated
// brackets). Valid input is returned unchanged.
func Repair(s string) ([]byte, error) {
	s = stripFence(s)
	if s == "" {
		return nil, ErrEmpty
	}
	if json.Valid([]byte(s)) {
		return []byte(s), nil
	}
	fixed, err := jsonrepair.JSONRepair(s)
	if err != nil {
		return nil, fmt.Errorf("repair json: %w", err)
	}
	return []byte(fixed), nil
}

// stripFence removes a surrounding markdown code fence and any prose before
// the first brace.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}
	if i := strings.IndexAny(s, "{["); i > 0 {
		s = s[i:]
	}
	return s
}

// Compact removes insignificant whitespace.
func Compact(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

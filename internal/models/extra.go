// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"sync"

	"slidepress/internal/jsonx"
)

// Extras holds JSON keys a typed struct does not declare. They are kept
// verbatim so AI-supplied fields survive a decode/encode cycle.
type Extras map[string]jsonx.RawMessage

var errNotObject = errors.New("models: JSON value is not an object")

// fieldIndexes caches, per struct type, the JSON key → field index map.
var fieldIndexes sync.Map

func jsonFields(t reflect.Type) map[string]int {
	if cached, ok := fieldIndexes.Load(t); ok {
		return cached.(map[string]int)
	}
	fields := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		fields[name] = i
	}
	fieldIndexes.Store(t, fields)
	return fields
}

// decodeLenient fills the struct behind v key by key. A declared key whose
// value does not fit the field type is kept in the returned extras instead
// of failing the whole object.
func decodeLenient(data []byte, v any) (Extras, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotObject
	}
	var all map[string]jsonx.RawMessage
	if err := jsonx.Unmarshal(trimmed, &all); err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(v).Elem()
	fields := jsonFields(rv.Type())

	var extra Extras
	for key, raw := range all {
		if idx, ok := fields[key]; ok {
			field := rv.Field(idx)
			ptr := reflect.New(field.Type())
			if err := jsonx.Unmarshal(raw, ptr.Interface()); err == nil {
				field.Set(ptr.Elem())
				continue
			}
		}
		if extra == nil {
			extra = make(Extras)
		}
		extra[key] = raw
	}
	return extra, nil
}

// encodeWithExtras marshals v and merges extra keys that v did not emit.
func encodeWithExtras(v any, extra Extras) ([]byte, error) {
	b, err := jsonx.Marshal(v)
	if err != nil || len(extra) == 0 {
		return b, err
	}
	var merged map[string]jsonx.RawMessage
	if err := jsonx.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for key, raw := range extra {
		if _, exists := merged[key]; !exists {
			merged[key] = raw
		}
	}
	return jsonx.Marshal(merged)
}

// Has reports whether key is present in e.
func (e Extras) Has(key string) bool {
	_, ok := e[key]
	return ok
}

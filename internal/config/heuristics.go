// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"slidepress/internal/layout"
)

// LoadHeuristics reads layout thresholds from a YAML file. Keys present in
// the file override the defaults; missing keys keep them. An empty path
// returns the defaults.
func LoadHeuristics(path string) (layout.Heuristics, error) {
	h := layout.DefaultHeuristics()
	if path == "" {
		return h, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("read layout config: %w", err)
	}
	if err := decodeHeuristics(data, &h); err != nil {
		return layout.DefaultHeuristics(), fmt.Errorf("parse layout config %s: %w", path, err)
	}
	slog.Info("layout heuristics loaded", "path", path)
	return h, nil
}

func decodeHeuristics(data []byte, h *layout.Heuristics) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(h); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if h.SupportingMinWidth > h.SupportingMaxWidth {
		return fmt.Errorf("supporting_min_width %d exceeds supporting_max_width %d",
			h.SupportingMinWidth, h.SupportingMaxWidth)
	}
	return nil
}

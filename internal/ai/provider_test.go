// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"os"
	"testing"
	"time"
)

// liveSlide drafts one slide against a real provider API.
func liveSlide(t *testing.T, name, keyEnv, modelEnv, defaultModel string) {
	t.Helper()
	key := os.Getenv(keyEnv)
	if key == "" {
		t.Skipf("%s not set", keyEnv)
	}
	model := os.Getenv(modelEnv)
	if model == "" {
		model = defaultModel
	}

	reg := NewRegistry(name, map[string]ProviderConfig{name: {APIKey: key, Model: model}})
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	s, err := NewSlideGenerator(reg).Generate(ctx, "A title slide for a talk about tide pools.", nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	t.Logf("%s returned %d components", name, len(s.Components))
}

// TestOpenAILive is skipped if OPENAI_API_KEY is not set.
func TestOpenAILive(t *testing.T) {
	liveSlide(t, "openai", "OPENAI_API_KEY", "OPENAI_MODEL", "gpt-4o")
}

// TestClaudeLive is skipped if CLAUDE_API_KEY is not set.
func TestClaudeLive(t *testing.T) {
	liveSlide(t, "claude", "CLAUDE_API_KEY", "CLAUDE_MODEL", "claude-sonnet-4-6")
}

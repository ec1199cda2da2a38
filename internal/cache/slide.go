// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// slide.go memoizes pipeline output in Valkey. Entries are keyed by deck
// and by a content hash of the input slide and its context, so identical
// regeneration requests skip the pipeline entirely.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"slidepress/internal/jsonx"
	"slidepress/internal/models"
)

const (
	slideKeyPrefix = "slide:"

	// DefaultSlideTTL is how long a processed slide stays cached.
	DefaultSlideTTL = 10 * time.Minute

	// keyVersion is folded into every content key. Bump it when pass
	// output changes so stale results are not served.
	keyVersion = "v1"
)

// contentNamespace scopes content keys to processed slides.
var contentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("slidepress:processed-slide"))

// SlideCache stores processed slide payloads in Valkey.
type SlideCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSlideCache creates a slide cache backed by the given Valkey client.
func NewSlideCache(client *redis.Client, ttl time.Duration) *SlideCache {
	if ttl == 0 {
		ttl = DefaultSlideTTL
	}
	return &SlideCache{client: client, ttl: ttl}
}

// ContentKey derives a stable key from a slide and its context.
func ContentKey(slide *models.Slide, sctx *models.Context) (string, error) {
	payload, err := jsonx.Marshal(struct {
		Version string          `json:"v"`
		Slide   *models.Slide   `json:"slide"`
		Context *models.Context `json:"context"`
	}{keyVersion, slide, sctx})
	if err != nil {
		return "", fmt.Errorf("content key: %w", err)
	}
	return uuid.NewSHA1(contentNamespace, payload).String(), nil
}

// slideKey builds the Valkey key for one entry.
func slideKey(deckID, contentKey string) string {
	if deckID == "" {
		deckID = "_"
	}
	return slideKeyPrefix + deckID + ":" + contentKey
}

// Get returns the cached payload for a content key. A nil cache, a miss
// and a Valkey error all report false.
func (sc *SlideCache) Get(ctx context.Context, deckID, contentKey string) ([]byte, bool) {
	if sc == nil {
		return nil, false
	}
	key := slideKey(deckID, contentKey)
	val, err := sc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("slide cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("slide cache hit", "key", key)
	return val, true
}

// Set stores a processed payload with the configured TTL.
func (sc *SlideCache) Set(ctx context.Context, deckID, contentKey string, payload []byte) {
	if sc == nil {
		return
	}
	key := slideKey(deckID, contentKey)
	if err := sc.client.Set(ctx, key, payload, sc.ttl).Err(); err != nil {
		slog.Warn("slide cache set error", "key", key, "error", err)
	}
}

// InvalidateDeck removes every cached slide of a deck by scanning for its
// prefix and returns how many keys were deleted.
func (sc *SlideCache) InvalidateDeck(ctx context.Context, deckID string) int {
	if sc == nil {
		return 0
	}
	pattern := slideKey(deckID, "*")
	var cursor uint64
	var deleted int
	for {
		keys, next, err := sc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("slide cache scan error", "deck_id", deckID, "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := sc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("slide cache bulk delete error", "deck_id", deckID, "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("slide cache cleared for deck", "deck_id", deckID, "deleted", deleted)
	}
	return deleted
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go caches rendered HTML in Valkey (L2). A greeting never changes
// after it is created, so its recipient page only goes stale when the
// templates change. Keys carry the template version for that reason:
// page:<version>:<key>.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = time.Hour
)

// PageCache stores rendered pages for one template version. A nil
// *PageCache is disabled: every Get misses and Set does nothing.
type PageCache struct {
	client  *redis.Client
	ttl     time.Duration
	version string
}

// NewPageCache creates a page cache for pages rendered by templates with
// the given version.
func NewPageCache(client *redis.Client, ttl time.Duration, version string) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl, version: version}
}

func (pc *PageCache) fullKey(key string) string {
	return pageKeyPrefix + pc.version + ":" + key
}

// Get returns the cached page for key.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, pc.fullKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set caches a rendered page under key.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, pc.fullKey(key), html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// Prune deletes pages cached by other template versions and returns how
// many it removed. The server runs it once after startup.
func (pc *PageCache) Prune(ctx context.Context) (int, error) {
	if pc == nil {
		return 0, nil
	}
	current := pageKeyPrefix + pc.version + ":"
	var cursor uint64
	deleted := 0
	for {
		keys, next, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			return deleted, err
		}
		var stale []string
		for _, k := range keys {
			if !strings.HasPrefix(k, current) {
				stale = append(stale, k)
			}
		}
		if len(stale) > 0 {
			if err := pc.client.Del(ctx, stale...).Err(); err != nil {
				return deleted, err
			}
			deleted += len(stale)
		}
		if cursor = next; cursor == 0 {
			return deleted, nil
		}
	}
}

// HomeKey returns the cache key for the landing page.
func HomeKey() string {
	return "_home"
}

// GreetingKey returns the cache key for a greeting's recipient page. The
// effects flag is part of the key since it changes the rendered markup.
func GreetingKey(id string, effects bool) string {
	if effects {
		return "greeting:" + id
	}
	return "greeting:" + id + ":still"
}

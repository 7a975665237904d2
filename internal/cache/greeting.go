// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto"
	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	ristrettostore "github.com/eko/gocache/store/ristretto/v4"

	"hola/internal/models"
)

const (
	// DefaultGreetingTTL is how long a decoded greeting stays in process memory.
	DefaultGreetingTTL = 10 * time.Minute

	// DefaultGreetingItems caps the number of greetings held in memory.
	DefaultGreetingItems = 10_000
)

// GreetingCache is an in-process (L1) cache of decoded greetings in front of
// the document store.
type GreetingCache struct {
	raw     *ristretto.Cache
	marshal *marshaler.Marshaler
	ttl     time.Duration
}

// NewGreetingCache creates a cache holding up to maxItems greetings.
func NewGreetingCache(maxItems int64, ttl time.Duration) (*GreetingCache, error) {
	if ttl == 0 {
		ttl = DefaultGreetingTTL
	}
	raw, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxItems * 10,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("greeting cache: %w", err)
	}
	manager := gocache.New[any](ristrettostore.NewRistretto(raw))
	return &GreetingCache{raw: raw, marshal: marshaler.New(manager), ttl: ttl}, nil
}

func greetingKey(id string) string {
	return "greeting#" + id
}

// Get returns the cached greeting for id.
func (c *GreetingCache) Get(ctx context.Context, id string) (*models.Greeting, bool) {
	val, err := c.marshal.Get(ctx, greetingKey(id), new(models.Greeting))
	if err != nil {
		return nil, false
	}
	g, ok := val.(*models.Greeting)
	return g, ok
}

// Set caches g under its id. The write is visible to Get once Set returns.
func (c *GreetingCache) Set(ctx context.Context, g *models.Greeting) {
	if err := c.marshal.Set(ctx, greetingKey(g.ID), g, store.WithExpiration(c.ttl), store.WithCost(1)); err != nil {
		slog.Warn("greeting cache set error", "id", g.ID, "error", err)
		return
	}
	c.raw.Wait()
}

// Delete drops id from the cache.
func (c *GreetingCache) Delete(ctx context.Context, id string) {
	if err := c.marshal.Delete(ctx, greetingKey(id)); err != nil {
		slog.Warn("greeting cache delete error", "id", id, "error", err)
	}
}

// Close releases the cache's background goroutines.
func (c *GreetingCache) Close() {
	c.raw.Close()
}

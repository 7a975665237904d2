// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"hola/internal/models"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "page:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	client, err := ConnectValkey(context.Background(), ValkeyOptions{
		Host:     envOr("VALKEY_HOST", "localhost"),
		Port:     envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestValkeyOptionsAddr(t *testing.T) {
	tests := []struct {
		opts ValkeyOptions
		want string
	}{
		{ValkeyOptions{Host: "localhost", Port: "6379"}, "localhost:6379"},
		{ValkeyOptions{Host: "::1", Port: "6380"}, "[::1]:6380"},
	}
	for _, tt := range tests {
		if got := tt.opts.Addr(); got != tt.want {
			t.Errorf("Addr(%+v): got %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestPageCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, time.Minute, "v1")
	ctx := context.Background()
	key := GreetingKey("test-greeting", true)

	if data, ok := pc.Get(ctx, key); ok || data != nil {
		t.Error("expected cache miss")
	}

	html := []byte("<html><body>Happy Birthday!</body></html>")
	pc.Set(ctx, key, html)

	data, ok := pc.Get(ctx, key)
	if !ok || string(data) != string(html) {
		t.Errorf("got (%q, %v), want a hit", data, ok)
	}

	if _, ok := NewPageCache(client, time.Minute, "v2").Get(ctx, key); ok {
		t.Error("another template version should miss")
	}
}

func TestPageCachePrune(t *testing.T) {
	client := testValkeyClient(t)
	ctx := context.Background()
	old := NewPageCache(client, time.Minute, "old")
	current := NewPageCache(client, time.Minute, "new")

	old.Set(ctx, GreetingKey("a", true), []byte("a"))
	old.Set(ctx, HomeKey(), []byte("home"))
	current.Set(ctx, HomeKey(), []byte("home"))

	deleted, err := current.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted < 2 {
		t.Errorf("deleted: got %d, want at least the 2 old pages", deleted)
	}
	if _, ok := old.Get(ctx, HomeKey()); ok {
		t.Error("old version should be gone")
	}
	if _, ok := current.Get(ctx, HomeKey()); !ok {
		t.Error("current version should survive")
	}
}

func TestGreetingKey(t *testing.T) {
	tests := []struct {
		id      string
		effects bool
		want    string
	}{
		{"abc", true, "greeting:abc"},
		{"abc", false, "greeting:abc:still"},
	}
	for _, tt := range tests {
		if got := GreetingKey(tt.id, tt.effects); got != tt.want {
			t.Errorf("GreetingKey(%q, %v): got %q, want %q", tt.id, tt.effects, got, tt.want)
		}
	}
}

func TestNewPageCacheDefaultTTL(t *testing.T) {
	pc := NewPageCache(nil, 0, "v1")
	if pc.ttl != DefaultPageTTL {
		t.Errorf("expected DefaultPageTTL (%v), got %v", DefaultPageTTL, pc.ttl)
	}
}

func TestNilPageCacheIsDisabled(t *testing.T) {
	var pc *PageCache
	ctx := context.Background()

	pc.Set(ctx, "k", []byte("<html></html>"))
	if _, ok := pc.Get(ctx, "k"); ok {
		t.Error("nil cache should always miss")
	}
	if n, err := pc.Prune(ctx); n != 0 || err != nil {
		t.Errorf("Prune on nil cache: got (%d, %v)", n, err)
	}
}

func TestGreetingCache(t *testing.T) {
	c, err := NewGreetingCache(100, time.Minute)
	if err != nil {
		t.Fatalf("NewGreetingCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	enabled := false
	g := &models.Greeting{
		ID:                      "63902476-66f3-4351-a617-0a36b1f0cd15",
		RecipientName:           "John",
		Occasion:                models.OccasionBirthday,
		ContinuousEffectEnabled: &enabled,
		Elements: []models.CardElement{
			{ID: "sep", Type: models.ElementSeparator, Style: map[string]string{"style": "dotted"}},
		},
	}

	if _, ok := c.Get(ctx, g.ID); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(ctx, g)
	got, ok := c.Get(ctx, g.ID)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if diff := cmp.Diff(g, got); diff != "" {
		t.Errorf("cached greeting mismatch (-want +got):\n%s", diff)
	}

	c.Delete(ctx, g.ID)
	if _, ok := c.Get(ctx, g.ID); ok {
		t.Error("expected miss after Delete")
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"hola/internal/models"
)

const (
	// customKeyPrefix namespaces per-device custom theme lists in Valkey.
	customKeyPrefix = "themes:"

	// DefaultCustomTTL is how long a device keeps its custom themes.
	DefaultCustomTTL = 30 * 24 * time.Hour
)

// CustomStore persists the custom themes created on one device. The owner is
// an opaque device key (the editor session id).
type CustomStore interface {
	Load(ctx context.Context, owner string) ([]models.GreetingTheme, error)
	Save(ctx context.Context, owner string, t models.GreetingTheme) error
}

// ValkeyStore keeps each owner's custom themes as one JSON list in Valkey.
type ValkeyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkeyStore creates a custom theme store backed by the given client.
func NewValkeyStore(client *redis.Client, ttl time.Duration) *ValkeyStore {
	if ttl == 0 {
		ttl = DefaultCustomTTL
	}
	return &ValkeyStore{client: client, ttl: ttl}
}

// Load returns the owner's custom themes, or nil when none were saved.
func (s *ValkeyStore) Load(ctx context.Context, owner string) ([]models.GreetingTheme, error) {
	payload, err := s.client.Get(ctx, customKeyPrefix+owner).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("custom themes get: %w", err)
	}

	var themes []models.GreetingTheme
	if err := json.Unmarshal(payload, &themes); err != nil {
		return nil, fmt.Errorf("custom themes unmarshal: %w", err)
	}
	return themes, nil
}

// Save adds t to the owner's list, replacing any theme with the same id.
func (s *ValkeyStore) Save(ctx context.Context, owner string, t models.GreetingTheme) error {
	themes, err := s.Load(ctx, owner)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(upsert(themes, t))
	if err != nil {
		return fmt.Errorf("custom themes marshal: %w", err)
	}
	if err := s.client.Set(ctx, customKeyPrefix+owner, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("custom themes set: %w", err)
	}
	return nil
}

// MemoryStore is an in-process CustomStore.
type MemoryStore struct {
	mu     sync.Mutex
	themes map[string][]models.GreetingTheme
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{themes: make(map[string][]models.GreetingTheme)}
}

func (s *MemoryStore) Load(_ context.Context, owner string) ([]models.GreetingTheme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.GreetingTheme(nil), s.themes[owner]...), nil
}

func (s *MemoryStore) Save(_ context.Context, owner string, t models.GreetingTheme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[owner] = upsert(s.themes[owner], t)
	return nil
}

func upsert(themes []models.GreetingTheme, t models.GreetingTheme) []models.GreetingTheme {
	out := make([]models.GreetingTheme, 0, len(themes)+1)
	for _, existing := range themes {
		if existing.ID != t.ID {
			out = append(out, existing)
		}
	}
	return append(out, t)
}

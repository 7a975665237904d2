// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists greetings. Every greeting lives in a single shared
// document, a JSON object keyed by greeting id, addressed by a fixed
// collection id. A save reads the whole document, adds the greeting and
// writes the whole document back; two concurrent saves can lose one of the
// writes (last writer wins).
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"hola/internal/models"
)

// ErrNotFound is returned when no greeting has the requested id.
var ErrNotFound = errors.New("greeting not found")

// Document is the shared greeting document.
type Document map[string]models.Greeting

// Backend loads and replaces the shared document. Load returns an empty
// document when nothing was stored yet.
type Backend interface {
	Load(ctx context.Context) (Document, error)
	Put(ctx context.Context, doc Document) error
}

// L1 is an in-process cache in front of the backend.
type L1 interface {
	Get(ctx context.Context, id string) (*models.Greeting, bool)
	Set(ctx context.Context, g *models.Greeting)
	Delete(ctx context.Context, id string)
}

// SaveRecorder is told about every successful save.
type SaveRecorder interface {
	Record(ctx context.Context, greetingID, action string, greetings int)
}

// GreetingStore reads and writes greetings through a Backend.
type GreetingStore struct {
	backend Backend
	cache   L1
	saves   SaveRecorder
}

// NewGreetingStore creates a GreetingStore. cache and saves may be nil.
func NewGreetingStore(backend Backend, cache L1, saves SaveRecorder) *GreetingStore {
	return &GreetingStore{backend: backend, cache: cache, saves: saves}
}

// Save stores g under its id, replacing any greeting with the same id.
func (s *GreetingStore) Save(ctx context.Context, g *models.Greeting) error {
	if g.ID == "" {
		return errors.New("save greeting: empty id")
	}
	doc, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("save greeting %s: %w", g.ID, err)
	}
	if doc == nil {
		doc = Document{}
	}
	_, existed := doc[g.ID]
	doc[g.ID] = *g
	if err := s.backend.Put(ctx, doc); err != nil {
		return fmt.Errorf("save greeting %s: %w", g.ID, err)
	}

	if s.cache != nil {
		s.cache.Delete(ctx, g.ID)
	}
	if s.saves != nil {
		action := ActionCreate
		if existed {
			action = ActionUpdate
		}
		s.saves.Record(ctx, g.ID, action, len(doc))
	}
	slog.Debug("greeting saved", "id", g.ID, "greetings", len(doc))
	return nil
}

// FindByID returns the greeting with the given id or ErrNotFound.
func (s *GreetingStore) FindByID(ctx context.Context, id string) (*models.Greeting, error) {
	if s.cache != nil {
		if g, ok := s.cache.Get(ctx, id); ok {
			return g, nil
		}
	}

	doc, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("find greeting %s: %w", id, err)
	}
	g, ok := doc[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.cache != nil {
		s.cache.Set(ctx, &g)
	}
	return &g, nil
}

// List returns every stored greeting, newest first.
func (s *GreetingStore) List(ctx context.Context) ([]models.Greeting, error) {
	doc, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list greetings: %w", err)
	}
	out := make([]models.Greeting, 0, len(doc))
	for _, g := range doc {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

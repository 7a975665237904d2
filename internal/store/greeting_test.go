// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hola/internal/storage"
)

func TestGreetingStoreSaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewGreetingStore(NewMemoryBackend(), nil, nil)

	g := birthday("g-1", 100)
	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.FindByID(ctx, "g-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if diff := cmp.Diff(g, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.FindByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: got %v, want ErrNotFound", err)
	}
}

func TestGreetingStoreKeepsOtherGreetings(t *testing.T) {
	ctx := context.Background()
	s := NewGreetingStore(NewMemoryBackend(), nil, nil)

	for i, id := range []string{"a", "b", "c"} {
		if err := s.Save(ctx, birthday(id, int64(i))); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var ids []string
	for _, g := range list {
		ids = append(ids, g.ID)
	}
	if diff := cmp.Diff([]string{"c", "b", "a"}, ids); diff != "" {
		t.Errorf("List order (-want +got):\n%s", diff)
	}
}

func TestGreetingStoreRejectsEmptyID(t *testing.T) {
	s := NewGreetingStore(NewMemoryBackend(), nil, nil)
	if err := s.Save(context.Background(), birthday("", 0)); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestGreetingStoreCacheAndLog(t *testing.T) {
	ctx := context.Background()
	l1 := newFakeL1()
	log := &recordingLog{}
	s := NewGreetingStore(NewMemoryBackend(), l1, log)

	s.Save(ctx, birthday("g", 1))
	s.FindByID(ctx, "g")
	s.FindByID(ctx, "g")
	if l1.hits != 1 {
		t.Errorf("cache hits: got %d, want 1", l1.hits)
	}

	updated := birthday("g", 1)
	updated.Message = "Again!"
	s.Save(ctx, updated)

	got, _ := s.FindByID(ctx, "g")
	if got.Message != "Again!" {
		t.Errorf("stale read after save: %q", got.Message)
	}
	if diff := cmp.Diff([]string{"g:create:1", "g:update:1"}, log.actions); diff != "" {
		t.Errorf("log (-want +got):\n%s", diff)
	}
}

// failingBackend fails every call.
type failingBackend struct{}

func (failingBackend) Load(context.Context) (Document, error) { return nil, errors.New("boom") }
func (failingBackend) Put(context.Context, Document) error    { return errors.New("boom") }

func TestGreetingStoreBackendErrors(t *testing.T) {
	ctx := context.Background()
	s := NewGreetingStore(failingBackend{}, nil, nil)

	if err := s.Save(ctx, birthday("x", 0)); err == nil {
		t.Error("Save: expected error")
	}
	if _, err := s.FindByID(ctx, "x"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID: got %v, want backend error", err)
	}
}

// memObjects is an in-memory ObjectStorage.
type memObjects struct {
	objects map[string][]byte
}

func (m *memObjects) PutObject(_ context.Context, key, _ string, data []byte) error {
	m.objects[key] = data
	return nil
}

func (m *memObjects) GetObject(_ context.Context, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func TestS3Backend(t *testing.T) {
	ctx := context.Background()
	objects := &memObjects{objects: map[string][]byte{}}
	b := NewS3Backend(objects, "greetings-test")

	doc, err := b.Load(ctx)
	if err != nil || len(doc) != 0 {
		t.Fatalf("empty Load: got (%v, %v)", doc, err)
	}

	s := NewGreetingStore(b, nil, nil)
	if err := s.Save(ctx, birthday("s3", 7)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := objects.objects["collections/greetings-test.json"]; !ok {
		t.Errorf("document not written, have %v", objects.objects)
	}
	if _, err := s.FindByID(ctx, "s3"); err != nil {
		t.Errorf("FindByID: %v", err)
	}
}

func TestPostgresBackend(t *testing.T) {
	db := testDB(t)
	const collection = "greetings-store-test"
	cleanCollection(db, collection)
	t.Cleanup(func() { cleanCollection(db, collection) })

	ctx := context.Background()
	s := NewGreetingStore(NewPostgresBackend(db, collection), nil, nil)

	if _, err := s.FindByID(ctx, "pg"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty collection: got %v, want ErrNotFound", err)
	}

	want := birthday("pg", 42)
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, birthday("pg-2", 43)); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	got, err := s.FindByID(ctx, "pg")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	var rows int
	db.QueryRow("SELECT COUNT(*) FROM documents WHERE collection_id = $1", collection).Scan(&rows)
	if rows != 1 {
		t.Errorf("documents rows: got %d, want 1", rows)
	}
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryBackend keeps the document in process memory as encoded JSON, so
// callers never share greeting values with it.
type MemoryBackend struct {
	mu   sync.Mutex
	body []byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load(_ context.Context) (Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return decodeDocument(b.body)
}

func (b *MemoryBackend) Put(_ context.Context, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.body = body
	return nil
}

func decodeDocument(body []byte) (Document, error) {
	doc := Document{}
	if len(body) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

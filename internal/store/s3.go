package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hola/internal/storage"
)

// ObjectStorage reads and writes private objects.
type ObjectStorage interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key, contentType string, data []byte) error
}

// S3Backend stores the document as one JSON object.
type S3Backend struct {
	objects ObjectStorage
	key     string
}

// NewS3Backend creates a backend that keeps the collection under
// collections/<collectionID>.json.
func NewS3Backend(objects ObjectStorage, collectionID string) *S3Backend {
	return &S3Backend{objects: objects, key: "collections/" + collectionID + ".json"}
}

func (b *S3Backend) Load(ctx context.Context) (Document, error) {
	body, err := b.objects.GetObject(ctx, b.key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", b.key, err)
	}
	return decodeDocument(body)
}

func (b *S3Backend) Put(ctx context.Context, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := b.objects.PutObject(ctx, b.key, "application/json", body); err != nil {
		return fmt.Errorf("put document %s: %w", b.key, err)
	}
	return nil
}

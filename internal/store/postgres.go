// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresBackend stores the document as one JSONB row of the documents table.
type PostgresBackend struct {
	db           *sql.DB
	collectionID string
}

// NewPostgresBackend creates a backend for the given collection id.
func NewPostgresBackend(db *sql.DB, collectionID string) *PostgresBackend {
	return &PostgresBackend{db: db, collectionID: collectionID}
}

func (b *PostgresBackend) Load(ctx context.Context) (Document, error) {
	var body []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection_id = $1`, b.collectionID,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", b.collectionID, err)
	}
	return decodeDocument(body)
}

func (b *PostgresBackend) Put(ctx context.Context, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = b.db.ExecContext(ctx, `
		INSERT INTO documents (collection_id, body, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (collection_id)
		DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()
	`, b.collectionID, body)
	if err != nil {
		return fmt.Errorf("put document %s: %w", b.collectionID, err)
	}
	return nil
}

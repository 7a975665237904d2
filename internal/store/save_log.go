// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// save_log.go keeps a history of greeting saves in PostgreSQL. Every save
// rewrites the whole shared document, so the history is the only place that
// shows which greeting a given write was for and how large the document was
// at that point.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Save actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// SaveLogStore records greeting saves for one collection.
type SaveLogStore struct {
	db           *sql.DB
	collectionID string
}

// NewSaveLogStore creates a SaveLogStore for collectionID.
func NewSaveLogStore(db *sql.DB, collectionID string) *SaveLogStore {
	return &SaveLogStore{db: db, collectionID: collectionID}
}

// Record stores one save. greetings is the document size after the save.
// Failures are logged and dropped; the save itself already succeeded.
func (s *SaveLogStore) Record(ctx context.Context, greetingID, action string, greetings int) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO greeting_save_log (collection_id, greeting_id, action, greetings)
		VALUES ($1, $2, $3, $4)
	`, s.collectionID, greetingID, action, greetings)
	if err != nil {
		slog.Warn("failed to record greeting save",
			"collection", s.collectionID,
			"greeting_id", greetingID,
			"action", action,
			"error", err,
		)
	}
}

// History returns the saves of one greeting, newest first.
func (s *SaveLogStore) History(ctx context.Context, greetingID string) ([]SaveLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, greeting_id, action, greetings, saved_at
		FROM greeting_save_log
		WHERE collection_id = $1 AND greeting_id = $2
		ORDER BY saved_at DESC, id DESC
	`, s.collectionID, greetingID)
	if err != nil {
		return nil, fmt.Errorf("query save log: %w", err)
	}
	defer rows.Close()

	var entries []SaveLogEntry
	for rows.Next() {
		var e SaveLogEntry
		if err := rows.Scan(&e.ID, &e.GreetingID, &e.Action, &e.Greetings, &e.SavedAt); err != nil {
			return nil, fmt.Errorf("scan save log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveLogEntry is one recorded save.
type SaveLogEntry struct {
	ID         int64     `json:"id"`
	GreetingID string    `json:"greetingId"`
	Action     string    `json:"action"`
	Greetings  int       `json:"greetings"`
	SavedAt    time.Time `json:"savedAt"`
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"hola/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"
)

// LoadSession retrieves the editor session and stores it in the request
// context, creating a fresh one when the browser has none. Downstream
// handlers access it via SessionFromCtx(). A store failure never blocks the
// request: the handler gets an unsaved session instead.
func LoadSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				slog.Warn("session load failed", "error", err)
			}

			if data == nil {
				data = &session.Data{}
				if _, err := store.Create(r.Context(), w, data); err != nil {
					slog.Warn("session create failed", "error", err)
				}
			}

			ctx := context.WithValue(r.Context(), SessionKey, data)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if LoadSession did not run.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

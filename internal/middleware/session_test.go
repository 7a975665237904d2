// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hola/internal/models"
	"hola/internal/session"
)

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns nil without session", func(t *testing.T) {
		if sess := SessionFromCtx(context.Background()); sess != nil {
			t.Errorf("expected nil, got %+v", sess)
		}
	})

	t.Run("returns nil for wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), SessionKey, "not a session")
		if sess := SessionFromCtx(ctx); sess != nil {
			t.Errorf("expected nil, got %+v", sess)
		}
	})

	t.Run("returns stored session", func(t *testing.T) {
		want := &session.Data{ID: "abc"}
		ctx := context.WithValue(context.Background(), SessionKey, want)
		if got := SessionFromCtx(ctx); got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})
}

func TestLoadSession(t *testing.T) {
	store := session.NewMemoryStore(false)

	var got *session.Data
	handler := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("creates a session when the browser has none", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/create", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if got == nil || got.ID == "" {
			t.Fatalf("expected a fresh session, got %+v", got)
		}

		var cookie *http.Cookie
		for _, c := range rr.Result().Cookies() {
			if c.Name == session.CookieName {
				cookie = c
			}
		}
		if cookie == nil || cookie.Value != got.ID {
			t.Fatalf("session cookie: got %+v, want value %q", cookie, got.ID)
		}

		// Persist a change and load it on the next request.
		got.Draft.Occasion = models.OccasionFestival
		if err := store.Save(context.Background(), got); err != nil {
			t.Fatalf("Save: %v", err)
		}
		firstID := got.ID

		req2 := httptest.NewRequest(http.MethodGet, "/create", nil)
		req2.AddCookie(cookie)
		rr2 := httptest.NewRecorder()
		handler.ServeHTTP(rr2, req2)

		if got.ID != firstID {
			t.Errorf("session id changed: %q -> %q", firstID, got.ID)
		}
		if got.Draft.Occasion != models.OccasionFestival {
			t.Errorf("occasion: got %q", got.Draft.Occasion)
		}
		if len(rr2.Result().Cookies()) != 0 {
			t.Error("existing session should not set a new cookie")
		}
	})

	t.Run("replaces an expired session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/create", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "gone"})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if got == nil || got.ID == "" || got.ID == "gone" {
			t.Errorf("expected a new session, got %+v", got)
		}
	})
}

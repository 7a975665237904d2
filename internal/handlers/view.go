// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"html/template"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"github.com/skip2/go-qrcode"
	"golang.org/x/crypto/blake2b"

	"hola/internal/cache"
	"hola/internal/card"
	"hola/internal/clock"
	"hola/internal/effects"
	"hola/internal/middleware"
	"hola/internal/models"
	"hola/internal/render"
	"hola/internal/session"
	"hola/internal/store"
	"hola/internal/theme"
)

// qrSize is the edge length in pixels of the share QR code.
const qrSize = 256

// Greetings groups the handlers that show stored greetings: the sender's
// preview page, the recipient page and the effect streams.
type Greetings struct {
	renderer  *render.Renderer
	sessions  *session.Store
	greetings GreetingRepo
	composer  *card.Composer
	pageCache *cache.PageCache
	baseURL   string
	clock     clock.Clock
}

// NewGreetings creates the greeting view handlers. pageCache may be nil to
// disable page caching. baseURL is the public origin used in share links;
// when empty it is derived from the request.
func NewGreetings(renderer *render.Renderer, sessions *session.Store, greetings GreetingRepo, pageCache *cache.PageCache, baseURL string, clk clock.Clock) *Greetings {
	return &Greetings{
		renderer:  renderer,
		sessions:  sessions,
		greetings: greetings,
		// Stored greetings embed their custom theme, so the catalog is enough.
		composer:  card.NewComposer(theme.NewRegistry(nil)),
		pageCache: pageCache,
		baseURL:   strings.TrimRight(baseURL, "/"),
		clock:     clk,
	}
}

// Preview shows a freshly created greeting to its sender together with the
// share link and its QR code.
func (g *Greetings) Preview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess := middleware.SessionFromCtx(r.Context())

	greeting, err := g.greetings.FindByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("load greeting for preview failed", "error", err, "id", id)
		}
		if sess != nil {
			sess.AddFlash("error", "Greeting not found")
			if err := g.sessions.Save(r.Context(), sess); err != nil {
				slog.Warn("save session failed", "error", err)
			}
		}
		http.Redirect(w, r, "/create", http.StatusSeeOther)
		return
	}

	enabled := greeting.EffectsEnabled()
	switch r.URL.Query().Get("effects") {
	case "off":
		enabled = false
	case "on":
		enabled = true
	}

	shareURL := g.shareURL(r, greeting.ID)
	qr, err := qrcode.Encode(shareURL, qrcode.Medium, qrSize)
	if err != nil {
		slog.Warn("generate share QR code failed", "error", err)
	}

	data := &render.PageData{
		Title:   "Your Greeting",
		Section: "create",
		Data: map[string]any{
			"Greeting":       greeting,
			"Card":           g.composer.Compose(greeting, card.Options{Animated: true}).HTML(),
			"ShareURL":       shareURL,
			"EffectsEnabled": enabled,
			"HasEffect":      greeting.Effect() != models.EffectNone,
			"EffectsURL":     "/greeting/" + greeting.ID + "/effects",
		},
	}
	if len(qr) > 0 {
		data.Data["QRCode"] = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(qr))
	}
	if sess != nil {
		data.Flashes = sess.PopFlashes()
		if len(data.Flashes) > 0 {
			if err := g.sessions.Save(r.Context(), sess); err != nil {
				slog.Warn("save session failed", "error", err)
			}
		}
	}
	g.renderer.Page(w, r, "preview", data)
}

// View renders the recipient page. Greetings never change after creation,
// so the rendered page is cached in Valkey and served with an ETag.
// "?effects=off" renders the page with the continuous effect muted.
func (g *Greetings) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	muted := r.URL.Query().Get("effects") == "off"
	key := cache.GreetingKey(id, !muted)

	if cached, ok := g.pageCache.Get(ctx, key); ok {
		writeCachedHTML(w, r, cached)
		return
	}

	greeting, err := g.greetings.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		g.notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("load greeting failed", "error", err, "id", id)
		g.renderer.PageStatus(w, r, http.StatusInternalServerError, "not_found", &render.PageData{
			Title: "Something Went Wrong",
			Data: map[string]any{
				"Heading": "Something went wrong",
				"Message": "We could not load this greeting. Please try again in a moment.",
			},
		})
		return
	}

	var buf bytes.Buffer
	if err := g.renderer.Render(&buf, "greeting", g.recipientData(greeting, !muted)); err != nil {
		slog.Error("render greeting failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	g.pageCache.Set(ctx, key, buf.Bytes())
	writeCachedHTML(w, r, buf.Bytes())
}

func (g *Greetings) recipientData(greeting *models.Greeting, allowEffects bool) *render.PageData {
	title := greeting.Occasion.Label() + " Greeting"
	if greeting.RecipientName != "" {
		title = "A greeting for " + greeting.RecipientName
	}
	return &render.PageData{
		Title: title,
		Data: map[string]any{
			"Greeting":       greeting,
			"Card":           g.composer.Compose(greeting, card.Options{FullCard: true, Animated: true}).HTML(),
			"HasEffect":      greeting.Effect() != models.EffectNone,
			"EffectsEnabled": allowEffects && greeting.EffectsEnabled(),
			"EffectsURL":     "/greeting/" + greeting.ID + "/effects",
		},
	}
}

// Effects streams a greeting's continuous effect as Server-Sent Events.
// "?enabled=false" answers with a single clear event.
func (g *Greetings) Effects(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	greeting, err := g.greetings.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Greeting not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("load greeting for effects failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	g.stream(w, r, greeting.Effect())
}

// EditorEffects streams any effect for the editor's live preview.
func (g *Greetings) EditorEffects(w http.ResponseWriter, r *http.Request) {
	effect := models.ContinuousEffect(chi.URLParam(r, "effect"))
	if !lo.Contains(models.ContinuousEffects, effect) {
		http.Error(w, "Unknown effect", http.StatusNotFound)
		return
	}
	g.stream(w, r, effect)
}

func (g *Greetings) stream(w http.ResponseWriter, r *http.Request, effect models.ContinuousEffect) {
	s := effects.NewScheduler(effect, globalRand{})
	s.SetEnabled(r.URL.Query().Get("enabled") != "false")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := effects.Stream(r.Context(), w, s, g.clock, effects.DefaultTickInterval); err != nil {
		slog.Debug("effects stream ended", "error", err, "effect", effect)
	}
}

func (g *Greetings) notFound(w http.ResponseWriter, r *http.Request) {
	g.renderer.PageStatus(w, r, http.StatusNotFound, "not_found", &render.PageData{
		Title: "Greeting Not Found",
		Data: map[string]any{
			"Heading": "Greeting Not Found",
			"Message": "Sorry, the greeting you're looking for doesn't exist or has been removed.",
		},
	})
}

// shareURL returns the absolute recipient link of a greeting.
func (g *Greetings) shareURL(r *http.Request, id string) string {
	base := g.baseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/greeting/" + id
}

// writeCachedHTML serves a rendered page with a content hash ETag and
// answers conditional requests with 304.
func writeCachedHTML(w http.ResponseWriter, r *http.Request, page []byte) {
	sum := blake2b.Sum256(page)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// globalRand draws particles from the math/rand/v2 global source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

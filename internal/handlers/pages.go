// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"hola/internal/cache"
	"hola/internal/card"
	"hola/internal/models"
	"hola/internal/render"
)

// Pages serves the static pages of the site.
type Pages struct {
	renderer  *render.Renderer
	pageCache *cache.PageCache
}

// NewPages creates the page handlers. pageCache may be nil.
func NewPages(renderer *render.Renderer, pageCache *cache.PageCache) *Pages {
	return &Pages{renderer: renderer, pageCache: pageCache}
}

// occasionCard is one tile of the landing page showcase.
type occasionCard struct {
	Occasion models.Occasion
	Label    string
	Heading  string
	Icon     string
}

// Home renders the landing page. HTMX navigations get the content block
// and bypass the cache, which only holds full pages.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	data := &render.PageData{
		Title:   "Hola",
		Section: "home",
		Data:    map[string]any{"Occasions": showcase()},
	}
	if r.Header.Get("HX-Request") == "true" {
		p.renderer.Page(w, r, "home", data)
		return
	}

	ctx := r.Context()
	if cached, ok := p.pageCache.Get(ctx, cache.HomeKey()); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(cached)
		return
	}

	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, "home", data); err != nil {
		slog.Error("render home failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	p.pageCache.Set(ctx, cache.HomeKey(), buf.Bytes())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// NotFound renders the friendly 404 page for unknown paths.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.PageStatus(w, r, http.StatusNotFound, "not_found", &render.PageData{
		Title: "Page Not Found",
		Data: map[string]any{
			"Heading": "Page Not Found",
			"Message": "Sorry, the page you're looking for doesn't exist.",
		},
	})
}

func showcase() []occasionCard {
	out := make([]occasionCard, len(models.Occasions))
	for i, o := range models.Occasions {
		out[i] = occasionCard{
			Occasion: o,
			Label:    o.Label(),
			Heading:  card.OccasionHeading(o),
			Icon:     card.OccasionIcon(o),
		}
	}
	return out
}

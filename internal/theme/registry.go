// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme holds the built-in greeting theme catalog, the registry that
// merges it with a device's custom themes, and the factory that creates those
// custom themes while editing.
package theme

import (
	"github.com/samber/lo"

	"hola/internal/models"
)

// Catalog returns a copy of the built-in themes in catalog order.
func Catalog() []models.GreetingTheme {
	return append([]models.GreetingTheme(nil), catalog...)
}

// Registry resolves themes from the built-in catalog plus one owner's custom
// themes. A Registry is immutable once built; build a new one when the custom
// list changes.
type Registry struct {
	custom []models.GreetingTheme
}

// NewRegistry creates a registry over the catalog and the given custom themes.
func NewRegistry(custom []models.GreetingTheme) *Registry {
	return &Registry{custom: append([]models.GreetingTheme(nil), custom...)}
}

// ForOccasion returns the catalog themes tagged with the occasion followed by
// the custom themes tagged with it.
func (r *Registry) ForOccasion(occasion models.Occasion) []models.GreetingTheme {
	tagged := func(t models.GreetingTheme, _ int) bool { return t.OfferedFor(occasion) }
	themes := lo.Filter(catalog, tagged)
	return append(themes, lo.Filter(r.custom, tagged)...)
}

// Resolve looks a theme up by id, catalog first.
func (r *Registry) Resolve(id string) (models.GreetingTheme, bool) {
	if id == "" {
		return models.GreetingTheme{}, false
	}
	byID := func(t models.GreetingTheme) bool { return t.ID == id }
	if t, ok := lo.Find(catalog, byID); ok {
		return t, true
	}
	return lo.Find(r.custom, byID)
}

// ForGreeting returns the theme a greeting renders with: its embedded custom
// theme when present, otherwise the registry entry for its theme id.
func (r *Registry) ForGreeting(g *models.Greeting) (models.GreetingTheme, bool) {
	if g.CustomTheme != nil {
		return *g.CustomTheme, true
	}
	return r.Resolve(g.ThemeID)
}

// Default returns the first theme offered for the occasion, falling back to
// the first catalog theme.
func (r *Registry) Default(occasion models.Occasion) models.GreetingTheme {
	if themes := r.ForOccasion(occasion); len(themes) > 0 {
		return themes[0]
	}
	return catalog[0]
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package effects schedules the looping particle effects drawn behind a
// greeting card and streams them to the browser as Server-Sent Events.
package effects

import (
	"time"

	"hola/internal/models"
)

// MaxLifetime is how long a particle stays on screen before it is removed.
const MaxLifetime = 8 * time.Second

// Kind describes how one continuous effect spawns and draws particles.
type Kind struct {
	Effect models.ContinuousEffect
	// Rate is the number of particles spawned per second.
	Rate    int
	Palette []string
	// Glyph is drawn as text instead of a colored shape when set.
	Glyph     string
	Animation string
	Timing    string
	// Rising particles start below the card and travel up.
	Rising      bool
	MinDuration time.Duration
	MaxDuration time.Duration
}

var confettiPalette = []string{"#ff6b6b", "#4ecdc4", "#45b7d1", "#f9d56e", "#ff8c94", "#9b5de5"}

var kinds = map[models.ContinuousEffect]Kind{
	models.EffectConfetti: {
		Effect: models.EffectConfetti, Rate: 15, Palette: confettiPalette,
		Animation: "fall-confetti", Timing: "linear",
		MinDuration: 3 * time.Second, MaxDuration: 6 * time.Second,
	},
	models.EffectBubbles: {
		Effect: models.EffectBubbles, Rate: 5, Palette: []string{"#88d8b0", "#a6e3e9", "#71c9ce", "#cbf1f5"},
		Animation: "rise-bubble", Timing: "ease-in", Rising: true,
		MinDuration: 4 * time.Second, MaxDuration: 8 * time.Second,
	},
	models.EffectSparkles: {
		Effect: models.EffectSparkles, Rate: 12, Palette: []string{"#ffd700", "#ffec99", "#ffeb3b", "#fff9c4"},
		Glyph: "✨", Animation: "fall-sparkle", Timing: "linear",
		MinDuration: 2 * time.Second, MaxDuration: 4 * time.Second,
	},
	models.EffectHearts: {
		Effect: models.EffectHearts, Rate: 8, Palette: []string{"#ff6b6b", "#ff8fab", "#f08080", "#ffb3c6"},
		Glyph: "❤️", Animation: "float-heart", Timing: "ease-out", Rising: true,
		MinDuration: 3 * time.Second, MaxDuration: 8 * time.Second,
	},
	models.EffectStars: {
		Effect: models.EffectStars, Rate: 6, Palette: []string{"#ffd700", "#f8ed62", "#fff263", "#ffdf00"},
		Glyph: "⭐", Animation: "twinkle-star", Timing: "ease-in-out",
		MinDuration: 3 * time.Second, MaxDuration: 7 * time.Second,
	},
}

// KindFor returns the kind of an effect and whether it draws anything.
// Effects without an entry are drawn like confetti at ten particles per
// second; none draws nothing.
func KindFor(effect models.ContinuousEffect) (Kind, bool) {
	if effect == models.EffectNone || effect == "" {
		return Kind{}, false
	}
	if k, ok := kinds[effect]; ok {
		return k, true
	}
	k := kinds[models.EffectConfetti]
	k.Effect = effect
	k.Rate = 10
	return k, true
}

// Interval is the minimum time between two spawns.
func (k Kind) Interval() time.Duration {
	return time.Second / time.Duration(k.Rate)
}

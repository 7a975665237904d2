// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package card

import (
	"html/template"
	"strings"

	"hola/internal/models"
	"hola/internal/theme"
)

// ReplayDelayMillis is how long the browser keeps a card's elements hidden
// before revealing them with the entrance animation.
const ReplayDelayMillis = 300

const (
	cardBaseClasses     = "rounded-xl shadow-xl p-8 md:p-10 w-full flex flex-col items-center overflow-y-auto"
	fallbackCardClasses = "bg-gradient-to-r from-purple-400 to-pink-500 rounded-xl shadow-xl p-8 md:p-10 max-w-md mx-auto w-full flex flex-col items-center overflow-y-auto"
)

var entranceClasses = map[models.AnimationType]string{
	"fade":    "animate-fade-in",
	"slide":   "animate-slide-up",
	"scale":   "animate-scale-in",
	"bounce":  "animate-bounce",
	"rotate":  "animate-rotate",
	"flip":    "animate-flip",
	"pulse":   "animate-pulse",
	"glitter": "animate-glitter",
	"shake":   "animate-shake",
	"swing":   "animate-swing",
	"float":   "animate-float",
	"reveal":  "animate-reveal",
	"sparkle": "animate-sparkle",
}

// Options control how a card is composed.
type Options struct {
	// FullCard renders the card at page size instead of the compact editor size.
	FullCard bool
	// Animated plays the entrance animation when the card is shown.
	Animated bool
	// TextColor overrides the theme's text color for every text element.
	TextColor string
}

// View is a composed card ready for a page template.
type View struct {
	Fallback       bool
	Classes        string
	Style          template.CSS
	AnimationClass string
	// ReplayKey changes whenever the entrance animation must play again.
	ReplayKey   string
	ReplayDelay int
	Elements    template.HTML

	Effect         models.ContinuousEffect
	EffectsEnabled bool
}

// HTML renders the card container around the elements.
func (v View) HTML() template.HTML {
	return execute("card", v)
}

// Composer turns greetings into card views.
type Composer struct {
	themes *theme.Registry
}

// NewComposer returns a composer that resolves themes through reg.
func NewComposer(reg *theme.Registry) *Composer {
	return &Composer{themes: reg}
}

// Compose builds the view of g. A greeting whose theme cannot be resolved
// gets the fallback card; one without elements gets the default set.
func (c *Composer) Compose(g *models.Greeting, opts Options) View {
	view := View{
		Effect:         g.Effect(),
		EffectsEnabled: g.EffectsEnabled(),
	}

	t, ok := c.themes.ForGreeting(g)
	if !ok {
		view.Fallback = true
		view.Classes = fallbackCardClasses
		return view
	}

	elements := g.Elements
	if len(elements) == 0 {
		elements = defaultElements(g.Occasion, g.RecipientName, g.SenderName, orDefault(g.Message, CardMessage))
	}

	size := "max-w-md mx-auto"
	if opts.FullCard {
		size = "greeting-card-fullsize"
	}
	background := ""
	if t.Background() == models.BackgroundClass {
		background = t.BackgroundClass
	}

	view.Classes = classes(background, cardBaseClasses, size)
	view.Style = backgroundStyle(t)
	if opts.Animated {
		view.AnimationClass = entranceClasses[g.AnimationType]
		view.ReplayKey = g.ID + ":" + string(g.AnimationType)
		view.ReplayDelay = ReplayDelayMillis
	}
	view.Elements = NewPreviewManager(elements).RenderAll(ModePreview, t, opts.TextColor)
	return view
}

// Swatch returns the inline background style of a theme picker button.
// Catalog themes are drawn by their class and return an empty style.
func Swatch(t models.GreetingTheme) template.CSS {
	return backgroundStyle(t)
}

// backgroundStyle returns the inline style for image and gradient
// backgrounds. Values that could break out of the declaration are dropped
// and the card falls back to its plain layout.
func backgroundStyle(t models.GreetingTheme) template.CSS {
	switch t.Background() {
	case models.BackgroundImage:
		if strings.ContainsAny(t.BackgroundImage, "\"\\\n\r") {
			return ""
		}
		return template.CSS(`background-image: url("` + t.BackgroundImage + `"); background-size: cover; background-position: center;`)
	case models.BackgroundGradient:
		if strings.ContainsAny(t.BackgroundGradient, ";{}<>\"'\\\n\r") {
			return ""
		}
		style := "background: " + t.BackgroundGradient + ";"
		if t.AnimatedGradient {
			style += " background-size: 200% 200%; animation: gradient-animation 5s ease infinite; will-change: background-position;"
		}
		return template.CSS(style)
	}
	return ""
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"hola/internal/clock"
	"hola/internal/models"
)

// Default colors of the custom gradient editor.
const (
	DefaultGradientStart = "#8B5CF6"
	DefaultGradientEnd   = "#EC4899"
)

// ErrInvalidColor is returned when a color input is not a hex color.
var ErrInvalidColor = errors.New("invalid hex color")

// Factory creates custom themes. Every call mints a new id so that a theme
// already embedded in a saved greeting is never changed by a later edit.
type Factory struct {
	ids      clock.IDGenerator
	validate *validator.Validate
}

// NewFactory returns a Factory that names themes with ids from ids.
func NewFactory(ids clock.IDGenerator) *Factory {
	return &Factory{
		ids:      ids,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// FromImage creates a theme whose background is the given image URL or data URI.
func (f *Factory) FromImage(occasion models.Occasion, imageURL string) (models.GreetingTheme, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return models.GreetingTheme{}, errors.New("background image is empty")
	}
	return models.GreetingTheme{
		ID:               "custom-theme-" + f.ids.New(),
		Name:             "Custom Image",
		TextColorClass:   "text-white",
		AccentColorClass: "text-white",
		OccasionTypes:    []models.Occasion{occasion},
		Custom:           true,
		BackgroundImage:  imageURL,
	}, nil
}

// FromGradient creates a theme with a left-to-right two color gradient.
func (f *Factory) FromGradient(occasion models.Occasion, start, end string, animated bool) (models.GreetingTheme, error) {
	if err := f.checkColor(start); err != nil {
		return models.GreetingTheme{}, err
	}
	if err := f.checkColor(end); err != nil {
		return models.GreetingTheme{}, err
	}
	return models.GreetingTheme{
		ID:                 "custom-gradient-" + f.ids.New(),
		Name:               "Custom Gradient",
		TextColorClass:     "text-white",
		AccentColorClass:   "text-white",
		OccasionTypes:      []models.Occasion{occasion},
		Custom:             true,
		BackgroundGradient: fmt.Sprintf("linear-gradient(to right, %s, %s)", start, end),
		AnimatedGradient:   animated,
	}, nil
}

// WithTextColor copies base and replaces its text and accent tokens with an
// explicit color.
func (f *Factory) WithTextColor(base models.GreetingTheme, occasion models.Occasion, color string) (models.GreetingTheme, error) {
	if err := f.checkColor(color); err != nil {
		return models.GreetingTheme{}, err
	}
	t := base
	t.ID = "custom-text-" + f.ids.New()
	t.Name = "Custom Theme"
	t.TextColorClass = ""
	t.AccentColorClass = ""
	t.OccasionTypes = []models.Occasion{occasion}
	t.Custom = true
	t.CustomTextColor = color
	return t, nil
}

func (f *Factory) checkColor(color string) error {
	if err := f.validate.Var(color, "required,hexcolor"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return nil
}

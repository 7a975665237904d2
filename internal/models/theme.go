// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// BackgroundKind identifies which field of a theme supplies the card background.
type BackgroundKind int

const (
	BackgroundClass BackgroundKind = iota
	BackgroundGradient
	BackgroundImage
)

// GreetingTheme is a named visual style. Exactly one background source is
// effective, in priority order image > gradient > class.
type GreetingTheme struct {
	ID                 string     `json:"id" validate:"required,max=100"`
	Name               string     `json:"name" validate:"max=100"`
	BackgroundClass    string     `json:"backgroundClass"`
	TextColorClass     string     `json:"textColorClass"`
	AccentColorClass   string     `json:"accentColorClass"`
	OccasionTypes      []Occasion `json:"occasionTypes"`
	Custom             bool       `json:"custom,omitempty"`
	BackgroundImage    string     `json:"backgroundImage,omitempty"`
	BackgroundGradient string     `json:"backgroundGradient,omitempty"`
	AnimatedGradient   bool       `json:"animatedGradient,omitempty"`
	CustomTextColor    string     `json:"customTextColor,omitempty"`
}

// Background reports the effective background source.
func (t *GreetingTheme) Background() BackgroundKind {
	switch {
	case t.BackgroundImage != "":
		return BackgroundImage
	case t.BackgroundGradient != "":
		return BackgroundGradient
	default:
		return BackgroundClass
	}
}

// OfferedFor reports whether the theme is tagged with the occasion.
func (t *GreetingTheme) OfferedFor(o Occasion) bool {
	for _, tagged := range t.OccasionTypes {
		if tagged == o {
			return true
		}
	}
	return false
}

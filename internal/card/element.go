// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package card renders greeting cards. It decodes stored elements into typed
// variants, renders each variant in edit or preview mode, manages the ordered
// element list of the card being edited and composes the final card view.
package card

import (
	"regexp"

	"hola/internal/models"
)

// hexColorPattern matches the CSS hex colors the editor's color picker and
// the hexcolor validator accept.
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Element is one decoded card element. The set of implementations is closed;
// renderers switch over it exhaustively.
type Element interface {
	ElementID() string
	isElement()
}

// Text is a text or heading element.
type Text struct {
	ID            string
	Heading       bool
	Content       string
	Size          models.ElementSize
	Alignment     models.ElementAlignment
	TextAnimation models.TextAnimation
	ScrollEffect  models.ScrollEffect
	// Color is an element-level color override, empty when unset.
	Color string
}

// Image shows a picture from a URL or data URI. An empty URL renders nothing.
type Image struct {
	ID        string
	URL       string
	Size      models.ElementSize
	Alignment models.ElementAlignment
}

// Icon shows one icon from the built-in icon set.
type Icon struct {
	ID        string
	Key       string
	Size      models.ElementSize
	Alignment models.ElementAlignment
}

// Separator is a horizontal rule.
type Separator struct {
	ID    string
	Width string
	Style string
}

// Emoji shows a glyph verbatim.
type Emoji struct {
	ID        string
	Glyph     string
	Size      models.ElementSize
	Alignment models.ElementAlignment
}

// Sticker shows a glyph verbatim on a larger scale than Emoji.
type Sticker struct {
	ID        string
	Glyph     string
	Size      models.ElementSize
	Alignment models.ElementAlignment
}

// Unknown is an element whose type is not recognized.
type Unknown struct {
	ID   string
	Type models.ElementType
}

func (e Text) ElementID() string      { return e.ID }
func (e Image) ElementID() string     { return e.ID }
func (e Icon) ElementID() string      { return e.ID }
func (e Separator) ElementID() string { return e.ID }
func (e Emoji) ElementID() string     { return e.ID }
func (e Sticker) ElementID() string   { return e.ID }
func (e Unknown) ElementID() string   { return e.ID }

func (Text) isElement()      {}
func (Image) isElement()     {}
func (Icon) isElement()      {}
func (Separator) isElement() {}
func (Emoji) isElement()     {}
func (Sticker) isElement()   {}
func (Unknown) isElement()   {}

// Separator options.
const (
	SeparatorThin   = "thin"
	SeparatorMedium = "medium"
	SeparatorWide   = "wide"
	SeparatorFull   = "full"

	SeparatorSolid  = "solid"
	SeparatorDashed = "dashed"
	SeparatorDotted = "dotted"
	SeparatorDouble = "double"
)

// Default glyphs for emoji and sticker elements with no content.
const (
	DefaultEmoji   = "😊"
	DefaultSticker = "🎂"
)

// Decode converts a stored element into its typed variant. Missing or
// unrecognized fields fall back to per-type defaults; Decode never fails.
func Decode(el models.CardElement) Element {
	size := normalizeSize(el.Size)
	align := normalizeAlignment(el.Alignment)

	switch el.Type {
	case models.ElementText, models.ElementHeading:
		return Text{
			ID:            el.ID,
			Heading:       el.Type == models.ElementHeading,
			Content:       el.Content,
			Size:          size,
			Alignment:     align,
			TextAnimation: el.TextAnimation,
			ScrollEffect:  el.ScrollEffect,
			Color:         hexColor(el.Style["color"]),
		}
	case models.ElementImage:
		return Image{ID: el.ID, URL: el.Content, Size: size, Alignment: align}
	case models.ElementIcon:
		key := el.Content
		if key == "" {
			key = "smile"
		}
		if _, ok := iconPaths[key]; !ok {
			key = FallbackIcon
		}
		return Icon{ID: el.ID, Key: key, Size: size, Alignment: align}
	case models.ElementSeparator:
		return Separator{
			ID:    el.ID,
			Width: oneOf(el.Style["width"], SeparatorMedium, SeparatorThin, SeparatorWide, SeparatorFull),
			Style: oneOf(el.Style["style"], SeparatorSolid, SeparatorDashed, SeparatorDotted, SeparatorDouble),
		}
	case models.ElementEmoji:
		return Emoji{ID: el.ID, Glyph: orDefault(el.Content, DefaultEmoji), Size: size, Alignment: align}
	case models.ElementSticker:
		return Sticker{ID: el.ID, Glyph: orDefault(el.Content, DefaultSticker), Size: size, Alignment: align}
	default:
		return Unknown{ID: el.ID, Type: el.Type}
	}
}

func normalizeSize(s models.ElementSize) models.ElementSize {
	switch s {
	case models.SizeSmall, models.SizeLarge:
		return s
	}
	return models.SizeMedium
}

func normalizeAlignment(a models.ElementAlignment) models.ElementAlignment {
	switch a {
	case models.AlignLeft, models.AlignRight:
		return a
	}
	return models.AlignCenter
}

// oneOf returns v when it is one of allowed, otherwise fallback.
func oneOf(v, fallback string, allowed ...string) string {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}

// hexColor returns v when it is a hex color, otherwise "" (no override).
func hexColor(v string) string {
	if hexColorPattern.MatchString(v) {
		return v
	}
	return ""
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ElementType identifies which renderer draws a card element.
type ElementType string

const (
	ElementHeading   ElementType = "heading"
	ElementText      ElementType = "text"
	ElementImage     ElementType = "image"
	ElementIcon      ElementType = "icon"
	ElementSeparator ElementType = "separator"
	ElementEmoji     ElementType = "emoji"
	ElementSticker   ElementType = "sticker"
)

// ElementTypes lists every element type in the order the editor offers them.
var ElementTypes = []ElementType{
	ElementHeading, ElementText, ElementImage, ElementIcon,
	ElementSeparator, ElementEmoji, ElementSticker,
}

// Label returns the editor's display name for the element type.
func (t ElementType) Label() string {
	switch t {
	case ElementHeading:
		return "Heading"
	case ElementText:
		return "Text"
	case ElementImage:
		return "Image"
	case ElementIcon:
		return "Icon"
	case ElementSeparator:
		return "Separator"
	case ElementEmoji:
		return "Emoji"
	case ElementSticker:
		return "Sticker"
	}
	return string(t)
}

// Valid reports whether t is one of the known element types.
func (t ElementType) Valid() bool {
	for _, known := range ElementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ElementSize is the visual scale of an element. Each element type maps
// sizes onto its own scale.
type ElementSize string

const (
	SizeSmall  ElementSize = "small"
	SizeMedium ElementSize = "medium"
	SizeLarge  ElementSize = "large"
)

// ElementAlignment is the horizontal placement of an element.
type ElementAlignment string

const (
	AlignLeft   ElementAlignment = "left"
	AlignCenter ElementAlignment = "center"
	AlignRight  ElementAlignment = "right"
)

// TextAnimation is a looping effect applied to text and heading elements.
type TextAnimation string

const (
	TextAnimationTyping  TextAnimation = "typing"
	TextAnimationWave    TextAnimation = "wave"
	TextAnimationBounce  TextAnimation = "bounce"
	TextAnimationFlip    TextAnimation = "flip"
	TextAnimationFade    TextAnimation = "fade"
	TextAnimationGlow    TextAnimation = "glow"
	TextAnimationShimmer TextAnimation = "shimmer"
	TextAnimationRainbow TextAnimation = "rainbow"
	TextAnimationNone    TextAnimation = "none"
)

// TextAnimations lists the text animations offered by the editor.
var TextAnimations = []TextAnimation{
	TextAnimationNone, TextAnimationTyping, TextAnimationWave, TextAnimationBounce,
	TextAnimationFlip, TextAnimationFade, TextAnimationGlow, TextAnimationShimmer,
	TextAnimationRainbow,
}

// ScrollEffect is a reveal-on-scroll effect applied to text and heading elements.
type ScrollEffect string

const (
	ScrollFadeIn   ScrollEffect = "fade-in"
	ScrollSlideUp  ScrollEffect = "slide-up"
	ScrollZoomIn   ScrollEffect = "zoom-in"
	ScrollRotateIn ScrollEffect = "rotate-in"
	ScrollNone     ScrollEffect = "none"
)

// ScrollEffects lists the scroll effects offered by the editor.
var ScrollEffects = []ScrollEffect{
	ScrollNone, ScrollFadeIn, ScrollSlideUp, ScrollZoomIn, ScrollRotateIn,
}

// MaxContentLength is the longest element content a greeting may store. It
// matches the validate tag on CardElement.Content and bounds inlined images.
const MaxContentLength = 2_000_000

// CardElement is one visual unit on a card. Content is interpreted by Type:
// text body, icon key, image URL or data URI, or an emoji/sticker glyph.
// Style is only read by separators (keys "style" and "width") and, for text
// elements, an optional "color" override.
//
// IDs must be unique within one card for stable reordering. Nothing enforces
// this; callers generate them.
type CardElement struct {
	ID            string            `json:"id" validate:"required,max=100"`
	Type          ElementType       `json:"type" validate:"required,max=20"`
	Content       string            `json:"content" validate:"max=2000000"`
	Style         map[string]string `json:"style,omitempty"`
	Alignment     ElementAlignment  `json:"alignment,omitempty" validate:"omitempty,oneof=left center right"`
	Size          ElementSize       `json:"size,omitempty" validate:"omitempty,oneof=small medium large custom"`
	Animation     string            `json:"animation,omitempty"`
	TextAnimation TextAnimation     `json:"textAnimation,omitempty"`
	ScrollEffect  ScrollEffect      `json:"scrollEffect,omitempty"`
}

// IsText reports whether the element is rendered by the text renderer.
func (e CardElement) IsText() bool {
	return e.Type == ElementText || e.Type == ElementHeading
}

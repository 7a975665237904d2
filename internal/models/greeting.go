// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Occasion is the kind of event a greeting is made for.
type Occasion string

const (
	OccasionBirthday        Occasion = "birthday"
	OccasionAnniversary     Occasion = "anniversary"
	OccasionFestival        Occasion = "festival"
	OccasionCongratulations Occasion = "congratulations"
	OccasionThankYou        Occasion = "thankyou"
	OccasionGeneral         Occasion = "general"
)

// Occasions lists every occasion in the order the editor offers them.
var Occasions = []Occasion{
	OccasionBirthday, OccasionAnniversary, OccasionFestival,
	OccasionCongratulations, OccasionThankYou, OccasionGeneral,
}

// Label returns the display name of the occasion.
func (o Occasion) Label() string {
	switch o {
	case OccasionBirthday:
		return "Birthday"
	case OccasionAnniversary:
		return "Anniversary"
	case OccasionFestival:
		return "Festival"
	case OccasionCongratulations:
		return "Congratulations"
	case OccasionThankYou:
		return "Thank You"
	case OccasionGeneral:
		return "General"
	}
	return string(o)
}

// ParseOccasion returns the occasion named by s, or general for anything unknown.
func ParseOccasion(s string) Occasion {
	for _, o := range Occasions {
		if string(o) == s {
			return o
		}
	}
	return OccasionGeneral
}

// AnimationType is the one-shot entrance transition of a card.
type AnimationType string

// AnimationOption pairs an entrance animation with its display name.
type AnimationOption struct {
	ID   AnimationType
	Name string
}

// AnimationOptions lists the entrance animations offered by the editor.
var AnimationOptions = []AnimationOption{
	{"fade", "Fade In"},
	{"slide", "Slide Up"},
	{"scale", "Scale In"},
	{"bounce", "Bounce"},
	{"rotate", "Rotate"},
	{"flip", "Flip"},
	{"pulse", "Pulse"},
	{"glitter", "Glitter"},
	{"shake", "Shake"},
	{"swing", "Swing"},
	{"float", "Float"},
	{"reveal", "Reveal"},
	{"sparkle", "Sparkle"},
}

// ContinuousEffect is the looping particle effect behind a card.
type ContinuousEffect string

const (
	EffectNone     ContinuousEffect = "none"
	EffectConfetti ContinuousEffect = "confetti"
	EffectBubbles  ContinuousEffect = "bubbles"
	EffectSparkles ContinuousEffect = "sparkles"
	EffectHearts   ContinuousEffect = "hearts"
	EffectStars    ContinuousEffect = "stars"
)

// ContinuousEffects lists the effects offered by the editor.
var ContinuousEffects = []ContinuousEffect{
	EffectNone, EffectConfetti, EffectBubbles, EffectSparkles, EffectHearts, EffectStars,
}

// Greeting is the persisted record of one created card. It is written once
// by the editor and read by the preview and recipient pages afterwards.
type Greeting struct {
	ID                      string           `json:"id" validate:"required,max=100"`
	RecipientName           string           `json:"recipientName" validate:"max=200"`
	SenderName              string           `json:"senderName" validate:"max=200"`
	Message                 string           `json:"message" validate:"max=5000"`
	Occasion                Occasion         `json:"occasion" validate:"required,oneof=birthday anniversary festival congratulations thankyou general"`
	ThemeID                 string           `json:"themeId" validate:"max=100"`
	CreatedAt               int64            `json:"createdAt"`
	AnimationType           AnimationType    `json:"animationType,omitempty" validate:"max=20"`
	Elements                []CardElement    `json:"elements,omitempty" validate:"max=100,dive"`
	ContinuousEffect        ContinuousEffect `json:"continuousEffect,omitempty" validate:"omitempty,oneof=none confetti bubbles sparkles hearts stars"`
	ContinuousEffectEnabled *bool            `json:"continuousEffectEnabled,omitempty"`
	CustomTheme             *GreetingTheme   `json:"customTheme,omitempty"`
}

// EffectsEnabled reports the sender's default for the continuous effect.
// A missing flag means enabled.
func (g *Greeting) EffectsEnabled() bool {
	return g.ContinuousEffectEnabled == nil || *g.ContinuousEffectEnabled
}

// Effect returns the continuous effect, treating an empty value as none.
func (g *Greeting) Effect() ContinuousEffect {
	if g.ContinuousEffect == "" {
		return EffectNone
	}
	return g.ContinuousEffect
}

// Created returns the creation time decoded from CreatedAt (unix millis).
func (g *Greeting) Created() time.Time {
	return time.UnixMilli(g.CreatedAt)
}

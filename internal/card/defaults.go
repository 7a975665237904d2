// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package card

import (
	"strings"

	"hola/internal/models"
)

// Salutation and signature fallbacks of the default element set.
const (
	DefaultRecipient = "Friend"
	DefaultSender    = "Me"

	// EditorMessage seeds the message element of a new card in the editor.
	EditorMessage = "Wishing you a wonderful day filled with joy and happiness!"
	// CardMessage is shown on a stored card that has no elements and no message.
	CardMessage = "Have a wonderful day!"
)

var occasionIcons = map[models.Occasion]string{
	models.OccasionBirthday:        "party-popper",
	models.OccasionAnniversary:     "heart",
	models.OccasionFestival:        "gift",
	models.OccasionCongratulations: "award",
	models.OccasionThankYou:        "thumbs-up",
	models.OccasionGeneral:         "smile",
}

var occasionHeadings = map[models.Occasion]string{
	models.OccasionBirthday:        "Happy Birthday!",
	models.OccasionAnniversary:     "Happy Anniversary!",
	models.OccasionFestival:        "Happy Celebrations!",
	models.OccasionCongratulations: "Congratulations!",
	models.OccasionThankYou:        "Thank You!",
	models.OccasionGeneral:         "Hello!",
}

// OccasionIcon returns the default icon key for an occasion.
func OccasionIcon(o models.Occasion) string {
	if icon, ok := occasionIcons[o]; ok {
		return icon
	}
	return occasionIcons[models.OccasionGeneral]
}

// OccasionHeading returns the default heading text for an occasion.
func OccasionHeading(o models.Occasion) string {
	if h, ok := occasionHeadings[o]; ok {
		return h
	}
	return occasionHeadings[models.OccasionGeneral]
}

// Salutation returns the "Dear ..." line for a recipient name.
func Salutation(recipient string) string {
	return "Dear " + orDefault(recipient, DefaultRecipient) + ","
}

// Signature returns the "With love" line for a sender name.
func Signature(sender string) string {
	return "With love,\n" + orDefault(sender, DefaultSender)
}

// DefaultElements returns the starter element set the editor opens with.
func DefaultElements(o models.Occasion, recipient, sender, message string) []models.CardElement {
	return defaultElements(o, recipient, sender, orDefault(message, EditorMessage))
}

func defaultElements(o models.Occasion, recipient, sender, message string) []models.CardElement {
	text := func(id, content string) models.CardElement {
		return models.CardElement{
			ID: id, Type: models.ElementText, Content: content,
			Size: models.SizeMedium, Alignment: models.AlignCenter,
		}
	}
	return []models.CardElement{
		{ID: "default-icon", Type: models.ElementIcon, Content: OccasionIcon(o), Size: models.SizeLarge, Alignment: models.AlignCenter},
		{ID: "default-heading", Type: models.ElementHeading, Content: OccasionHeading(o), Size: models.SizeLarge, Alignment: models.AlignCenter},
		text("default-recipient", Salutation(recipient)),
		text("default-message", message),
		text("default-sender", Signature(sender)),
	}
}

// NewElement returns the element the editor adds for a type, or false for
// an unknown type.
func NewElement(t models.ElementType, id string) (models.CardElement, bool) {
	el := models.CardElement{ID: id, Type: t, Size: models.SizeMedium, Alignment: models.AlignCenter}
	switch t {
	case models.ElementHeading:
		el.Content = "New Heading"
		el.Size = models.SizeLarge
	case models.ElementText:
		el.Content = "Enter your text here"
	case models.ElementImage:
	case models.ElementIcon:
		el.Content = "heart"
	case models.ElementSeparator:
		el.Size, el.Alignment = "", ""
		el.Style = map[string]string{"style": SeparatorSolid, "width": SeparatorMedium}
	case models.ElementEmoji:
		el.Content = DefaultEmoji
	case models.ElementSticker:
		el.Content = "🎉"
	default:
		return models.CardElement{}, false
	}
	return el, true
}

// isSalutation and isSignature recognize the lines written by Salutation and
// Signature, including after the user edited the names.
func isSalutation(content string) bool { return strings.Contains(content, "Dear") }
func isSignature(content string) bool  { return strings.Contains(content, "With love") }

// EmojiCategory is one tab of the emoji picker.
type EmojiCategory struct {
	Name   string
	Glyphs []string
}

// EmojiCategories lists the emoji picker tabs.
var EmojiCategories = []EmojiCategory{
	{"Smileys", []string{"😀", "😃", "😄", "😁", "😆", "😅", "😂", "🤣", "😊", "😇", "🙂", "🙃", "😉", "😌", "😍"}},
	{"Animals", []string{"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨", "🐯", "🦁", "🐮", "🐷", "🐸", "🐵"}},
	{"Food", []string{"🍏", "🍎", "🍊", "🍋", "🍌", "🍉", "🍇", "🍓", "🍈", "🍒", "🍑", "🥭", "🍍", "🥥", "🥝"}},
	{"Activities", []string{"⚽", "🏀", "🏈", "⚾", "🥎", "🎾", "🏐", "🏉", "🥏", "🎱", "🏓", "🏸", "🏒", "🏑", "🥍"}},
	{"Symbols", []string{"❤️", "🧡", "💛", "💚", "💙", "💜", "🖤", "💔", "❣️", "💕", "💞", "💓", "💗", "💖", "💘"}},
}

// StickerSet is one tab of the sticker picker.
type StickerSet struct {
	Name   string
	Glyphs []string
}

// StickerSets lists the sticker picker tabs.
var StickerSets = []StickerSet{
	{"Birthday", []string{"🎂", "🎁", "🎈", "🎉", "🎊", "🎆", "🎇", "🧁", "🍰"}},
	{"Love", []string{"❤️", "💕", "💖", "💘", "💝", "💓", "💗", "💟", "💌"}},
	{"Celebration", []string{"🏆", "🥇", "🎖️", "🎗️", "🎭", "🎪", "🎨", "🎬", "🎼"}},
	{"Nature", []string{"🌸", "🌺", "🌷", "🌹", "💐", "🌻", "🌼", "🍀", "🌈"}},
}

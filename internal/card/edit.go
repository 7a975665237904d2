package card

import (
	"html/template"
	"strings"

	"hola/internal/models"
)

type iconOption struct {
	Key string
	SVG template.HTML
}

type glyphGroup struct {
	Name   string
	Glyphs []string
}

type imageEdit struct {
	Src any
	// Inline is set for uploaded images stored as data URIs; the URL field
	// stays empty for them.
	Inline bool
}

// editRow is the template data of one element's editor form.
type editRow struct {
	Index       int
	First, Last bool
	Label       string
	Element     models.CardElement

	Text      *Text
	Image     *imageEdit
	Icon      *Icon
	Separator *Separator
	Glyphs    []glyphGroup
}

func (editRow) Sizes() []models.ElementSize {
	return []models.ElementSize{models.SizeSmall, models.SizeMedium, models.SizeLarge}
}

func (editRow) Alignments() []models.ElementAlignment {
	return []models.ElementAlignment{models.AlignLeft, models.AlignCenter, models.AlignRight}
}

func (editRow) TextAnimations() []models.TextAnimation { return models.TextAnimations }
func (editRow) ScrollEffects() []models.ScrollEffect   { return models.ScrollEffects }

func (editRow) SeparatorStyles() []string {
	return []string{SeparatorSolid, SeparatorDashed, SeparatorDotted, SeparatorDouble}
}

func (editRow) SeparatorWidths() []string {
	return []string{SeparatorThin, SeparatorMedium, SeparatorWide, SeparatorFull}
}

func (editRow) Icons() []iconOption {
	out := make([]iconOption, len(IconKeys))
	for i, key := range IconKeys {
		out[i] = iconOption{Key: key, SVG: IconSVG(key, "w-6 h-6")}
	}
	return out
}

func newEditRow(index, count int, el models.CardElement) editRow {
	row := editRow{
		Index:   index,
		First:   index == 0,
		Last:    index == count-1,
		Label:   el.Type.Label(),
		Element: el,
	}
	// The form shows normalized values so the selects match the preview.
	row.Element.Size = normalizeSize(el.Size)
	row.Element.Alignment = normalizeAlignment(el.Alignment)

	switch e := Decode(el).(type) {
	case Text:
		row.Text = &e
	case Image:
		src, _ := imageSrc(e.URL)
		if e.URL == "" {
			src = nil
		}
		row.Image = &imageEdit{Src: src, Inline: strings.HasPrefix(e.URL, "data:")}
	case Icon:
		row.Icon = &e
	case Separator:
		row.Separator = &e
	case Emoji:
		for _, c := range EmojiCategories {
			row.Glyphs = append(row.Glyphs, glyphGroup(c))
		}
	case Sticker:
		for _, s := range StickerSets {
			row.Glyphs = append(row.Glyphs, glyphGroup(s))
		}
	case Unknown:
	}
	return row
}

// RenderEditor renders the editor form list for the elements.
func RenderEditor(elements []models.CardElement) template.HTML {
	rows := make([]editRow, len(elements))
	for i, el := range elements {
		rows[i] = newEditRow(i, len(elements), el)
	}
	return execute("edit-list", rows)
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package card

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"strings"

	"hola/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("elements").ParseFS(templateFS, "templates/*.html"))

// TemplateFS exposes the element templates so page caches can fingerprint them.
func TemplateFS() fs.FS { return templateFS }

// Style carries the theme tokens the preview renderers need.
type Style struct {
	TextClass   string
	AccentClass string
	// TextColor overrides TextClass with an explicit color when set.
	TextColor string
}

// StyleFor derives renderer tokens from a theme. A non-empty color takes
// precedence over the theme's own custom text color.
func StyleFor(t models.GreetingTheme, color string) Style {
	return Style{
		TextClass:   t.TextColorClass,
		AccentClass: t.AccentColorClass,
		TextColor:   orDefault(color, t.CustomTextColor),
	}
}

var textSizes = map[models.ElementSize]string{
	models.SizeSmall:  "text-sm",
	models.SizeMedium: "text-base",
	models.SizeLarge:  "text-xl font-semibold",
}

var textAnimationClasses = map[models.TextAnimation]string{
	models.TextAnimationTyping:  "animate-typing",
	models.TextAnimationWave:    "animate-wave",
	models.TextAnimationBounce:  "animate-text-bounce",
	models.TextAnimationFlip:    "animate-text-flip",
	models.TextAnimationFade:    "animate-text-fade",
	models.TextAnimationGlow:    "animate-glow",
	models.TextAnimationShimmer: "animate-shimmer",
	models.TextAnimationRainbow: "animate-rainbow",
}

var scrollClasses = map[models.ScrollEffect]string{
	models.ScrollFadeIn:   "scroll-fade-in",
	models.ScrollSlideUp:  "scroll-slide-up",
	models.ScrollZoomIn:   "scroll-zoom-in",
	models.ScrollRotateIn: "scroll-rotate-in",
}

var imageSizes = map[models.ElementSize]string{
	models.SizeSmall:  "max-w-[150px] max-h-[150px]",
	models.SizeMedium: "max-w-[250px] max-h-[250px]",
	models.SizeLarge:  "max-w-[350px] max-h-[350px]",
}

var iconSizes = map[models.ElementSize]string{
	models.SizeSmall:  "w-6 h-6",
	models.SizeMedium: "w-10 h-10",
	models.SizeLarge:  "w-16 h-16",
}

var emojiSizes = map[models.ElementSize]string{
	models.SizeSmall:  "text-xl",
	models.SizeMedium: "text-3xl",
	models.SizeLarge:  "text-5xl",
}

var stickerSizes = map[models.ElementSize]string{
	models.SizeSmall:  "text-2xl",
	models.SizeMedium: "text-4xl",
	models.SizeLarge:  "text-6xl",
}

var separatorWidths = map[string]string{
	SeparatorThin:   "w-12",
	SeparatorMedium: "w-16",
	SeparatorWide:   "w-24",
	SeparatorFull:   "w-full",
}

var separatorBorders = map[string]string{
	SeparatorSolid:  "border-t-2",
	SeparatorDashed: "border-t-2 border-dashed",
	SeparatorDotted: "border-t-2 border-dotted",
	SeparatorDouble: "border-t-4 border-double",
}

func justify(a models.ElementAlignment) string {
	switch a {
	case models.AlignLeft:
		return "justify-start"
	case models.AlignRight:
		return "justify-end"
	}
	return "justify-center"
}

// classes joins class tokens, dropping empty ones.
func classes(tokens ...string) string {
	return strings.Join(strings.Fields(strings.Join(tokens, " ")), " ")
}

// imageSrc returns the value for an img src attribute. Image data URIs are
// marked safe so html/template keeps them; any other URL goes through the
// template's own URL filtering. Data URIs of other media types are refused.
func imageSrc(src string) (any, bool) {
	if strings.HasPrefix(src, "data:") {
		if !strings.HasPrefix(src, "data:image/") {
			return nil, false
		}
		return template.URL(src), true
	}
	return src, true
}

// RenderPreview renders one element as it appears on the finished card.
func RenderPreview(el Element, st Style) template.HTML {
	switch e := el.(type) {
	case Text:
		color := orDefault(e.Color, st.TextColor)
		textClass := st.TextClass
		if color != "" {
			textClass = ""
		}
		return execute("text", struct {
			Classes      string
			Color        string
			ScrollEffect models.ScrollEffect
			Content      string
		}{
			Classes: classes("w-full mb-4", textClass, textSizes[e.Size],
				"text-"+string(e.Alignment), textAnimationClasses[e.TextAnimation], scrollClasses[e.ScrollEffect]),
			Color:        color,
			ScrollEffect: scrollEffectAttr(e.ScrollEffect),
			Content:      e.Content,
		})
	case Image:
		if e.URL == "" {
			return ""
		}
		src, ok := imageSrc(e.URL)
		if !ok {
			return ""
		}
		return execute("image", struct {
			Justify   string
			Src       any
			SizeClass string
		}{justify(e.Alignment), src, imageSizes[e.Size]})
	case Icon:
		return execute("icon", struct {
			Justify string
			SVG     template.HTML
		}{justify(e.Alignment), IconSVG(e.Key, classes(st.AccentClass, iconSizes[e.Size]))})
	case Separator:
		border := "border-gray-300"
		if st.AccentClass != "" {
			border = strings.ReplaceAll(st.AccentClass, "text-", "border-")
		}
		return execute("separator", struct{ Classes string }{
			classes(separatorWidths[e.Width], separatorBorders[e.Style], border),
		})
	case Emoji:
		return execute("glyph", glyphData(e.Alignment, emojiSizes[e.Size], e.Glyph))
	case Sticker:
		return execute("glyph", glyphData(e.Alignment, stickerSizes[e.Size], e.Glyph))
	case Unknown:
		return execute("unknown", nil)
	}
	return ""
}

func scrollEffectAttr(s models.ScrollEffect) models.ScrollEffect {
	if s == models.ScrollNone {
		return ""
	}
	return s
}

type glyph struct {
	Justify   string
	SizeClass string
	Glyph     string
}

func glyphData(a models.ElementAlignment, size, g string) glyph {
	return glyph{Justify: justify(a), SizeClass: size, Glyph: g}
}

func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("card template render failed", "template", name, "error", err)
		return ""
	}
	return template.HTML(buf.String())
}

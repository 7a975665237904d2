package card

import "html/template"

// FallbackIcon is drawn for icon keys outside the built-in set.
const FallbackIcon = "party-popper"

// IconKeys lists the built-in icons in picker order.
var IconKeys = []string{
	"heart", "gift", "award", "star", "thumbs-up",
	"party-popper", "cake", "sparkles", "smile", "calendar",
}

// iconPaths holds the inner SVG markup of each icon, drawn on a 24x24 stroke grid.
var iconPaths = map[string]template.HTML{
	"heart": `<path d="M19 14c1.49-1.46 3-3.21 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.76 0-3 .5-4.5 2-1.5-1.5-2.74-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4.05 3 5.5l7 7Z"/>`,
	"gift": `<rect x="3" y="8" width="18" height="4" rx="1"/><path d="M12 8v13"/>` +
		`<path d="M19 12v7a2 2 0 0 1-2 2H7a2 2 0 0 1-2-2v-7"/>` +
		`<path d="M7.5 8a2.5 2.5 0 0 1 0-5A4.8 8 0 0 1 12 8a4.8 8 0 0 1 4.5-5 2.5 2.5 0 0 1 0 5"/>`,
	"award": `<circle cx="12" cy="8" r="6"/><path d="M15.477 12.89 17 22l-5-3-5 3 1.523-9.11"/>`,
	"star":  `<polygon points="12 2 15.09 8.26 22 9.27 17 14.14 18.18 21.02 12 17.77 5.82 21.02 7 14.14 2 9.27 8.91 8.26 12 2"/>`,
	"thumbs-up": `<path d="M7 10v12"/>` +
		`<path d="M15 5.88 14 10h5.83a2 2 0 0 1 1.92 2.56l-2.33 8A2 2 0 0 1 17.5 22H4a2 2 0 0 1-2-2v-8a2 2 0 0 1 2-2h2.76a2 2 0 0 0 1.79-1.11L12 2a3.13 3.13 0 0 1 3 3.88Z"/>`,
	"party-popper": `<path d="M5.8 11.3 2 22l10.7-3.79"/><path d="M4 3h.01"/><path d="M22 8h.01"/>` +
		`<path d="M15 2h.01"/><path d="M22 20h.01"/>` +
		`<path d="m22 2-2.24.75a2.9 2.9 0 0 0-1.96 3.12c.1.86-.57 1.63-1.45 1.63h-.38c-.86 0-1.6.6-1.76 1.44L14 10"/>` +
		`<path d="m22 13-.82-.33c-.86-.34-1.82.2-1.98 1.11c-.11.7-.72 1.22-1.43 1.22H17"/>` +
		`<path d="m11 2 .33.82c.34.86-.2 1.82-1.11 1.98C9.52 4.9 9 5.52 9 6.23V7"/>` +
		`<path d="M11 13c1.93 1.93 2.83 4.17 2 5-.83.83-3.07-.07-5-2-1.93-1.93-2.83-4.17-2-5 .83-.83 3.07.07 5 2Z"/>`,
	"cake": `<path d="M20 21v-8a2 2 0 0 0-2-2H6a2 2 0 0 0-2 2v8"/>` +
		`<path d="M4 16s.5-1 2-1 2.5 2 4 2 2.5-2 4-2 2.5 2 4 2 2-1 2-1"/><path d="M2 21h20"/>` +
		`<path d="M7 8v3"/><path d="M12 8v3"/><path d="M17 8v3"/>` +
		`<path d="M7 4h.01"/><path d="M12 4h.01"/><path d="M17 4h.01"/>`,
	"sparkles": `<path d="m12 3-1.912 5.813a2 2 0 0 1-1.275 1.275L3 12l5.813 1.912a2 2 0 0 1 1.275 1.275L12 21l1.912-5.813a2 2 0 0 1 1.275-1.275L21 12l-5.813-1.912a2 2 0 0 1-1.275-1.275L12 3Z"/>` +
		`<path d="M5 3v4"/><path d="M19 17v4"/><path d="M3 5h4"/><path d="M17 19h4"/>`,
	"smile": `<circle cx="12" cy="12" r="10"/><path d="M8 14s1.5 2 4 2 4-2 4-2"/>` +
		`<line x1="9" x2="9.01" y1="9" y2="9"/><line x1="15" x2="15.01" y1="9" y2="9"/>`,
	"calendar": `<rect width="18" height="18" x="3" y="4" rx="2" ry="2"/>` +
		`<line x1="16" x2="16" y1="2" y2="6"/><line x1="8" x2="8" y1="2" y2="6"/><line x1="3" x2="21" y1="10" y2="10"/>`,
}

// IconSVG returns the icon's SVG element with the given classes. Unknown keys
// draw the fallback icon.
func IconSVG(key, class string) template.HTML {
	paths, ok := iconPaths[key]
	if !ok {
		paths = iconPaths[FallbackIcon]
	}
	return template.HTML(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="` +
		template.HTMLEscapeString(class) + `" aria-hidden="true">` + string(paths) + `</svg>`)
}

// Package web embeds the browser assets served under /static/.
package web

import "embed"

// StaticFS holds hola.css and hola.js, which drive card animations, the
// effect stream and drag reordering. Production images also bake in the
// compiled tailwind.css and htmx.min.js; development pages load both from
// a CDN instead.
//
//go:embed all:static
var StaticFS embed.FS

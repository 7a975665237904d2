// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the site pages.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/blake2b"

	"hola/internal/card"
	"hola/internal/middleware"
	"hola/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string          // Page title for <title> tag
	Section   string          // Active nav section ("home", "create")
	Session   *session.Data   // Editor session (nil on pages outside the editor)
	CSRFToken string          // CSRF token for forms and HTMX headers
	Data      map[string]any  // Page-specific data
	Flashes   []session.Flash // One-time notification messages
}

// Renderer handles template parsing and execution for pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
	version   string
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"greeting": true,
}

// New creates a Renderer by parsing all page templates from the embedded
// filesystem. Each page template is paired with the base layout.
// When devMode is true, pages load the unminified HTMX build and log
// every HTMX event to the console.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "text-purple-700 font-semibold"
				}
				return "text-gray-600 hover:text-purple-700"
			},
			// isDev returns true when the app runs in development mode.
			"isDev": func() bool {
				return devMode
			},
			"iconSVG":      card.IconSVG,
			"occasionIcon": card.OccasionIcon,
		},
	}

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	// Parse each page template paired with the base layout.
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		var parseErr error
		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				templateFS, "templates/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				templateFS, "templates/base.html", "templates/"+name,
			)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	r.version, err = templateVersion(devMode, templateFS, card.TemplateFS())
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Version fingerprints the page and element templates and the asset mode.
// Pages rendered by a Renderer with a different Version may differ.
func (rn *Renderer) Version() string {
	return rn.version
}

func templateVersion(devMode bool, fsyss ...fs.FS) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(h, "dev=%t\n", devMode)
	for _, fsys := range fsyss {
		err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(h, "%s %d\n", path, len(data))
			h.Write(data)
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("fingerprint templates: %w", err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)[:8]), nil
}

// Page renders a full page or an HTMX partial with status 200.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus renders a full page or an HTMX partial, depending on the
// request headers. For HTMX requests, only the "content" block is sent.
// For full page loads, the entire base layout is rendered.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	rn.inject(r, data)

	block := ""
	if isHTMX(r) && !standaloneTemplates[name] {
		block = "content"
	}
	rn.write(w, status, name, block, data)
}

// Partial renders one named block of a page template, such as the editor
// workspace swapped in by HTMX.
func (rn *Renderer) Partial(w http.ResponseWriter, r *http.Request, name, block string, data *PageData) {
	rn.inject(r, data)
	rn.write(w, http.StatusOK, name, block, data)
}

// Render executes the full page into out without touching any request. The
// result is what Page serves for a non-HTMX request, suitable for caching.
func (rn *Renderer) Render(out io.Writer, name string, data *PageData) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return executeTemplate(out, tmpl, rootName(name), data)
}

func (rn *Renderer) inject(r *http.Request, data *PageData) {
	// Inject CSRF token from context (set by CSRF middleware).
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	// Inject session from context.
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}
}

// write renders into a buffer first so a template failure becomes a clean
// 500 instead of a truncated page.
func (rn *Renderer) write(w http.ResponseWriter, status int, name, block string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}
	if block == "" {
		block = rootName(name)
	}

	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, block, data); err != nil {
		slog.Error("template execution failed", "template", name, "block", block, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// rootName returns the template a full page render starts from.
func rootName(name string) string {
	// Standalone pages use their own root template (not base.html).
	if standaloneTemplates[name] {
		return name + ".html"
	}
	return "base.html"
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Package router sets up all HTTP routes and middleware chains for Hola. It
// splits routes into the editor group, which carries a session and CSRF
// protection, and the public pages that recipients open from a share link.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hola/internal/handlers"
	"hola/internal/middleware"
	"hola/internal/session"
	"hola/web"
)

// Handlers bundles the handler groups the router dispatches to.
type Handlers struct {
	Pages     *handlers.Pages
	Editor    *handlers.Editor
	Greetings *handlers.Greetings
	API       *handlers.API
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter guards the endpoints that create
// greetings and may be nil. Outside dev, cookies are Secure and the content
// security policy only allows local scripts.
func New(sessionStore *session.Store, limiter *middleware.RateLimiter, dev bool, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.NewSecureHeaders(dev))

	r.Get("/health", healthHandler)

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	createLimit := func(next http.Handler) http.Handler { return next }
	if limiter != nil {
		createLimit = limiter.Middleware
	}

	// Editor and sender preview: session backed, CSRF protected.
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(sessionStore))
		r.Use(middleware.NewCSRF(!dev))

		r.Route("/create", func(r chi.Router) {
			r.Get("/", h.Editor.Page)
			r.Post("/details", h.Editor.Details)
			r.Post("/occasion", h.Editor.Occasion)
			r.Post("/theme", h.Editor.Theme)
			r.Post("/animation", h.Editor.Animation)
			r.Post("/effect", h.Editor.Effect)

			r.Route("/elements", func(r chi.Router) {
				r.Post("/", h.Editor.AddElement)
				r.Post("/reorder", h.Editor.ReorderElements)
				r.Post("/{index}", h.Editor.UpdateElement)
				r.Post("/{index}/move", h.Editor.MoveElement)
				r.Post("/{index}/image", h.Editor.UploadElementImage)
				r.Delete("/{index}", h.Editor.RemoveElement)
			})

			r.Post("/text-animation", h.Editor.TextAnimation)
			r.Post("/scroll-effect", h.Editor.ScrollEffect)
			r.Post("/background/gradient", h.Editor.BackgroundGradient)
			r.Post("/background/image", h.Editor.BackgroundImage)
			r.Post("/background/reset", h.Editor.BackgroundReset)
			r.Post("/text-color", h.Editor.TextColor)
			r.With(createLimit).Post("/submit", h.Editor.Submit)
		})

		r.Get("/preview/{id}", h.Greetings.Preview)
	})

	// Recipient pages and effect streams, no session.
	r.Get("/", h.Pages.Home)
	r.Get("/greeting/{id}", h.Greetings.View)
	r.Get("/greeting/{id}/effects", h.Greetings.Effects)
	r.Get("/effects/{effect}", h.Greetings.EditorEffects)

	// JSON API. No cookies are read, so no CSRF.
	r.Route("/api/greetings", func(r chi.Router) {
		r.With(createLimit).Post("/", h.API.CreateGreeting)
		r.Get("/{id}", h.API.GetGreeting)
	})

	r.NotFound(h.Pages.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

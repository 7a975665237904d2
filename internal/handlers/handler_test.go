// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests. The
// handlers run against in-memory stores so no external service is needed.
package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"hola/internal/middleware"
	"hola/internal/models"
	"hola/internal/render"
	"hola/internal/session"
	"hola/internal/store"
	"hola/internal/testutil"
	"hola/internal/theme"
)

// testEnv holds the handler groups and a cookie jar for one browser.
type testEnv struct {
	router    chi.Router
	sessions  *session.Store
	greetings *store.GreetingStore
	themes    *theme.MemoryStore
	clock     *testutil.StubClock
	cookies   map[string]*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	rn, err := render.New(false)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	env := &testEnv{
		sessions:  session.NewMemoryStore(false),
		greetings: store.NewGreetingStore(store.NewMemoryBackend(), nil, nil),
		themes:    theme.NewMemoryStore(),
		clock:     testutil.FixedClock(),
		cookies:   make(map[string]*http.Cookie),
	}
	ids := testutil.NewStubIDGenerator()

	pages := NewPages(rn, nil)
	editor := NewEditor(rn, env.sessions, env.greetings, env.themes, NewImageStore(nil, ids), env.clock, ids)
	greetings := NewGreetings(rn, env.sessions, env.greetings, nil, "https://hola.example", env.clock)
	api := NewAPI(env.greetings, env.clock, ids)

	r := chi.NewRouter()
	r.Get("/", pages.Home)
	r.Get("/greeting/{id}", greetings.View)
	r.Get("/greeting/{id}/effects", greetings.Effects)
	r.Get("/effects/{effect}", greetings.EditorEffects)
	r.Get("/api/greetings/{id}", api.GetGreeting)
	r.Post("/api/greetings", api.CreateGreeting)
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(env.sessions))
		r.Get("/create", editor.Page)
		r.Post("/create/details", editor.Details)
		r.Post("/create/occasion", editor.Occasion)
		r.Post("/create/theme", editor.Theme)
		r.Post("/create/animation", editor.Animation)
		r.Post("/create/effect", editor.Effect)
		r.Post("/create/elements", editor.AddElement)
		r.Post("/create/elements/reorder", editor.ReorderElements)
		r.Post("/create/elements/{index}", editor.UpdateElement)
		r.Post("/create/elements/{index}/move", editor.MoveElement)
		r.Delete("/create/elements/{index}", editor.RemoveElement)
		r.Post("/create/elements/{index}/image", editor.UploadElementImage)
		r.Post("/create/text-animation", editor.TextAnimation)
		r.Post("/create/scroll-effect", editor.ScrollEffect)
		r.Post("/create/background/gradient", editor.BackgroundGradient)
		r.Post("/create/background/image", editor.BackgroundImage)
		r.Post("/create/background/reset", editor.BackgroundReset)
		r.Post("/create/text-color", editor.TextColor)
		r.Post("/create/submit", editor.Submit)
		r.Get("/preview/{id}", greetings.Preview)
	})
	r.NotFound(pages.NotFound)
	env.router = r
	return env
}

// do sends a request through the router as an HTMX call and keeps cookies.
func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("HX-Request", "true")
	return e.send(req)
}

// page loads target as a full page navigation.
func (e *testEnv) page(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.send(httptest.NewRequest(http.MethodGet, target, nil))
}

func (e *testEnv) send(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range e.cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		e.cookies[c.Name] = c
	}
	return rr
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodGet, target, nil, "")
}

func (e *testEnv) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	rr := e.do(t, http.MethodPost, target, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if rr.Code != http.StatusOK {
		t.Fatalf("POST %s: status %d, body: %s", target, rr.Code, rr.Body.String())
	}
	return rr
}

func (e *testEnv) upload(t *testing.T, target string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "upload.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write(data)
	mw.Close()
	return e.do(t, http.MethodPost, target, &buf, mw.FormDataContentType())
}

// session returns the stored editor session of the test browser.
func (e *testEnv) session(t *testing.T) *session.Data {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	sess, err := e.sessions.Get(context.Background(), req)
	if err != nil || sess == nil {
		t.Fatalf("no editor session: %v", err)
	}
	return sess
}

func (e *testEnv) draft(t *testing.T) models.Greeting {
	t.Helper()
	return e.session(t).Draft
}

// openEditor loads the editor so the browser has a session with a draft.
func (e *testEnv) openEditor(t *testing.T) {
	t.Helper()
	if rr := e.get(t, "/create"); rr.Code != http.StatusOK {
		t.Fatalf("GET /create: status %d", rr.Code)
	}
}

// saveGreeting stores a greeting directly.
func (e *testEnv) saveGreeting(t *testing.T, g *models.Greeting) {
	t.Helper()
	if err := e.greetings.Save(context.Background(), g); err != nil {
		t.Fatalf("save greeting: %v", err)
	}
}

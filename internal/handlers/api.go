package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"hola/internal/clock"
	"hola/internal/models"
	"hola/internal/store"
)

// maxAPIBody caps JSON request bodies. Image elements may carry data URIs.
const maxAPIBody = 16 << 20

// API serves greetings as JSON.
type API struct {
	greetings GreetingRepo
	clock     clock.Clock
	ids       clock.IDGenerator
	validate  *validator.Validate
}

// NewAPI creates the JSON API handlers.
func NewAPI(greetings GreetingRepo, clk clock.Clock, ids clock.IDGenerator) *API {
	return &API{greetings: greetings, clock: clk, ids: ids, validate: newValidator()}
}

// GetGreeting returns one stored greeting.
func (a *API) GetGreeting(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := a.greetings.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "Greeting not found")
		return
	}
	if err != nil {
		slog.Error("api load greeting failed", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// CreateGreeting stores a greeting posted as JSON. A missing id or creation
// time is filled in; an id that is already taken is rejected.
func (a *API) CreateGreeting(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAPIBody)

	var g models.Greeting
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&g); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if g.ID == "" {
		g.ID = a.ids.New()
	}
	if g.CreatedAt == 0 {
		g.CreatedAt = a.clock.Now().UnixMilli()
	}
	if msg := validateGreeting(a.validate, &g); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	_, err := a.greetings.FindByID(r.Context(), g.ID)
	switch {
	case err == nil:
		writeJSONError(w, http.StatusConflict, "Greeting already exists")
		return
	case !errors.Is(err, store.ErrNotFound):
		slog.Error("api check greeting failed", "error", err, "id", g.ID)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := a.greetings.Save(r.Context(), &g); err != nil {
		slog.Error("api save greeting failed", "error", err, "id", g.ID)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Location", "/api/greetings/"+g.ID)
	writeJSON(w, http.StatusCreated, g)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write json response failed", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

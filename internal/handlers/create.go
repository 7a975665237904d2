// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"html/template"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"hola/internal/card"
	"hola/internal/clock"
	"hola/internal/middleware"
	"hola/internal/models"
	"hola/internal/render"
	"hola/internal/session"
	"hola/internal/theme"
)

// defaultElementColor is the value the element color picker shows when the
// element has no color of its own.
const defaultElementColor = "#000000"

// GreetingRepo is the persistence the greeting handlers need.
type GreetingRepo interface {
	Save(ctx context.Context, g *models.Greeting) error
	FindByID(ctx context.Context, id string) (*models.Greeting, error)
}

// Editor groups the handlers of the greeting editor. The greeting being
// edited lives in the editor session as a draft; every endpoint applies one
// change to the draft, saves the session and returns the re-rendered
// workspace.
type Editor struct {
	renderer  *render.Renderer
	sessions  *session.Store
	greetings GreetingRepo
	themes    theme.CustomStore
	factory   *theme.Factory
	images    *ImageStore
	clock     clock.Clock
	ids       clock.IDGenerator
	validate  *validator.Validate
}

// NewEditor creates the editor handler group.
func NewEditor(renderer *render.Renderer, sessions *session.Store, greetings GreetingRepo, themes theme.CustomStore, images *ImageStore, clk clock.Clock, ids clock.IDGenerator) *Editor {
	return &Editor{
		renderer:  renderer,
		sessions:  sessions,
		greetings: greetings,
		themes:    themes,
		factory:   theme.NewFactory(ids),
		images:    images,
		clock:     clk,
		ids:       ids,
		validate:  newValidator(),
	}
}

// editorState is the draft of one request together with the themes it can
// resolve and a manager over its elements.
type editorState struct {
	sess     *session.Data
	custom   []models.GreetingTheme
	registry *theme.Registry
	manager  *card.Manager
}

func (st *editorState) draft() *models.Greeting { return &st.sess.Draft }

// addCustom records a theme created during this request so the registry
// resolves it immediately.
func (st *editorState) addCustom(t models.GreetingTheme) {
	st.custom = append(st.custom, t)
	st.registry = theme.NewRegistry(st.custom)
}

// newDraft returns the greeting the editor opens with.
func newDraft() models.Greeting {
	enabled := true
	return models.Greeting{
		Occasion:                models.OccasionBirthday,
		ThemeID:                 theme.Catalog()[0].ID,
		AnimationType:           "fade",
		ContinuousEffect:        models.EffectNone,
		ContinuousEffectEnabled: &enabled,
		Elements:                card.DefaultElements(models.OccasionBirthday, "", "", ""),
	}
}

// state loads the editor state for the request's session.
func (e *Editor) state(r *http.Request) (*editorState, bool) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		return nil, false
	}
	if sess.Draft.Occasion == "" {
		sess.Draft = newDraft()
	}

	custom, err := e.themes.Load(r.Context(), sess.ID)
	if err != nil {
		slog.Warn("load custom themes failed", "error", err)
	}

	st := &editorState{sess: sess, custom: custom, registry: theme.NewRegistry(custom)}
	st.manager = card.NewManager(sess.Draft.Elements, func(els []models.CardElement) {
		sess.Draft.Elements = els
	}, e.clock)
	return st, true
}

// editFunc applies one change to the draft. A non-empty return value is
// shown to the user instead of a silent no-op.
type editFunc func(r *http.Request, st *editorState) string

// edit wraps an editFunc into a handler that saves the session and renders
// the workspace.
func (e *Editor) edit(fn editFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := e.state(r)
		if !ok {
			http.Error(w, "Session unavailable", http.StatusInternalServerError)
			return
		}
		if err := r.ParseForm(); err != nil {
			e.workspace(w, r, st, "Invalid form submission.")
			return
		}

		msg := fn(r, st)
		if err := e.sessions.Save(r.Context(), st.sess); err != nil {
			slog.Error("save editor session failed", "error", err)
			http.Error(w, "Failed to save your changes. Please try again.", http.StatusInternalServerError)
			return
		}
		e.workspace(w, r, st, msg)
	}
}

// workspace renders the elements list and live preview.
func (e *Editor) workspace(w http.ResponseWriter, r *http.Request, st *editorState, msg string) {
	e.renderer.Partial(w, r, "create", "workspace", e.pageData(st, msg))
}

// themeOption is one button of the theme picker.
type themeOption struct {
	Theme    models.GreetingTheme
	Selected bool
	Style    template.CSS
}

// pageData builds the template data of the editor page.
func (e *Editor) pageData(st *editorState, msg string) *render.PageData {
	d := st.draft()

	themes := lo.Map(st.registry.ForOccasion(d.Occasion), func(t models.GreetingTheme, _ int) themeOption {
		return themeOption{Theme: t, Selected: t.ID == d.ThemeID, Style: card.Swatch(t)}
	})

	current, ok := st.registry.ForGreeting(d)
	if !ok {
		current = st.registry.Default(d.Occasion)
	}
	textColor := lo.CoalesceOrEmpty(current.CustomTextColor, defaultElementColor)

	view := card.NewComposer(st.registry).Compose(d, card.Options{Animated: true})

	return &render.PageData{
		Title:   "Create a Greeting",
		Section: "create",
		Session: st.sess,
		Data: map[string]any{
			"Draft":          d,
			"Occasions":      models.Occasions,
			"Themes":         themes,
			"Animations":     models.AnimationOptions,
			"Effects":        models.ContinuousEffects,
			"EffectsEnabled": d.EffectsEnabled(),
			"ElementTypes":   models.ElementTypes,
			"TextAnimations": models.TextAnimations,
			"ScrollEffects":  models.ScrollEffects,
			"TextAnimation":  st.sess.TextAnimation,
			"ScrollEffect":   st.sess.ScrollEffect,
			"Editor":         card.RenderEditor(d.Elements),
			"Card":           view.HTML(),
			"TextColor":      textColor,
			"GradientStart":  theme.DefaultGradientStart,
			"GradientEnd":    theme.DefaultGradientEnd,
			"CustomBackground": d.CustomTheme != nil &&
				d.CustomTheme.Background() != models.BackgroundClass,
			"Error": msg,
		},
	}
}

// Page renders the editor.
func (e *Editor) Page(w http.ResponseWriter, r *http.Request) {
	st, ok := e.state(r)
	if !ok {
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return
	}
	if err := e.sessions.Save(r.Context(), st.sess); err != nil {
		slog.Warn("save editor session failed", "error", err)
	}

	data := e.pageData(st, "")
	data.Flashes = st.sess.PopFlashes()
	if len(data.Flashes) > 0 {
		if err := e.sessions.Save(r.Context(), st.sess); err != nil {
			slog.Warn("save editor session failed", "error", err)
		}
	}
	e.renderer.Page(w, r, "create", data)
}

// Details updates the recipient, sender and message and rewrites the
// elements derived from them.
func (e *Editor) Details(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		recipient := strings.TrimSpace(r.FormValue("recipientName"))
		sender := strings.TrimSpace(r.FormValue("senderName"))
		message := r.FormValue("message")
		if msg := validateDetails(recipient, sender, message); msg != "" {
			return msg
		}

		d := st.draft()
		if recipient != d.RecipientName {
			d.RecipientName = recipient
			st.manager.Retarget(card.FieldRecipient, recipient)
		}
		if sender != d.SenderName {
			d.SenderName = sender
			st.manager.Retarget(card.FieldSender, sender)
		}
		if message != d.Message {
			d.Message = message
			st.manager.Retarget(card.FieldMessage, message)
		}
		return ""
	})(w, r)
}

// Occasion switches the occasion. The theme is kept when it is offered for
// the new occasion and replaced by the occasion's default otherwise.
func (e *Editor) Occasion(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		d := st.draft()
		o := models.ParseOccasion(r.FormValue("occasion"))
		if o == d.Occasion {
			return ""
		}
		d.Occasion = o

		offered := lo.ContainsBy(st.registry.ForOccasion(o), func(t models.GreetingTheme) bool {
			return t.ID == d.ThemeID
		})
		if !offered {
			d.ThemeID = st.registry.Default(o).ID
			d.CustomTheme = nil
		}
		st.manager.RetargetOccasion(o)
		return ""
	})(w, r)
}

// Theme selects a theme by id.
func (e *Editor) Theme(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		t, ok := st.registry.Resolve(r.FormValue("themeId"))
		if !ok {
			return "That theme is no longer available."
		}
		d := st.draft()
		d.ThemeID = t.ID
		d.CustomTheme = nil
		if t.Custom {
			d.CustomTheme = &t
		}
		return ""
	})(w, r)
}

// Animation sets the entrance animation. Unknown values are ignored.
func (e *Editor) Animation(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		a := models.AnimationType(r.FormValue("animationType"))
		known := lo.ContainsBy(models.AnimationOptions, func(o models.AnimationOption) bool { return o.ID == a })
		if known {
			st.draft().AnimationType = a
		}
		return ""
	})(w, r)
}

// Effect sets the continuous effect and whether it plays by default.
func (e *Editor) Effect(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		d := st.draft()
		if effect := models.ContinuousEffect(r.FormValue("effect")); lo.Contains(models.ContinuousEffects, effect) {
			d.ContinuousEffect = effect
		}
		enabled := lo.Contains(r.PostForm["enabled"], "true")
		d.ContinuousEffectEnabled = &enabled
		return ""
	})(w, r)
}

// AddElement appends an element of the posted type.
func (e *Editor) AddElement(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		st.manager.Add(models.ElementType(r.FormValue("type")))
		return ""
	})(w, r)
}

// ReorderElements moves one element to a new position (drag and drop).
func (e *Editor) ReorderElements(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		st.manager.Reorder(formIndex(r.FormValue("from")), formIndex(r.FormValue("to")))
		return ""
	})(w, r)
}

// UpdateElement applies the element form to the element at the index.
func (e *Editor) UpdateElement(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		index := formIndex(chi.URLParam(r, "index"))
		els := st.manager.Elements()
		if index < 0 || index >= len(els) {
			return ""
		}
		el, msg := applyElementForm(e.validate, els[index], r.Form)
		if msg != "" {
			return msg
		}
		st.manager.Update(index, el)
		return ""
	})(w, r)
}

// MoveElement moves the element at the index one step up or down.
func (e *Editor) MoveElement(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		st.manager.Move(formIndex(chi.URLParam(r, "index")), card.Direction(r.FormValue("dir")))
		return ""
	})(w, r)
}

// RemoveElement deletes the element at the index.
func (e *Editor) RemoveElement(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		st.manager.Remove(formIndex(chi.URLParam(r, "index")))
		return ""
	})(w, r)
}

// UploadElementImage stores an uploaded picture as the image element's content.
func (e *Editor) UploadElementImage(w http.ResponseWriter, r *http.Request) {
	st, ok := e.state(r)
	if !ok {
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return
	}

	index := formIndex(chi.URLParam(r, "index"))
	els := st.manager.Elements()
	if index < 0 || index >= len(els) || els[index].Type != models.ElementImage {
		e.workspace(w, r, st, "")
		return
	}

	src, msg := e.storeUpload(w, r)
	if msg != "" {
		e.workspace(w, r, st, msg)
		return
	}

	el := els[index]
	el.Content = src
	st.manager.Update(index, el)
	e.saveAndRender(w, r, st)
}

// TextAnimation applies one text animation to every text element.
func (e *Editor) TextAnimation(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		a := models.TextAnimation(r.FormValue("textAnimation"))
		if !lo.Contains(models.TextAnimations, a) {
			return ""
		}
		st.sess.TextAnimation = string(a)
		st.manager.ApplyTextAnimation(a)
		return ""
	})(w, r)
}

// ScrollEffect applies one scroll effect to every text element.
func (e *Editor) ScrollEffect(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		s := models.ScrollEffect(r.FormValue("scrollEffect"))
		if !lo.Contains(models.ScrollEffects, s) {
			return ""
		}
		st.sess.ScrollEffect = string(s)
		st.manager.ApplyScrollEffect(s)
		return ""
	})(w, r)
}

// BackgroundGradient creates a custom gradient theme and selects it.
func (e *Editor) BackgroundGradient(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		d := st.draft()
		animated := lo.Contains(r.PostForm["animated"], "true")
		t, err := e.factory.FromGradient(d.Occasion,
			lo.CoalesceOrEmpty(r.FormValue("start"), theme.DefaultGradientStart),
			lo.CoalesceOrEmpty(r.FormValue("end"), theme.DefaultGradientEnd),
			animated)
		if err != nil {
			return "Please pick valid gradient colors."
		}
		e.selectCustom(r.Context(), st, t)
		return ""
	})(w, r)
}

// BackgroundImage creates a custom theme from an uploaded picture.
func (e *Editor) BackgroundImage(w http.ResponseWriter, r *http.Request) {
	st, ok := e.state(r)
	if !ok {
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return
	}

	src, msg := e.storeUpload(w, r)
	if msg != "" {
		e.workspace(w, r, st, msg)
		return
	}

	t, err := e.factory.FromImage(st.draft().Occasion, src)
	if err != nil {
		e.workspace(w, r, st, "Failed to upload image. Please try again.")
		return
	}
	e.selectCustom(r.Context(), st, t)
	e.saveAndRender(w, r, st)
}

// BackgroundReset drops the custom background and returns to the
// occasion's first built-in theme.
func (e *Editor) BackgroundReset(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		d := st.draft()
		d.CustomTheme = nil
		d.ThemeID = theme.NewRegistry(nil).Default(d.Occasion).ID
		return ""
	})(w, r)
}

// TextColor creates a copy of the current theme with an explicit text color.
func (e *Editor) TextColor(w http.ResponseWriter, r *http.Request) {
	e.edit(func(r *http.Request, st *editorState) string {
		d := st.draft()
		base, ok := st.registry.ForGreeting(d)
		if !ok {
			base = st.registry.Default(d.Occasion)
		}
		t, err := e.factory.WithTextColor(base, d.Occasion, r.FormValue("color"))
		if err != nil {
			return "Please pick a valid text color."
		}
		e.selectCustom(r.Context(), st, t)
		return ""
	})(w, r)
}

// Submit stores the draft as a new greeting and sends the browser to its
// preview page.
func (e *Editor) Submit(w http.ResponseWriter, r *http.Request) {
	st, ok := e.state(r)
	if !ok {
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return
	}

	g := st.sess.Draft
	g.ID = e.ids.New()
	g.CreatedAt = e.clock.Now().UnixMilli()
	g.Elements = st.manager.Elements()

	if msg := validateGreeting(e.validate, &g); msg != "" {
		slog.Warn("draft greeting invalid", "error", msg)
		e.workspace(w, r, st, "Failed to create greeting. "+msg)
		return
	}
	if err := e.greetings.Save(r.Context(), &g); err != nil {
		slog.Error("save greeting failed", "error", err)
		e.workspace(w, r, st, "Failed to create greeting. Please try again.")
		return
	}

	st.sess.Draft = newDraft()
	st.sess.TextAnimation = ""
	st.sess.ScrollEffect = ""
	st.sess.AddFlash("success", "Greeting created!")
	if err := e.sessions.Save(r.Context(), st.sess); err != nil {
		slog.Warn("save editor session failed", "error", err)
	}

	target := "/preview/" + g.ID
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// selectCustom remembers a new custom theme for the device and selects it.
func (e *Editor) selectCustom(ctx context.Context, st *editorState, t models.GreetingTheme) {
	if err := e.themes.Save(ctx, st.sess.ID, t); err != nil {
		slog.Warn("save custom theme failed", "error", err)
	}
	st.addCustom(t)
	d := st.draft()
	d.ThemeID = t.ID
	d.CustomTheme = &t
}

// storeUpload reads and stores the "image" upload. A non-empty message
// reports a failure to the user.
func (e *Editor) storeUpload(w http.ResponseWriter, r *http.Request) (string, string) {
	data, err := readUpload(w, r, "image")
	if err != nil {
		slog.Warn("read upload failed", "error", err)
		return "", uploadMessage(err)
	}
	src, err := e.images.Store(r.Context(), data)
	if err != nil {
		slog.Warn("store upload failed", "error", err)
		return "", uploadMessage(err)
	}
	return src, ""
}

func (e *Editor) saveAndRender(w http.ResponseWriter, r *http.Request, st *editorState) {
	if err := e.sessions.Save(r.Context(), st.sess); err != nil {
		slog.Error("save editor session failed", "error", err)
		http.Error(w, "Failed to save your changes. Please try again.", http.StatusInternalServerError)
		return
	}
	e.workspace(w, r, st, "")
}

// formIndex parses an element index, returning -1 for anything invalid.
func formIndex(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return i
}

// applyElementForm returns el with the fields of its editor form applied.
// A non-empty message rejects the whole form.
func applyElementForm(validate *validator.Validate, el models.CardElement, form url.Values) (models.CardElement, string) {
	if form.Has("content") {
		content := form.Get("content")
		// Uploaded images are not echoed back in the URL field.
		inline := el.Type == models.ElementImage && strings.HasPrefix(el.Content, "data:")
		if content != "" || !inline {
			el.Content = content
		}
	}
	if v := form.Get("size"); v != "" {
		el.Size = models.ElementSize(v)
	}
	if v := form.Get("alignment"); v != "" {
		el.Alignment = models.ElementAlignment(v)
	}

	switch {
	case el.IsText():
		if v := form.Get("textAnimation"); v != "" {
			el.TextAnimation = models.TextAnimation(v)
		}
		if v := form.Get("scrollEffect"); v != "" {
			el.ScrollEffect = models.ScrollEffect(v)
		}
		if c := form.Get("color"); c != "" && c != lo.CoalesceOrEmpty(el.Style["color"], defaultElementColor) {
			if err := validate.Var(c, "required,hexcolor"); err != nil {
				return el, "Please pick a valid text color."
			}
			el.Style = withStyle(el.Style, "color", c)
		}
	case el.Type == models.ElementSeparator:
		if v := form.Get("style"); v != "" {
			el.Style = withStyle(el.Style, "style", v)
		}
		if v := form.Get("width"); v != "" {
			el.Style = withStyle(el.Style, "width", v)
		}
	}
	return el, ""
}

func withStyle(style map[string]string, key, value string) map[string]string {
	out := maps.Clone(style)
	if out == nil {
		out = make(map[string]string, 1)
	}
	out[key] = value
	return out
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package card

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/samber/lo"

	"hola/internal/clock"
	"hola/internal/models"
)

// Mode selects how the manager renders its elements.
type Mode int

const (
	// ModeEdit renders the editor forms.
	ModeEdit Mode = iota
	// ModePreview renders the finished card. A preview manager is read-only.
	ModePreview
)

// Direction is the target of a single step move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Field names a greeting detail that default elements are derived from.
type Field string

const (
	FieldRecipient Field = "recipient"
	FieldSender    Field = "sender"
	FieldMessage   Field = "message"
)

// Manager owns the ordered element list of one card. Every successful
// mutation hands a fresh copy of the list to onChange exactly once; calls
// that change nothing (out of range indices, edge moves, preview mode)
// return false without calling it.
type Manager struct {
	mode     Mode
	elements []models.CardElement
	onChange func([]models.CardElement)
	clock    clock.Clock
}

// NewManager returns an edit-mode manager. Element ids for added elements
// are derived from clk.
func NewManager(elements []models.CardElement, onChange func([]models.CardElement), clk clock.Clock) *Manager {
	return &Manager{
		mode:     ModeEdit,
		elements: clone(elements),
		onChange: onChange,
		clock:    clk,
	}
}

// NewPreviewManager returns a read-only manager.
func NewPreviewManager(elements []models.CardElement) *Manager {
	return &Manager{mode: ModePreview, elements: clone(elements)}
}

// Elements returns a copy of the current list.
func (m *Manager) Elements() []models.CardElement {
	return clone(m.elements)
}

// Len returns the number of elements.
func (m *Manager) Len() int { return len(m.elements) }

func (m *Manager) inRange(i int) bool { return i >= 0 && i < len(m.elements) }

func (m *Manager) commit(next []models.CardElement) bool {
	m.elements = next
	if m.onChange != nil {
		m.onChange(clone(next))
	}
	return true
}

// Reorder moves the element at from so that it ends up at index to.
func (m *Manager) Reorder(from, to int) bool {
	if m.mode == ModePreview || !m.inRange(from) || !m.inRange(to) || from == to {
		return false
	}
	next := clone(m.elements)
	moved := next[from]
	next = append(next[:from], next[from+1:]...)
	next = append(next[:to], append([]models.CardElement{moved}, next[to:]...)...)
	return m.commit(next)
}

// Move swaps the element with its neighbour. Moving the first element up or
// the last one down does nothing.
func (m *Manager) Move(index int, dir Direction) bool {
	switch dir {
	case Up:
		return m.Reorder(index, index-1)
	case Down:
		return m.Reorder(index, index+1)
	}
	return false
}

// Update replaces the element at index.
func (m *Manager) Update(index int, el models.CardElement) bool {
	if m.mode == ModePreview || !m.inRange(index) {
		return false
	}
	next := clone(m.elements)
	next[index] = el
	return m.commit(next)
}

// Remove deletes the element at index.
func (m *Manager) Remove(index int) bool {
	if m.mode == ModePreview || !m.inRange(index) {
		return false
	}
	next := clone(m.elements)
	return m.commit(append(next[:index], next[index+1:]...))
}

// Add appends a new element of type t with the editor's defaults.
func (m *Manager) Add(t models.ElementType) bool {
	if m.mode == ModePreview {
		return false
	}
	el, ok := NewElement(t, m.newID(t))
	if !ok {
		return false
	}
	return m.commit(append(clone(m.elements), el))
}

// newID returns "<type>-<unix millis>", suffixed when two elements are added
// within the same millisecond.
func (m *Manager) newID(t models.ElementType) string {
	base := fmt.Sprintf("%s-%d", t, m.clock.Now().UnixMilli())
	id := base
	for n := 2; m.hasID(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func (m *Manager) hasID(id string) bool {
	_, ok := lo.Find(m.elements, func(el models.CardElement) bool { return el.ID == id })
	return ok
}

// rewrite applies fn to a copy of every element and commits when at least
// one element changed.
func (m *Manager) rewrite(fn func(el *models.CardElement) bool) bool {
	if m.mode == ModePreview {
		return false
	}
	next := clone(m.elements)
	changed := false
	for i := range next {
		if fn(&next[i]) {
			changed = true
		}
	}
	if !changed {
		return false
	}
	return m.commit(next)
}

// ApplyTextAnimation sets the text animation of every text and heading element.
func (m *Manager) ApplyTextAnimation(a models.TextAnimation) bool {
	return m.rewrite(func(el *models.CardElement) bool {
		if !el.IsText() {
			return false
		}
		el.TextAnimation = a
		return true
	})
}

// ApplyScrollEffect sets the scroll effect of every text and heading element.
func (m *Manager) ApplyScrollEffect(s models.ScrollEffect) bool {
	return m.rewrite(func(el *models.CardElement) bool {
		if !el.IsText() {
			return false
		}
		el.ScrollEffect = s
		return true
	})
}

// Retarget propagates a details edit into the elements derived from it. A
// recipient edit rewrites every element mentioning "Dear" and a sender edit
// every element mentioning "With love", whatever their type. A message edit
// rewrites the plain text elements that are neither.
func (m *Manager) Retarget(field Field, value string) bool {
	return m.rewrite(func(el *models.CardElement) bool {
		var content string
		switch {
		case field == FieldRecipient && isSalutation(el.Content):
			content = Salutation(value)
		case field == FieldSender && isSignature(el.Content):
			content = Signature(value)
		case field == FieldMessage && el.Type == models.ElementText && !isSalutation(el.Content) && !isSignature(el.Content):
			content = orDefault(value, EditorMessage)
		default:
			return false
		}
		el.Content = content
		return true
	})
}

// RetargetOccasion rewrites every heading and icon to the occasion's defaults.
func (m *Manager) RetargetOccasion(o models.Occasion) bool {
	return m.rewrite(func(el *models.CardElement) bool {
		switch el.Type {
		case models.ElementHeading:
			el.Content = OccasionHeading(o)
		case models.ElementIcon:
			el.Content = OccasionIcon(o)
		default:
			return false
		}
		return true
	})
}

// RenderAll renders the list in the given mode. Preview rendering uses the
// theme tokens and the optional text color override.
func (m *Manager) RenderAll(mode Mode, t models.GreetingTheme, color string) template.HTML {
	if mode == ModeEdit {
		return RenderEditor(m.elements)
	}
	st := StyleFor(t, color)
	var b strings.Builder
	for _, el := range m.elements {
		b.WriteString(string(RenderPreview(Decode(el), st)))
	}
	return template.HTML(b.String())
}

func clone(elements []models.CardElement) []models.CardElement {
	out := make([]models.CardElement, len(elements))
	for i, el := range elements {
		if el.Style != nil {
			style := make(map[string]string, len(el.Style))
			for k, v := range el.Style {
				style[k] = v
			}
			el.Style = style
		}
		out[i] = el
	}
	return out
}

package effects

import (
	"time"

	"hola/internal/models"
)

// Rand is the random source particles are drawn from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Particle is one spawned particle as the browser draws it.
type Particle struct {
	ID     int64                   `json:"id"`
	Effect models.ContinuousEffect `json:"effect"`
	// Size is the box size in pixels; glyphs use a font size of Size*1.5.
	Size float64 `json:"size"`
	// Left is the horizontal offset in percent of the card width.
	Left      float64 `json:"left"`
	Color     string  `json:"color"`
	Glyph     string  `json:"glyph,omitempty"`
	Round     bool    `json:"round"`
	Rotation  float64 `json:"rotation"`
	Rising    bool    `json:"rising"`
	Animation string  `json:"animation"`
	Timing    string  `json:"timing"`
	// Duration is the animation length in seconds.
	Duration float64 `json:"duration"`

	spawned time.Time
}

// Update is the outcome of one Tick.
type Update struct {
	Spawned []Particle
	Removed []int64
}

// Empty reports whether the tick changed nothing.
func (u Update) Empty() bool {
	return len(u.Spawned) == 0 && len(u.Removed) == 0
}

// Scheduler tracks the particles of one running effect. It is driven by
// explicit ticks and is not safe for concurrent use.
type Scheduler struct {
	kind    Kind
	drawing bool
	enabled bool
	rnd     Rand

	active    []Particle
	lastSpawn time.Time
	nextID    int64
}

// NewScheduler creates an enabled scheduler for the effect.
func NewScheduler(effect models.ContinuousEffect, rnd Rand) *Scheduler {
	kind, drawing := KindFor(effect)
	return &Scheduler{kind: kind, drawing: drawing, enabled: true, rnd: rnd}
}

// Running reports whether ticks can spawn particles.
func (s *Scheduler) Running() bool {
	return s.drawing && s.enabled
}

// Active returns the particles currently on screen.
func (s *Scheduler) Active() []Particle {
	return append([]Particle(nil), s.active...)
}

// Tick evicts particles older than MaxLifetime and spawns at most one new
// particle when a full spawn interval has passed since the previous one.
func (s *Scheduler) Tick(now time.Time) Update {
	var u Update

	kept := s.active[:0]
	for _, p := range s.active {
		if now.Sub(p.spawned) >= MaxLifetime {
			u.Removed = append(u.Removed, p.ID)
			continue
		}
		kept = append(kept, p)
	}
	s.active = kept

	if !s.Running() {
		return u
	}
	if !s.lastSpawn.IsZero() && now.Sub(s.lastSpawn) < s.kind.Interval() {
		return u
	}
	p := s.spawn(now)
	s.active = append(s.active, p)
	s.lastSpawn = now
	u.Spawned = append(u.Spawned, p)
	return u
}

func (s *Scheduler) spawn(now time.Time) Particle {
	s.nextID++
	k := s.kind
	p := Particle{
		ID:        s.nextID,
		Effect:    k.Effect,
		Size:      s.rnd.Float64()*10 + 5,
		Left:      s.rnd.Float64() * 100,
		Color:     k.Palette[int(s.rnd.Float64()*float64(len(k.Palette)))%len(k.Palette)],
		Glyph:     k.Glyph,
		Rising:    k.Rising,
		Animation: k.Animation,
		Timing:    k.Timing,
		spawned:   now,
	}
	spread := (k.MaxDuration - k.MinDuration).Seconds()
	p.Duration = k.MinDuration.Seconds() + s.rnd.Float64()*spread

	switch {
	case k.Glyph != "":
	case k.Rising:
		p.Round = true
	default:
		p.Round = s.rnd.Float64() > 0.5
		p.Rotation = s.rnd.Float64() * 360
	}
	return p
}

// SetEnabled turns spawning on or off. Disabling drops every active
// particle and returns their ids.
func (s *Scheduler) SetEnabled(enabled bool) []int64 {
	s.enabled = enabled
	if enabled {
		return nil
	}
	return s.clear()
}

// Stop drops every active particle and returns their ids. The scheduler
// keeps its enabled state.
func (s *Scheduler) Stop() []int64 {
	return s.clear()
}

func (s *Scheduler) clear() []int64 {
	ids := make([]int64, len(s.active))
	for i, p := range s.active {
		ids[i] = p.ID
	}
	s.active = nil
	s.lastSpawn = time.Time{}
	return ids
}

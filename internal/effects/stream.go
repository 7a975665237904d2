package effects

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hola/internal/clock"
)

// DefaultTickInterval is how often Stream ticks its scheduler. It is shorter
// than the fastest spawn interval.
const DefaultTickInterval = 50 * time.Millisecond

// Stream ticks s until ctx is done and writes every change to w as
// Server-Sent Events: "spawn" with a particle, "remove" with particle ids and
// a final "clear" when the stream ends. A scheduler that cannot draw gets a
// single "clear" and Stream returns at once.
func Stream(ctx context.Context, w io.Writer, s *Scheduler, clk clock.Clock, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if !s.Running() {
		return writeEvent(w, "clear", s.Stop())
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := writeUpdate(w, s.Tick(clk.Now())); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return writeEvent(w, "clear", s.Stop())
		case <-ticker.C:
			if err := writeUpdate(w, s.Tick(clk.Now())); err != nil {
				s.Stop()
				return err
			}
		}
	}
}

func writeUpdate(w io.Writer, u Update) error {
	if len(u.Removed) > 0 {
		if err := writeEvent(w, "remove", u.Removed); err != nil {
			return err
		}
	}
	for _, p := range u.Spawned {
		if err := writeEvent(w, "spawn", p); err != nil {
			return err
		}
	}
	return nil
}

func writeEvent(w io.Writer, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("effects marshal %s: %w", event, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return fmt.Errorf("effects write %s: %w", event, err)
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

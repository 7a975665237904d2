// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"hola/internal/clock"
)

const limiterSweepInterval = 5 * time.Minute

// RateLimiter caps how many greetings one client IP may create within a
// sliding window. Greeting creation is the only write open to anonymous
// visitors.
type RateLimiter struct {
	mu      sync.Mutex
	created map[string][]time.Time
	limit   int
	window  time.Duration
	clock   clock.Clock
	stopCh  chan struct{}
	stopped sync.Once
}

// NewRateLimiter allows limit creations per window and sweeps idle clients
// in the background until Stop.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		created: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		clock:   clock.RealClock{},
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(limiterSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop ends the background sweep. Safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.stopped.Do(func() { close(rl.stopCh) })
}

// allow records a creation for key when it is within the limit. Otherwise
// it reports how long until the oldest creation leaves the window.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	now := rl.clock.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := pruned(rl.created[key], now.Add(-rl.window))
	if len(recent) >= rl.limit {
		rl.created[key] = recent
		return false, recent[0].Add(rl.window).Sub(now)
	}
	rl.created[key] = append(recent, now)
	return true, 0
}

// pruned drops the timestamps at or before cutoff. Timestamps are ascending.
func pruned(ts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	return ts[i:]
}

// cleanup forgets clients with no creation inside the window.
func (rl *RateLimiter) cleanup() {
	cutoff := rl.clock.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, ts := range rl.created {
		if recent := pruned(ts, cutoff); len(recent) > 0 {
			rl.created[key] = recent
		} else {
			delete(rl.created, key)
		}
	}
}

// Middleware rejects over-limit requests with 429 and Retry-After. API
// clients get the JSON error body the rest of the API uses.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := rl.allow(clientIP(r))
		if ok {
			next.ServeHTTP(w, r)
			return
		}

		seconds := int(math.Ceil(wait.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		msg := fmt.Sprintf("Too many greetings created. Try again in %d seconds.", seconds)
		w.Header().Set("Retry-After", strconv.Itoa(seconds))

		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": msg})
			return
		}
		http.Error(w, msg, http.StatusTooManyRequests)
	})
}

// clientIP returns the originating client address. The leftmost
// X-Forwarded-For entry wins, then X-Real-IP, then the peer address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

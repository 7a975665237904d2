package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hola/internal/testutil"
)

// newStubbedLimiter returns a limiter driven by a stub clock.
func newStubbedLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *testutil.StubClock) {
	t.Helper()
	rl := NewRateLimiter(limit, window)
	t.Cleanup(rl.Stop)
	clk := testutil.FixedClock()
	rl.clock = clk
	return rl, clk
}

func TestRateLimiterAllow(t *testing.T) {
	rl, _ := newStubbedLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if ok, _ := rl.allow("203.0.113.1"); !ok {
			t.Fatalf("creation %d should be allowed", i+1)
		}
	}
	if ok, _ := rl.allow("203.0.113.1"); ok {
		t.Error("4th creation should be limited")
	}
	if ok, _ := rl.allow("203.0.113.2"); !ok {
		t.Error("another client should be allowed")
	}
}

func TestRateLimiterSlidingWindow(t *testing.T) {
	rl, clk := newStubbedLimiter(t, 2, time.Minute)

	rl.allow("ip")
	clk.Advance(20 * time.Second)
	rl.allow("ip")

	ok, wait := rl.allow("ip")
	if ok {
		t.Fatal("should be limited")
	}
	if wait != 40*time.Second {
		t.Errorf("wait: got %s, want 40s until the first creation expires", wait)
	}

	clk.Advance(41 * time.Second)
	if ok, _ := rl.allow("ip"); !ok {
		t.Error("should be allowed once the first creation left the window")
	}
	if ok, _ := rl.allow("ip"); ok {
		t.Error("second creation is still inside the window")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl, clk := newStubbedLimiter(t, 1, time.Minute)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	if rr := send("/api/greetings"); rr.Code != http.StatusCreated {
		t.Fatalf("first request: got %d", rr.Code)
	}

	clk.Advance(30 * time.Second)
	rr := send("/api/greetings")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("got %d, want 429", rr.Code)
	}
	if got := rr.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After: got %q, want 30", got)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil || body.Error == "" {
		t.Errorf("API rejection should carry a JSON error, got %v %q", err, rr.Body.String())
	}

	rr = send("/create/submit")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("editor submit: got %d, want 429", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("editor rejection Content-Type: got %q", ct)
	}
}

func TestRateLimiterStopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	rl.Stop()
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{"x-forwarded-for single", "10.0.0.1", "", "192.168.1.1:1234", "10.0.0.1"},
		{"x-forwarded-for chain", "10.0.0.1, 172.16.0.1", "", "192.168.1.1:1234", "10.0.0.1"},
		{"x-real-ip", "", "10.0.0.2", "192.168.1.1:1234", "10.0.0.2"},
		{"peer address", "", "", "192.168.1.1:1234", "192.168.1.1"},
		{"peer ipv6", "", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"peer without port", "", "", "192.168.1.1", "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl, clk := newStubbedLimiter(t, 10, 200*time.Millisecond)

	rl.allow("ip-old")
	clk.Advance(250 * time.Millisecond)
	rl.allow("ip-fresh")

	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.created["ip-old"]; ok {
		t.Error("ip-old should be forgotten")
	}
	if len(rl.created["ip-fresh"]) != 1 {
		t.Error("ip-fresh should keep its recent creation")
	}
}

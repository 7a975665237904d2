package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func secureHeadersFor(dev bool) http.Header {
	handler := NewSecureHeaders(dev)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	return rr.Header()
}

func TestSecureHeaders(t *testing.T) {
	h := secureHeadersFor(false)

	tests := []struct {
		header string
		want   string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "SAMEORIGIN"},
		{"X-XSS-Protection", "0"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"Permissions-Policy", permissionsPolicy},
		{"Strict-Transport-Security", "max-age=31536000"},
		{"Content-Security-Policy", ContentSecurityPolicy(false)},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := h.Get(tt.header); got != tt.want {
				t.Errorf("%s: got %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestSecureHeadersDev(t *testing.T) {
	h := secureHeadersFor(true)
	if got := h.Get("Strict-Transport-Security"); got != "" {
		t.Errorf("dev should not send HSTS, got %q", got)
	}
	if !strings.Contains(h.Get("Content-Security-Policy"), "https://cdn.tailwindcss.com") {
		t.Error("dev policy should allow the Tailwind CDN")
	}
}

func TestContentSecurityPolicy(t *testing.T) {
	prod := ContentSecurityPolicy(false)
	for _, want := range []string{"script-src 'self';", "img-src 'self' data: https:", "connect-src 'self'"} {
		if !strings.Contains(prod, want) {
			t.Errorf("policy %q should contain %q", prod, want)
		}
	}
	if strings.Contains(prod, "unsafe-eval") || strings.Contains(prod, "unpkg.com") {
		t.Errorf("production policy should not allow CDN scripts: %q", prod)
	}
}

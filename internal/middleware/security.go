// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
)

const permissionsPolicy = "camera=(), microphone=(), geolocation=(), interest-cohort=()"

// Script origins the development templates load Tailwind and HTMX from.
var devScriptSources = []string{"'unsafe-inline'", "'unsafe-eval'", "https://cdn.tailwindcss.com", "https://unpkg.com"}

// ContentSecurityPolicy builds the policy for the card pages. Images may be
// data URIs (inline uploads, QR codes) or any https URL a sender pasted.
// Effect streams are same-origin EventSource connections.
func ContentSecurityPolicy(dev bool) string {
	scripts := []string{"'self'"}
	if dev {
		scripts = append(scripts, devScriptSources...)
	}
	directives := []string{
		"default-src 'self'",
		"script-src " + strings.Join(scripts, " "),
		// Card colors and gradients are inline styles.
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"connect-src 'self'",
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
		"frame-ancestors 'self'",
	}
	return strings.Join(directives, "; ")
}

// NewSecureHeaders returns middleware that adds the security headers and the
// content security policy to every response.
func NewSecureHeaders(dev bool) func(http.Handler) http.Handler {
	csp := ContentSecurityPolicy(dev)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", csp)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "SAMEORIGIN")
			h.Set("X-XSS-Protection", "0")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", permissionsPolicy)
			if !dev {
				h.Set("Strict-Transport-Security", "max-age=31536000")
			}

			next.ServeHTTP(w, r)
		})
	}
}

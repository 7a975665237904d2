// Package middleware provides HTTP middleware for the Hola server.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// responseWriter records the status and size of a response.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
	flushes    int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Flush forwards to the wrapped writer so effect events reach the browser.
func (rw *responseWriter) Flush() {
	rw.flushes++
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Logger writes one structured line per request once it completes. Health
// checks and static assets log at debug. Server errors log at error and
// client errors at warn. Effect streams also report how many times they
// flushed, which is the number of events the browser received.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", wrapped.statusCode),
			slog.Int("bytes", wrapped.bytes),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote", r.RemoteAddr),
		}
		if strings.HasPrefix(wrapped.Header().Get("Content-Type"), "text/event-stream") {
			attrs = append(attrs, slog.Int("events", wrapped.flushes))
		}
		slog.LogAttrs(r.Context(), requestLogLevel(r.URL.Path, wrapped.statusCode), "http request", attrs...)
	})
}

func requestLogLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case path == "/health" || strings.HasPrefix(path, "/static/"):
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// csrfHandler wraps an OK handler in NewCSRF and records the context token.
func csrfHandler(secure bool, seen *string) http.Handler {
	return NewCSRF(secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = CSRFTokenFromCtx(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	}))
}

// issueCSRFCookie performs a GET and returns the token cookie it set.
func issueCSRFCookie(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/create", nil))
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	t.Fatal("CSRF cookie not set")
	return nil
}

func TestCSRFCookieAttributes(t *testing.T) {
	for _, secure := range []bool{true, false} {
		c := issueCSRFCookie(t, csrfHandler(secure, nil))
		if c.Secure != secure {
			t.Errorf("Secure: got %v, want %v", c.Secure, secure)
		}
		if !c.HttpOnly || c.SameSite != http.SameSiteStrictMode {
			t.Errorf("cookie should be HttpOnly and SameSite=Strict: %+v", c)
		}
		if !validCSRFToken(c.Value) {
			t.Errorf("token %q is not 64 hex chars", c.Value)
		}
	}
}

func TestCSRFContextToken(t *testing.T) {
	var seen string
	h := csrfHandler(false, &seen)
	cookie := issueCSRFCookie(t, h)
	if seen != cookie.Value {
		t.Errorf("context token %q != cookie token %q", seen, cookie.Value)
	}

	req := httptest.NewRequest(http.MethodGet, "/create", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen != cookie.Value {
		t.Error("an existing cookie should be reused")
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("no new cookie should be issued when one is present")
	}

	if got := CSRFTokenFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
		t.Errorf("outside the middleware: got %q", got)
	}
}

func TestCSRFMalformedCookieIsReplaced(t *testing.T) {
	var seen string
	h := csrfHandler(false, &seen)

	req := httptest.NewRequest(http.MethodGet, "/create", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "forged"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen == "forged" || !validCSRFToken(seen) {
		t.Errorf("malformed cookie should be replaced, got %q", seen)
	}
}

func TestCSRFStateChangingRequests(t *testing.T) {
	h := csrfHandler(false, nil)
	cookie := issueCSRFCookie(t, h)
	token := cookie.Value

	form := func(v url.Values) (string, string) {
		return "application/x-www-form-urlencoded", v.Encode()
	}
	multipartBody := func(field, value string) (string, string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		mw.WriteField(field, value)
		mw.Close()
		return mw.FormDataContentType(), buf.String()
	}

	tests := []struct {
		name   string
		method string
		header string
		body   func() (string, string)
		want   int
	}{
		{"no token", http.MethodPost, "", nil, http.StatusForbidden},
		{"wrong header", http.MethodPost, strings.Repeat("0", 64), nil, http.StatusForbidden},
		{"header", http.MethodPost, token, nil, http.StatusOK},
		{"delete with header", http.MethodDelete, token, nil, http.StatusOK},
		{"delete without token", http.MethodDelete, "", nil, http.StatusForbidden},
		{"urlencoded field", http.MethodPost, "", func() (string, string) {
			return form(url.Values{CSRFFormField: {token}, "recipientName": {"Jane"}})
		}, http.StatusOK},
		{"multipart field is not read", http.MethodPost, "", func() (string, string) {
			return multipartBody(CSRFFormField, token)
		}, http.StatusForbidden},
		{"multipart with header", http.MethodPost, token, func() (string, string) {
			return multipartBody("image", "data")
		}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != nil {
				ct, body := tt.body()
				req = httptest.NewRequest(tt.method, "/create/details", strings.NewReader(body))
				req.Header.Set("Content-Type", ct)
			} else {
				req = httptest.NewRequest(tt.method, "/create/elements/0", nil)
			}
			req.AddCookie(cookie)
			if tt.header != "" {
				req.Header.Set(CSRFHeaderName, tt.header)
			}

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestCSRFSafeMethodsPassThrough(t *testing.T) {
	h := csrfHandler(false, nil)
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(method, "/create", nil))
		if rr.Code != http.StatusOK {
			t.Errorf("%s: got %d, want 200", method, rr.Code)
		}
	}
}

package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"mime"
	"net/http"
)

const (
	// csrfTokenLength is the byte length of CSRF tokens (64 hex chars).
	csrfTokenLength = 32

	// CSRFCookieName is the cookie that holds the editor's CSRF token.
	CSRFCookieName = "hola_csrf"

	// CSRFHeaderName carries the token on HTMX requests; the page body sets
	// it through hx-headers.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormField is the hidden field name for plain form posts.
	CSRFFormField = "csrf_token"

	csrfKey contextKey = "csrf_token"
)

// NewCSRF returns double-submit cookie protection for the editor. A GET
// issues the token cookie; every other method must echo it in the header
// or, for urlencoded forms, the csrf_token field. Image uploads are
// multipart and must use the header, so the upload body is never parsed
// before the upload handler applies its size limit.
func NewCSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(CSRFCookieName); err == nil && validCSRFToken(cookie.Value) {
				token = cookie.Value
			}
			if token == "" {
				var err error
				if token, err = generateCSRFToken(); err != nil {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteStrictMode,
				})
			}

			r = r.WithContext(context.WithValue(r.Context(), csrfKey, token))

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(submittedCSRFToken(r))) != 1 {
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func submittedCSRFToken(r *http.Request) string {
	if v := r.Header.Get(CSRFHeaderName); v != "" {
		return v
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/x-www-form-urlencoded" {
		return ""
	}
	return r.PostFormValue(CSRFFormField)
}

// CSRFTokenFromCtx returns the token stored by NewCSRF, or "" outside it.
func CSRFTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey).(string)
	return token
}

func validCSRFToken(v string) bool {
	if len(v) != 2*csrfTokenLength {
		return false
	}
	_, err := hex.DecodeString(v)
	return err == nil
}

func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

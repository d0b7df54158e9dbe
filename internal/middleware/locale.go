package middleware

import (
	"context"
	"net/http"
	"strings"

	"meridianpress.org/meridian-web/internal/i18n"
)

// Locale resolves the preferred language from the hl query parameter, the
// hl cookie, or Accept-Language, stores it in the request context, and
// surfaces Content-Language and Vary headers.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback())

			lang := ""
			if q := strings.ToLower(r.URL.Query().Get("hl")); q != "" {
				lang = q
				http.SetCookie(w, &http.Cookie{Name: "hl", Value: q, Path: "/"})
			} else if c, err := r.Cookie("hl"); err == nil && c.Value != "" {
				lang = strings.ToLower(c.Value)
			} else {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}

			w.Header().Add("Vary", "Accept-Language")
			if lang != "" {
				w.Header().Set("Content-Language", lang)
			}
			next.ServeHTTP(w, r.WithContext(WithLang(ctx, lang)))
		})
	}
}

// Lang returns the resolved language for the request, defaulting to the
// bundle fallback and finally "en".
func Lang(r *http.Request) string {
	if lang, ok := LangFromContext(r.Context()); ok && lang != "" {
		return lang
	}
	if v := r.Context().Value(ctxKeyLocaleFB); v != nil {
		if fb, ok := v.(string); ok && fb != "" {
			return fb
		}
	}
	return "en"
}

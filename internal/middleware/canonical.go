package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// CanonicalHost redirects requests whose host or path differs from the
// canonical form: the configured origin's host, and paths without trailing
// slashes (the root excepted). Search engines then see one URL per page.
func CanonicalHost(origin string) func(http.Handler) http.Handler {
	canonical, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || canonical.Host == "" {
		canonical = nil
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			target := *r.URL
			redirect := false

			if p := r.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
				target.Path = strings.TrimRight(p, "/")
				redirect = true
			}
			if canonical != nil && r.Host != "" && r.Host != canonical.Host {
				target.Scheme = canonical.Scheme
				target.Host = canonical.Host
				redirect = true
			}
			if redirect {
				if target.Host == "" && canonical != nil {
					target.Scheme = canonical.Scheme
					target.Host = canonical.Host
				}
				http.Redirect(w, r, target.String(), http.StatusMovedPermanently)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

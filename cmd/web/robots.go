package main

import (
	"net/http"

	"meridianpress.org/meridian-web/internal/robots"
	"meridianpress.org/meridian-web/internal/seo"
)

// RobotsHandler serves the crawl policy. Indexing directives stay in page
// meta tags; robots.txt only scopes crawling.
func RobotsHandler(w http.ResponseWriter, r *http.Request) {
	f := robots.File{
		Groups: []robots.Group{
			{Disallow: []string{"/drafts/", "/assets/"}},
		},
		Sitemaps: []string{seo.Canonical(siteOrigin, "/sitemap.xml")},
	}
	body, err := f.Render()
	if err != nil {
		http.Error(w, "robots unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(body))
}

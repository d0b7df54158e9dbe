package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"meridianpress.org/meridian-web/internal/content"
	"meridianpress.org/meridian-web/internal/handlers"
	mw "meridianpress.org/meridian-web/internal/middleware"
)

// AboutHandler renders the about page from the local content tree.
func AboutHandler(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, "pages", "about")
}

// LegalPageHandler renders a legal document (privacy policy, terms).
func LegalPageHandler(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, "legal", chi.URLParam(r, "slug"))
}

func servePage(w http.ResponseWriter, r *http.Request, kind, slug string) {
	lang := mw.Lang(r)

	p, err := library.GetPage(r.Context(), kind, slug, lang)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	// Versioned pages get a validator so repeat visits revalidate cheaply.
	if p.Version != "" {
		sum := sha256.Sum256([]byte(p.Kind + "/" + p.Slug + "@" + p.Version + ":" + lang))
		etag := `W/"` + hex.EncodeToString(sum[:8]) + `"`
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=300, stale-while-revalidate=600")
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	body, err := content.RenderBody(p.Body, p.Format)
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	pattern := "/about"
	if kind == "legal" {
		pattern = "/legal/{slug}"
	}
	data := basePageData(r)
	data.SEO = metaRegistry.ResolveFor(pattern, p, data.SEO)
	data.SEO.Alternates = i18nBundle.Alternates(siteOrigin, r.URL.Path)
	data.SEO.Attach(breadcrumbJSONLD(data.Breadcrumbs, lang))
	data.Title = data.SEO.Title
	data.Content = handlers.ContentView{
		Slug:    p.Slug,
		Title:   p.Title,
		Summary: p.Summary,
		Body:    body,
		Version: p.Version,
	}
	render(w, r, data)
}

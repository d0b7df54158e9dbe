package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"meridianpress.org/meridian-web/internal/content"
	"meridianpress.org/meridian-web/internal/i18n"
	mw "meridianpress.org/meridian-web/internal/middleware"
)

// newTestRouter builds a router similar to main(), optionally adding extra
// routes. CanonicalHost is left out so httptest's default host does not
// trigger redirects.
func newTestRouter(t *testing.T, add func(r chi.Router)) http.Handler {
	t.Helper()
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	contentDir = "../../content"
	localesDir = "../../locales"
	siteOrigin = "https://meridianpress.org"
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}
	var err error
	i18nBundle, err = i18n.Load(localesDir, "en", []string{"en", "ja"})
	if err != nil {
		t.Fatalf("load i18n: %v", err)
	}
	store := content.NewStore(contentDir)
	store.SetCacheTTL(time.Millisecond)
	library = content.NewLibrary(content.NewClient(""), store)
	metaRegistry = newMetaRegistry(siteOrigin)
	t.Cleanup(func() {
		i18nBundle = nil
		library = nil
		metaRegistry = nil
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Locale(i18nBundle))
	r.Use(mw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	assets := http.StripPrefix("/assets", mw.AssetsWithCache("../../public/assets"))
	r.Handle("/assets/*", assets)
	r.Get("/", HomeHandler)
	r.Get("/articles", ArticlesHandler)
	r.Get("/articles/{slug}", ArticleHandler)
	r.Get("/about", AboutHandler)
	r.Get("/legal/{slug}", LegalPageHandler)
	r.Get("/robots.txt", RobotsHandler)

	if add != nil {
		r.Group(func(r chi.Router) {
			add(r)
		})
	}
	return r
}

func get(t *testing.T, srv http.Handler, target, lang string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestHomeHeadTags(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec)

	if href, _ := doc.Find(`link[rel="canonical"]`).Attr("href"); href != "https://meridianpress.org/" {
		t.Fatalf("expected canonical https://meridianpress.org/, got %q", href)
	}
	if c, _ := doc.Find(`meta[property="og:title"]`).Attr("content"); c == "" {
		t.Fatalf("expected og:title meta tag")
	}
	if robots, _ := doc.Find(`meta[name="robots"]`).Attr("content"); robots != "index,follow" {
		t.Fatalf("expected robots index,follow, got %q", robots)
	}
	if n := doc.Find(`link[rel="alternate"][hreflang]`).Length(); n != 3 {
		t.Fatalf("expected 3 hreflang alternates (en, ja, x-default), got %d", n)
	}

	types := map[string]bool{}
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var obj map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &obj); err != nil {
			t.Fatalf("invalid JSON-LD: %v; raw=%s", err, s.Text())
		}
		typ, _ := obj["@type"].(string)
		types[typ] = true
	})
	if !types["Organization"] || !types["WebSite"] {
		t.Fatalf("expected Organization and WebSite structured data, got %v", types)
	}
}

func TestHomeLocalizedNav_JA(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/", "ja")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "記事一覧") {
		t.Fatalf("expected localized nav label in body")
	}
}

func TestArticlesIndexListsLocalContent(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/articles", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec)
	if n := doc.Find("[data-article-card]").Length(); n < 3 {
		t.Fatalf("expected at least 3 article cards, got %d", n)
	}
	if robots, _ := doc.Find(`meta[name="robots"]`).Attr("content"); robots != "index,follow" {
		t.Fatalf("expected unfiltered index to be indexable, got %q", robots)
	}
}

func TestArticlesFilteredViewIsNoindex(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/articles?tag=seo", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc := parseDoc(t, rec)
	if robots, _ := doc.Find(`meta[name="robots"]`).Attr("content"); robots != "noindex,follow" {
		t.Fatalf("expected noindex,follow on filtered view, got %q", robots)
	}
	if href, _ := doc.Find(`link[rel="canonical"]`).Attr("href"); href != "https://meridianpress.org/articles" {
		t.Fatalf("expected canonical to drop the filter, got %q", href)
	}
}

func TestArticlePageStructuredData(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/articles/field-notes-on-canonical-urls", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec)

	if href, _ := doc.Find(`link[rel="canonical"]`).Attr("href"); href != "https://meridianpress.org/articles/field-notes-on-canonical-urls" {
		t.Fatalf("unexpected canonical %q", href)
	}
	if typ, _ := doc.Find(`meta[property="og:type"]`).Attr("content"); typ != "article" {
		t.Fatalf("expected og:type article, got %q", typ)
	}

	var article, breadcrumbs map[string]any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var obj map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &obj); err != nil {
			t.Fatalf("invalid JSON-LD: %v", err)
		}
		switch obj["@type"] {
		case "Article":
			article = obj
		case "BreadcrumbList":
			breadcrumbs = obj
		}
	})
	if article == nil {
		t.Fatalf("expected Article structured data")
	}
	if got := article["headline"]; got != "Field Notes on Canonical URLs" {
		t.Fatalf("unexpected headline %v", got)
	}
	author, _ := article["author"].(map[string]any)
	if author == nil || author["name"] != "Mara Ellison" {
		t.Fatalf("expected author Mara Ellison, got %v", article["author"])
	}
	if breadcrumbs == nil {
		t.Fatalf("expected BreadcrumbList structured data")
	}
	items, _ := breadcrumbs["itemListElement"].([]any)
	if len(items) != 3 {
		t.Fatalf("expected 3 breadcrumb items, got %d", len(items))
	}
	last, _ := items[2].(map[string]any)
	if last["name"] != "Field Notes on Canonical URLs" {
		t.Fatalf("expected article title as final crumb, got %v", last["name"])
	}

	if !strings.Contains(rec.Body.String(), "Why one address matters") {
		t.Fatalf("expected rendered markdown heading in body")
	}
}

func TestArticleNotFound(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/articles/no-such-article", "en")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLegalPageVersionAndETag(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/legal/privacy-policy", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Privacy Policy") {
		t.Fatalf("expected policy title in body")
	}
	if !strings.Contains(body, "2026.1") {
		t.Fatalf("expected document version in body")
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header")
	}

	req2 := httptest.NewRequest(http.MethodGet, "/legal/privacy-policy", nil)
	req2.Header.Set("If-None-Match", etag)
	rec2 := httptest.NewRecorder()
	srv.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusNotModified {
		t.Fatalf("expected 304 for matching ETag, got %d", rec2.Code)
	}
}

func TestRobotsTxt(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/robots.txt", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "User-agent: *") {
		t.Fatalf("expected wildcard user-agent group, got %s", body)
	}
	if !strings.Contains(body, "Disallow: /drafts/") {
		t.Fatalf("expected drafts disallow, got %s", body)
	}
	if !strings.Contains(body, "Sitemap: https://meridianpress.org/sitemap.xml") {
		t.Fatalf("expected sitemap reference, got %s", body)
	}
	if strings.Contains(strings.ToLower(body), "noindex") {
		t.Fatalf("robots.txt must not carry noindex, got %s", body)
	}
}

func TestAssetETagRoundTrip(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := get(t, srv, "/assets/site.css", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag on asset response")
	}
	req2 := httptest.NewRequest(http.MethodGet, "/assets/site.css", nil)
	req2.Header.Set("If-None-Match", etag)
	rec2 := httptest.NewRecorder()
	srv.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rec2.Code)
	}
}

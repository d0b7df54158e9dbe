package main

import (
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"meridianpress.org/meridian-web/internal/content"
	"meridianpress.org/meridian-web/internal/handlers"
	"meridianpress.org/meridian-web/internal/i18n"
	mw "meridianpress.org/meridian-web/internal/middleware"
	"meridianpress.org/meridian-web/internal/routemeta"
	"meridianpress.org/meridian-web/internal/seo"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	contentDir   = "content"
	localesDir   = "locales"
	// devMode is set in main() based on env: MERIDIAN_WEB_DEV (preferred) or DEV (fallback)
	devMode   bool
	tmplCache *template.Template

	siteOrigin   string
	metaRegistry *routemeta.Registry
	i18nBundle   *i18n.Bundle
	library      *content.Library
	analytics    handlers.Analytics
)

func main() {
	// Flags/environment
	var addr, origin string
	var tmplPath, pubPath, contPath, locPath string
	// Port resolution: prefer MERIDIAN_WEB_PORT, then Cloud Run's PORT, else 8080
	port := os.Getenv("MERIDIAN_WEB_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	defaultOrigin := os.Getenv("MERIDIAN_WEB_ORIGIN")
	if defaultOrigin == "" {
		defaultOrigin = "https://meridianpress.org"
	}
	flag.StringVar(&addr, "addr", ":"+port, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", templatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", publicDir, "public assets directory")
	flag.StringVar(&contPath, "content", contentDir, "content directory")
	flag.StringVar(&locPath, "locales", localesDir, "locales directory")
	flag.StringVar(&origin, "origin", defaultOrigin, "canonical site origin")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath
	contentDir = contPath
	localesDir = locPath
	siteOrigin = strings.TrimRight(origin, "/")

	// Dev mode: prefer MERIDIAN_WEB_DEV, fallback to DEV
	devMode = os.Getenv("MERIDIAN_WEB_DEV") != "" || os.Getenv("DEV") != ""

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			log.Fatalf("parse templates: %v", err)
		}
		tmplCache = tc
	}

	var err error
	i18nBundle, err = i18n.Load(localesDir, "en", []string{"en", "ja"})
	if err != nil {
		log.Fatalf("load locales: %v", err)
	}
	library = content.NewLibrary(content.NewClient(os.Getenv("MERIDIAN_WEB_CONTENT_API")), content.NewStore(contentDir))
	analytics = handlers.LoadAnalyticsFromEnv()
	metaRegistry = newMetaRegistry(siteOrigin)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(chimw.RealIP)
	r.Use(mw.CanonicalHost(siteOrigin))
	r.Use(mw.Locale(i18nBundle))
	r.Use(mw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	mountRoutes(r)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("web listening on %s (devMode=%v origin=%s)", addr, devMode, siteOrigin)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}

func mountRoutes(r chi.Router) {
	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", HomeHandler)
	r.Get("/articles", ArticlesHandler)
	r.Get("/articles/{slug}", ArticleHandler)
	r.Get("/about", AboutHandler)
	r.Get("/legal/{slug}", LegalPageHandler)
	r.Get("/robots.txt", RobotsHandler)
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":     time.Now,
		"seoHead": seo.Head,
		"t": func(lang, key string) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.T(lang, key)
		},
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// render executes the base layout. In dev mode, templates are reparsed on each request.
func render(w http.ResponseWriter, r *http.Request, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var t *template.Template
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		t = tc
	} else {
		t = tmplCache
	}
	if t == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
		return
	}
}

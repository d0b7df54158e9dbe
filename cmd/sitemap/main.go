// Command sitemap builds sitemap.xml (and optionally robots.txt) for the
// site. It runs at deploy time: a failed content fetch fails the build
// rather than publishing a partial sitemap.
package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"meridianpress.org/meridian-web/internal/content"
	"meridianpress.org/meridian-web/internal/robots"
	"meridianpress.org/meridian-web/internal/seo"
	"meridianpress.org/meridian-web/internal/sitemap"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath string
		origin     string
		out        string
		contentAPI string
		contentDir string
		timeout    time.Duration
	)
	flag.StringVar(&configPath, "config", "sitemap.yaml", "build configuration file")
	flag.StringVar(&origin, "origin", "", "canonical origin (overrides config)")
	flag.StringVar(&out, "out", "", "output path (overrides config)")
	flag.StringVar(&contentAPI, "content-api", os.Getenv("MERIDIAN_WEB_CONTENT_API"), "content API base URL")
	flag.StringVar(&contentDir, "content", "content", "local content directory (used when no API is configured)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall build timeout")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalw("load config", "path", configPath, "err", err)
	}
	if origin != "" {
		cfg.Origin = origin
	}
	if out != "" {
		cfg.Out = out
	}
	if cfg.Origin == "" {
		cfg.Origin = os.Getenv("MERIDIAN_WEB_ORIGIN")
	}
	if cfg.Origin == "" {
		log.Fatalw("no origin configured; set origin in config, -origin, or MERIDIAN_WEB_ORIGIN")
	}
	cfg.Origin = strings.TrimRight(cfg.Origin, "/")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	b := sitemap.NewBuilder(cfg.Origin)
	for _, p := range cfg.Paths {
		b.AddEntry(sitemap.Entry{Loc: p.Loc, ChangeFreq: p.ChangeFreq, Priority: p.Priority})
	}
	b.AddSource(articleSource(contentAPI, contentDir, log))

	if err := b.WriteFile(ctx, cfg.Out); err != nil {
		log.Fatalw("build sitemap", "out", cfg.Out, "err", err)
	}
	log.Infow("sitemap written", "out", cfg.Out, "static_paths", len(cfg.Paths))

	if cfg.Robots != nil {
		if err := writeRobots(cfg); err != nil {
			log.Fatalw("write robots", "out", cfg.Robots.Out, "err", err)
		}
		log.Infow("robots written", "out", cfg.Robots.Out)
	}
}

// articleSource lists published articles from the content API when one is
// configured, otherwise from the local markdown tree. Errors propagate so
// the build aborts instead of emitting a sitemap missing its articles.
func articleSource(apiBase, dir string, log *zap.SugaredLogger) sitemap.Source {
	return sitemap.SourceFunc(func(ctx context.Context) ([]sitemap.Entry, error) {
		var (
			articles []content.Article
			err      error
		)
		client := content.NewClient(apiBase)
		if client.Configured() {
			log.Infow("listing articles", "source", "api", "base", apiBase)
			articles, err = client.ListArticles(ctx, content.ListOptions{Lang: "en"})
		} else {
			log.Infow("listing articles", "source", "local", "dir", dir)
			articles, err = content.NewStore(dir).ListArticles(content.ListOptions{Lang: "en"})
		}
		if err != nil {
			return nil, err
		}
		entries := make([]sitemap.Entry, 0, len(articles))
		for _, a := range articles {
			entries = append(entries, sitemap.Entry{
				Loc:        "/articles/" + a.Slug,
				LastMod:    lastMod(a),
				ChangeFreq: "monthly",
			})
		}
		return entries, nil
	})
}

func lastMod(a content.Article) time.Time {
	if !a.UpdatedAt.IsZero() {
		return a.UpdatedAt
	}
	return a.PublishAt
}

func writeRobots(cfg Config) error {
	f := robots.File{
		Groups: []robots.Group{{
			Allow:      cfg.Robots.Allow,
			Disallow:   cfg.Robots.Disallow,
			CrawlDelay: cfg.Robots.CrawlDelay,
		}},
		Sitemaps: []string{seo.Canonical(cfg.Origin, "/sitemap.xml")},
	}
	body, err := f.Render()
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.Robots.Out, []byte(body), 0o644)
}

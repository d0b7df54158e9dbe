package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultContentDir = "content"

// Store reads articles and pages from a local markdown tree laid out as
// <dir>/<kind>/<lang>/<slug>.md, with document metadata in YAML front
// matter. Reads are cached in memory for a short TTL.
type Store struct {
	dir string

	mu    sync.RWMutex
	ttl   time.Duration
	cache map[string]cacheEntry
}

type cacheEntry struct {
	doc     any
	expires time.Time
}

// NewStore builds a store rooted at dir ("content" when empty).
func NewStore(dir string) *Store {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	return &Store{
		dir:   dir,
		ttl:   5 * time.Minute,
		cache: map[string]cacheEntry{},
	}
}

// SetCacheTTL overrides the cache duration (primarily for tests).
func (s *Store) SetCacheTTL(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.cache = map[string]cacheEntry{}
	s.mu.Unlock()
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Summary     string   `yaml:"summary"`
	Lang        string   `yaml:"lang"`
	Format      string   `yaml:"format"`
	Tags        []string `yaml:"tags"`
	HeroImage   string   `yaml:"hero_image"`
	ReadingTime int      `yaml:"reading_time"`
	Author      struct {
		Name       string `yaml:"name"`
		ProfileURL string `yaml:"profile_url"`
	} `yaml:"author"`
	PublishAt string `yaml:"publish_at"`
	UpdatedAt string `yaml:"updated_at"`
	Version   string `yaml:"version"`
	SEO       struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		OGImage     string `yaml:"og_image"`
	} `yaml:"seo"`
}

// GetPage reads a localized static page, walking the lang fallback chain.
func (s *Store) GetPage(kind, slug, lang string) (Page, error) {
	kind = strings.TrimSpace(strings.ToLower(kind))
	if kind == "" {
		kind = "pages"
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	key := strings.Join([]string{"page", kind, lang, slug}, "|")
	if doc, ok := s.cached(key); ok {
		return doc.(Page), nil
	}
	for _, candidate := range langChain(lang) {
		fm, body, modTime, err := s.readDoc(kind, slug, candidate)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return Page{}, err
		}
		page := Page{
			Kind:      kind,
			Slug:      slug,
			Lang:      firstNonEmpty(strings.TrimSpace(fm.Lang), candidate),
			Title:     firstNonEmpty(strings.TrimSpace(fm.Title), prettifySlug(slug)),
			Summary:   strings.TrimSpace(fm.Summary),
			Body:      body,
			Format:    firstNonEmpty(strings.TrimSpace(fm.Format), "markdown"),
			Version:   strings.TrimSpace(fm.Version),
			UpdatedAt: parseDate(fm.UpdatedAt),
			SEO: SEO{
				Title:       strings.TrimSpace(fm.SEO.Title),
				Description: strings.TrimSpace(fm.SEO.Description),
				OGImage:     strings.TrimSpace(fm.SEO.OGImage),
			},
		}
		if page.UpdatedAt.IsZero() {
			page.UpdatedAt = modTime
		}
		s.store(key, page)
		return page, nil
	}
	return Page{}, ErrNotFound
}

// GetArticle reads a localized article, walking the lang fallback chain.
func (s *Store) GetArticle(slug, lang string) (Article, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Article{}, ErrNotFound
	}
	key := strings.Join([]string{"article", lang, slug}, "|")
	if doc, ok := s.cached(key); ok {
		return cloneArticle(doc.(Article)), nil
	}
	for _, candidate := range langChain(lang) {
		a, err := s.readArticle(slug, candidate)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return Article{}, err
		}
		s.store(key, cloneArticle(a))
		return a, nil
	}
	return Article{}, ErrNotFound
}

// ListArticles reads every article for lang (falling back per slug when the
// requested locale is missing), newest first.
func (s *Store) ListArticles(opts ListOptions) ([]Article, error) {
	lang := normalizeLang(opts.Lang)
	slugs := map[string]struct{}{}
	for _, candidate := range langChain(lang) {
		dir := filepath.Join(s.dir, "articles", candidate)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("content: read article dir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			slugs[strings.TrimSuffix(e.Name(), ".md")] = struct{}{}
		}
	}
	articles := make([]Article, 0, len(slugs))
	for slug := range slugs {
		a, err := s.GetArticle(slug, lang)
		if err != nil {
			continue
		}
		articles = append(articles, a)
	}
	sortArticles(articles)
	return filterArticles(articles, opts), nil
}

func (s *Store) readArticle(slug, lang string) (Article, error) {
	fm, body, modTime, err := s.readDoc("articles", slug, lang)
	if err != nil {
		return Article{}, err
	}
	a := Article{
		Slug:               slug,
		Lang:               firstNonEmpty(strings.TrimSpace(fm.Lang), lang),
		Title:              firstNonEmpty(strings.TrimSpace(fm.Title), prettifySlug(slug)),
		Summary:            strings.TrimSpace(fm.Summary),
		Body:               body,
		Format:             firstNonEmpty(strings.TrimSpace(fm.Format), "markdown"),
		Tags:               fm.Tags,
		HeroImageURL:       strings.TrimSpace(fm.HeroImage),
		ReadingTimeMinutes: fm.ReadingTime,
		Author: Author{
			Name:       strings.TrimSpace(fm.Author.Name),
			ProfileURL: strings.TrimSpace(fm.Author.ProfileURL),
		},
		PublishAt: parseDate(fm.PublishAt),
		UpdatedAt: parseDate(fm.UpdatedAt),
		SEO: SEO{
			Title:       strings.TrimSpace(fm.SEO.Title),
			Description: strings.TrimSpace(fm.SEO.Description),
			OGImage:     strings.TrimSpace(fm.SEO.OGImage),
		},
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = modTime
	}
	return a, nil
}

func (s *Store) readDoc(kind, slug, lang string) (frontMatter, string, time.Time, error) {
	file := filepath.Join(s.dir, kind, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return frontMatter{}, "", time.Time{}, ErrNotFound
		}
		return frontMatter{}, "", time.Time{}, fmt.Errorf("content: read %s: %w", file, err)
	}
	var modTime time.Time
	if info, err := os.Stat(file); err == nil {
		modTime = info.ModTime()
	}
	fmRaw, body := splitFrontMatter(string(data))
	var fm frontMatter
	if strings.TrimSpace(fmRaw) != "" {
		if err := yaml.Unmarshal([]byte(fmRaw), &fm); err != nil {
			return frontMatter{}, "", time.Time{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}
	return fm, body, modTime, nil
}

func (s *Store) cached(key string) (any, bool) {
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.doc, true
}

func (s *Store) store(key string, doc any) {
	s.mu.Lock()
	s.cache[key] = cacheEntry{doc: doc, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\uFEFF")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func langChain(lang string) []string {
	lang = normalizeLang(lang)
	chain := []string{lang}
	if lang != "en" {
		chain = append(chain, "en")
	}
	return chain
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "en"
	}
	return lang
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsRune(slug, os.PathSeparator) {
		return ""
	}
	return slug
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

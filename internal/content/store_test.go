package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeDoc(t *testing.T, dir, kind, lang, slug, body string) {
	t.Helper()
	path := filepath.Join(dir, kind, lang)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(path, slug+".md"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

const sampleArticle = `---
title: Field Notes on Go
summary: Essays on building software.
tags: [go, engineering]
hero_image: /assets/hero/field-notes.png
reading_time: 7
author:
  name: R. Ostrowski
publish_at: 2026-02-11
seo:
  title: "Field Notes on Go | Meridian Press"
  description: Essays on building software, from the Meridian Press desk.
---
## First section

Body copy here.
`

func TestGetArticleParsesFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "articles", "en", "field-notes", sampleArticle)
	s := NewStore(dir)

	a, err := s.GetArticle("field-notes", "en")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Title != "Field Notes on Go" {
		t.Fatalf("title = %q", a.Title)
	}
	if len(a.Tags) != 2 || a.Tags[0] != "go" {
		t.Fatalf("tags = %v", a.Tags)
	}
	if a.Author.Name != "R. Ostrowski" {
		t.Fatalf("author = %+v", a.Author)
	}
	if !a.PublishAt.Equal(time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("publish_at = %v", a.PublishAt)
	}
	if a.SEO.Title != "Field Notes on Go | Meridian Press" {
		t.Fatalf("seo title = %q", a.SEO.Title)
	}
	if !strings.Contains(a.Body, "## First section") {
		t.Fatalf("body = %q", a.Body)
	}
	if a.UpdatedAt.IsZero() {
		t.Fatalf("expected file mod time as updated_at fallback")
	}
}

func TestGetArticleLangFallback(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "articles", "en", "field-notes", sampleArticle)
	s := NewStore(dir)

	a, err := s.GetArticle("field-notes", "ja")
	if err != nil {
		t.Fatalf("get with fallback: %v", err)
	}
	if a.Lang != "en" {
		t.Fatalf("lang = %q, want en fallback", a.Lang)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.GetArticle("missing", "en"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetArticle("../escape", "en"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for traversal slug, got %v", err)
	}
}

func TestListArticlesSortsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "articles", "en", "older", "---\ntitle: Older\npublish_at: 2026-01-01\n---\nold\n")
	writeDoc(t, dir, "articles", "en", "newer", "---\ntitle: Newer\npublish_at: 2026-03-01\n---\nnew\n")
	s := NewStore(dir)

	got, err := s.ListArticles(ListOptions{Lang: "en"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(got))
	}
	if got[0].Slug != "newer" || got[1].Slug != "older" {
		t.Fatalf("order = %s, %s", got[0].Slug, got[1].Slug)
	}
}

func TestListArticlesFilters(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "articles", "en", "a", "---\ntitle: A\ntags: [go]\n---\nx\n")
	writeDoc(t, dir, "articles", "en", "b", "---\ntitle: B\ntags: [design]\n---\nx\n")
	s := NewStore(dir)

	got, err := s.ListArticles(ListOptions{Lang: "en", Tag: "go"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "a" {
		t.Fatalf("filtered = %+v", got)
	}
}

func TestGetPageTitleFallsBackToSlug(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "pages", "en", "about-the-press", "No front matter, just body.\n")
	s := NewStore(dir)

	p, err := s.GetPage("pages", "about-the-press", "en")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if p.Title != "About The Press" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.Format != "markdown" {
		t.Fatalf("format = %q", p.Format)
	}
}

func TestStoreCachesWithinTTL(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "articles", "en", "cached", "---\ntitle: First\n---\nx\n")
	s := NewStore(dir)
	s.SetCacheTTL(time.Hour)

	if _, err := s.GetArticle("cached", "en"); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	writeDoc(t, dir, "articles", "en", "cached", "---\ntitle: Second\n---\nx\n")
	a, err := s.GetArticle("cached", "en")
	if err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if a.Title != "First" {
		t.Fatalf("expected cached title First, got %q", a.Title)
	}
}

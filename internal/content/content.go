// Package content sources the site's articles and static pages, either from
// the remote content API or from local markdown files with YAML front
// matter.
package content

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a content resource cannot be located.
var ErrNotFound = errors.New("content: not found")

// SEO holds optional per-document metadata overrides.
type SEO struct {
	Title       string
	Description string
	OGImage     string
}

// Author captures article author metadata.
type Author struct {
	Name       string
	ProfileURL string
}

// Article is a localized editorial article.
type Article struct {
	Slug               string
	Lang               string
	Title              string
	Summary            string
	Body               string
	Format             string // "markdown" (default) or "html"
	Tags               []string
	HeroImageURL       string
	ReadingTimeMinutes int
	Author             Author
	PublishAt          time.Time
	UpdatedAt          time.Time
	SEO                SEO
}

// Page is a localized static page (about, legal, and similar).
type Page struct {
	Kind      string
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      string
	Format    string
	Version   string
	UpdatedAt time.Time
	SEO       SEO
}

// ListOptions controls article listing.
type ListOptions struct {
	Lang   string
	Tag    string
	Search string
	Limit  int
}

func cloneArticle(a Article) Article {
	clone := a
	if a.Tags != nil {
		clone.Tags = append([]string(nil), a.Tags...)
	}
	return clone
}

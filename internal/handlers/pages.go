// Package handlers holds the shared view models passed to the layout
// templates.
package handlers

import (
	"html/template"

	"meridianpress.org/meridian-web/internal/nav"
	"meridianpress.org/meridian-web/internal/seo"
)

// PageData is the generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// Optional per-page view model payloads
	Home     any
	Articles any
	Article  any
	Content  any
}

// ArticleView is the rendered article payload.
type ArticleView struct {
	Slug         string
	Title        string
	Summary      string
	Body         template.HTML
	Tags         []string
	HeroImageURL string
	AuthorName   string
	ReadingTime  string
	PublishedOn  string
	UpdatedOn    string
}

// ArticleListItem is one row of the articles index.
type ArticleListItem struct {
	Slug        string
	Title       string
	Summary     string
	Tags        []string
	PublishedOn string
}

// ArticleIndexData is the articles index payload. A struct rather than a
// bare slice so the layout dispatch stays truthy when the list is empty.
type ArticleIndexData struct {
	Items []ArticleListItem
}

// ContentView is the rendered static page payload.
type ContentView struct {
	Slug    string
	Title   string
	Summary string
	Body    template.HTML
	Version string
}

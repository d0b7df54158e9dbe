package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"meridianpress.org/meridian-web/internal/content"
	"meridianpress.org/meridian-web/internal/format"
	"meridianpress.org/meridian-web/internal/handlers"
	mw "meridianpress.org/meridian-web/internal/middleware"
	"meridianpress.org/meridian-web/internal/seo"
)

// ArticlesHandler renders the article index, optionally filtered by tag or
// search query.
func ArticlesHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	opts := content.ListOptions{
		Lang:   lang,
		Tag:    r.URL.Query().Get("tag"),
		Search: r.URL.Query().Get("q"),
	}
	articles := library.ListArticles(r.Context(), opts)

	items := make([]handlers.ArticleListItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, handlers.ArticleListItem{
			Slug:        a.Slug,
			Title:       a.Title,
			Summary:     a.Summary,
			Tags:        a.Tags,
			PublishedOn: format.Date(a.PublishAt, lang),
		})
	}

	data := basePageData(r)
	data.SEO = metaRegistry.ResolveFor("/articles", nil, data.SEO)
	data.SEO.Alternates = i18nBundle.Alternates(siteOrigin, "/articles")
	data.SEO.Attach(breadcrumbJSONLD(data.Breadcrumbs, lang))
	// Filtered views are reachable but point search engines at the
	// unfiltered index.
	if opts.Tag != "" || opts.Search != "" {
		data.SEO.Robots = "noindex,follow"
	}
	data.Title = data.SEO.Title
	data.Articles = handlers.ArticleIndexData{Items: items}
	render(w, r, data)
}

// ArticleHandler renders a single article page with Article and
// BreadcrumbList structured data.
func ArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	lang := mw.Lang(r)

	a, err := library.GetArticle(r.Context(), slug, lang)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "article unavailable", http.StatusInternalServerError)
		return
	}

	body, err := content.RenderBody(a.Body, a.Format)
	if err != nil {
		http.Error(w, "article unavailable", http.StatusInternalServerError)
		return
	}

	path := "/articles/" + a.Slug
	data := basePageData(r)
	data.SEO = metaRegistry.ResolveFor("/articles/{slug}", a, data.SEO)
	data.SEO.Alternates = i18nBundle.Alternates(siteOrigin, path)

	crumbs := data.Breadcrumbs
	// Replace the prettified slug crumb with the article title.
	if n := len(crumbs); n > 0 && crumbs[n-1].Active {
		crumbs[n-1].Label = a.Title
		crumbs[n-1].LabelKey = ""
	}
	data.SEO.Attach(
		seo.Article(seo.ArticleInfo{
			Headline:      a.Title,
			Description:   a.Summary,
			URL:           seo.Canonical(siteOrigin, path),
			Image:         a.HeroImageURL,
			AuthorName:    a.Author.Name,
			PublisherName: siteName,
			DatePublished: format.ISODate(a.PublishAt),
			DateModified:  format.ISODate(a.UpdatedAt),
		}),
		breadcrumbJSONLD(crumbs, lang),
	)
	data.Title = data.SEO.Title
	data.Article = handlers.ArticleView{
		Slug:         a.Slug,
		Title:        a.Title,
		Summary:      a.Summary,
		Body:         body,
		Tags:         a.Tags,
		HeroImageURL: a.HeroImageURL,
		AuthorName:   a.Author.Name,
		ReadingTime:  format.ReadingTime(a.ReadingTimeMinutes, lang),
		PublishedOn:  format.Date(a.PublishAt, lang),
		UpdatedOn:    format.Date(a.UpdatedAt, lang),
	}
	render(w, r, data)
}

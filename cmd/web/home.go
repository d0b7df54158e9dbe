package main

import (
	"net/http"

	"meridianpress.org/meridian-web/internal/content"
	"meridianpress.org/meridian-web/internal/format"
	"meridianpress.org/meridian-web/internal/handlers"
	mw "meridianpress.org/meridian-web/internal/middleware"
	"meridianpress.org/meridian-web/internal/seo"
)

// HomeHandler renders the landing page with the three most recent articles.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	latest := library.ListArticles(r.Context(), content.ListOptions{Lang: lang, Limit: 3})

	items := make([]handlers.ArticleListItem, 0, len(latest))
	for _, a := range latest {
		items = append(items, handlers.ArticleListItem{
			Slug:        a.Slug,
			Title:       a.Title,
			Summary:     a.Summary,
			Tags:        a.Tags,
			PublishedOn: format.Date(a.PublishAt, lang),
		})
	}

	data := basePageData(r)
	data.SEO = metaRegistry.ResolveFor("/", nil, data.SEO)
	data.SEO.Alternates = i18nBundle.Alternates(siteOrigin, "/")
	data.SEO.Attach(
		seo.Organization(siteName, siteOrigin, seo.Canonical(siteOrigin, "/assets/logo.png")),
		seo.WebSite(siteName, siteOrigin, seo.Canonical(siteOrigin, "/articles?q=")),
	)
	data.Title = data.SEO.Title
	data.Home = handlers.BuildHomeData(items)
	render(w, r, data)
}

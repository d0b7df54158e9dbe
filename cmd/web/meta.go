package main

import (
	"net/http"

	"meridianpress.org/meridian-web/internal/content"
	"meridianpress.org/meridian-web/internal/handlers"
	mw "meridianpress.org/meridian-web/internal/middleware"
	"meridianpress.org/meridian-web/internal/nav"
	"meridianpress.org/meridian-web/internal/routemeta"
	"meridianpress.org/meridian-web/internal/seo"
)

const siteName = "Meridian Press"

// siteDefaultMeta is the parent metadata every page starts from. Routes
// that register nothing in the metadata registry inherit it unchanged.
func siteDefaultMeta() seo.Meta {
	return seo.Meta{
		Title:       siteName,
		Description: "Independent writing on software, design, and the web.",
		Robots:      "index,follow",
		OG: seo.OpenGraph{
			Title:    siteName,
			Type:     "website",
			SiteName: siteName,
		},
		Twitter: seo.Twitter{Card: "summary", Site: "@meridianpress"},
	}
}

// newMetaRegistry declares per-route metadata: static values for fixed
// pages, computed values for routes backed by loaded content.
func newMetaRegistry(origin string) *routemeta.Registry {
	g := routemeta.NewRegistry(origin)

	g.Register("/", routemeta.Static(seo.Meta{
		Title:       siteName + " — Independent writing on software",
		Description: "Essays, field notes, and long-form articles from the Meridian Press editorial desk.",
		Canonical:   "/",
		Robots:      "index,follow",
		OG: seo.OpenGraph{
			Title:       siteName,
			Description: "Essays, field notes, and long-form articles.",
			Type:        "website",
			URL:         "/",
			SiteName:    siteName,
		},
		Twitter: seo.Twitter{Card: "summary_large_image", Site: "@meridianpress"},
	}))

	g.Register("/articles", routemeta.Static(seo.Meta{
		Title:       "Articles | " + siteName,
		Description: "Every article published by Meridian Press, newest first.",
		Canonical:   "/articles",
		Robots:      "index,follow",
		OG: seo.OpenGraph{
			Title:    "Articles | " + siteName,
			Type:     "website",
			URL:      "/articles",
			SiteName: siteName,
		},
		Twitter: seo.Twitter{Card: "summary", Site: "@meridianpress"},
	}))

	g.Register("/articles/{slug}", routemeta.Computed(articleMeta))
	g.Register("/about", routemeta.Computed(pageMeta))
	g.Register("/legal/{slug}", routemeta.Computed(pageMeta))

	return g
}

// articleMeta derives page metadata from a loaded article, honoring
// per-article SEO overrides from the content source.
func articleMeta(data any) seo.Meta {
	a := data.(content.Article)
	title := a.SEO.Title
	if title == "" {
		title = a.Title + " | " + siteName
	}
	desc := a.SEO.Description
	if desc == "" {
		desc = a.Summary
	}
	image := a.SEO.OGImage
	if image == "" {
		image = a.HeroImageURL
	}
	path := "/articles/" + a.Slug
	return seo.Meta{
		Title:       title,
		Description: desc,
		Canonical:   path,
		Robots:      "index,follow",
		OG: seo.OpenGraph{
			Title:       title,
			Description: desc,
			Image:       image,
			Type:        "article",
			URL:         path,
			SiteName:    siteName,
		},
		Twitter: seo.Twitter{Card: "summary_large_image", Site: "@meridianpress", Image: image},
	}
}

// pageMeta derives metadata from a loaded static page.
func pageMeta(data any) seo.Meta {
	p := data.(content.Page)
	title := p.SEO.Title
	if title == "" {
		title = p.Title + " | " + siteName
	}
	desc := p.SEO.Description
	if desc == "" {
		desc = p.Summary
	}
	path := "/" + p.Slug
	if p.Kind == "legal" {
		path = "/legal/" + p.Slug
	}
	return seo.Meta{
		Title:       title,
		Description: desc,
		Canonical:   path,
		Robots:      "index,follow",
		OG: seo.OpenGraph{
			Title:    title,
			Image:    p.SEO.OGImage,
			Type:     "website",
			URL:      path,
			SiteName: siteName,
		},
		Twitter: seo.Twitter{Card: "summary", Site: "@meridianpress"},
	}
}

// basePageData assembles the layout fields shared by every page, seeded
// with the site default metadata as the inheritable parent.
func basePageData(r *http.Request) handlers.PageData {
	lang := mw.Lang(r)
	path := r.URL.Path
	return handlers.PageData{
		Lang:        lang,
		Path:        path,
		Nav:         nav.Build(path),
		Breadcrumbs: nav.Breadcrumbs(path),
		Analytics:   analytics,
		SEO:         siteDefaultMeta(),
	}
}

// breadcrumbJSONLD converts the rendered breadcrumb trail into a
// BreadcrumbList document with absolute item URLs.
func breadcrumbJSONLD(crumbs []nav.Crumb, lang string) seo.Object {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		label := c.Label
		if c.LabelKey != "" {
			label = i18nBundle.T(lang, c.LabelKey)
		}
		item := seo.BreadcrumbItem{Name: label}
		if !c.Active {
			item.Item = seo.Canonical(siteOrigin, c.Href)
		}
		items = append(items, item)
	}
	return seo.BreadcrumbList(items)
}

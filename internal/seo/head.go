package seo

import (
	"html"
	"html/template"
	"strings"
)

// Head renders m as head-level tags, one per line. Every unset field is
// omitted entirely rather than emitted empty. The result is safe to inject
// into a layout template.
func Head(m Meta) template.HTML {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	name := func(n, content string) {
		if content == "" {
			return
		}
		line(`<meta name="` + html.EscapeString(n) + `" content="` + html.EscapeString(content) + `">`)
	}
	property := func(p, content string) {
		if content == "" {
			return
		}
		line(`<meta property="` + html.EscapeString(p) + `" content="` + html.EscapeString(content) + `">`)
	}

	if m.Title != "" {
		line("<title>" + html.EscapeString(m.Title) + "</title>")
	}
	name("description", m.Description)
	name("robots", m.Robots)
	if m.Canonical != "" {
		line(`<link rel="canonical" href="` + html.EscapeString(m.Canonical) + `">`)
	}

	property("og:title", m.OG.Title)
	property("og:description", m.OG.Description)
	property("og:type", m.OG.Type)
	property("og:url", m.OG.URL)
	property("og:image", m.OG.Image)
	property("og:site_name", m.OG.SiteName)

	name("twitter:card", m.Twitter.Card)
	name("twitter:site", m.Twitter.Site)
	name("twitter:image", m.Twitter.Image)

	for _, alt := range m.Alternates {
		if alt.Href == "" || alt.Hreflang == "" {
			continue
		}
		line(`<link rel="alternate" hreflang="` + html.EscapeString(alt.Hreflang) + `" href="` + html.EscapeString(alt.Href) + `">`)
	}

	for _, doc := range m.JSONLD {
		if doc == "" {
			continue
		}
		line(`<script type="application/ld+json">` + escapeJSONLD(doc) + `</script>`)
	}
	return template.HTML(b.String())
}

// escapeJSONLD keeps the payload valid JSON while preventing </script>
// breakout. encoding/json already escapes these for its own output; this
// covers documents serialized elsewhere.
func escapeJSONLD(s string) string {
	s = strings.ReplaceAll(s, "&", "\\u0026")
	s = strings.ReplaceAll(s, "<", "\\u003c")
	s = strings.ReplaceAll(s, ">", "\\u003e")
	return s
}

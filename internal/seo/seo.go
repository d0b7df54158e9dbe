// Package seo holds the page metadata model plus the head-tag and
// structured-data emitters shared by every rendered page.
package seo

// OpenGraph carries og:* preview fields.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

// Twitter carries twitter:* card fields.
type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is one hreflang link target.
type Alternate struct {
	Href     string
	Hreflang string
}

// Meta is the metadata for a single rendered page. A fresh value is built
// per navigation; unset fields emit no tag.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []string
}

// IsZero reports whether no field was set.
func (m Meta) IsZero() bool {
	return m.Title == "" && m.Description == "" && m.Canonical == "" &&
		m.Robots == "" && m.OG == (OpenGraph{}) && m.Twitter == (Twitter{}) &&
		len(m.Alternates) == 0 && len(m.JSONLD) == 0
}

// Attach serializes the given structured-data documents and appends them to
// the page. Documents that fail to marshal are dropped.
func (m *Meta) Attach(docs ...Object) {
	for _, d := range docs {
		if s := JSON(d); s != "" {
			m.JSONLD = append(m.JSONLD, s)
		}
	}
}

package seo

import "encoding/json"

const schemaContext = "https://schema.org"

// Object is a schema.org structured-data document. Field names follow the
// external vocabulary; callers are responsible for supplying whatever fields
// the consuming indexer requires.
type Object map[string]any

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// NewObject starts a document of the given @type.
func NewObject(typ string) Object {
	return Object{"@context": schemaContext, "@type": typ}
}

// Set assigns field when value is a non-empty string (or any non-nil,
// non-string value) and returns the object for chaining.
func (o Object) Set(field string, value any) Object {
	switch v := value.(type) {
	case nil:
		return o
	case string:
		if v == "" {
			return o
		}
	}
	o[field] = value
	return o
}

// Organization builds a minimal Organization document.
func Organization(name, url, logoURL string) Object {
	return NewObject("Organization").
		Set("name", name).
		Set("url", url).
		Set("logo", logoURL)
}

// WebSite builds a WebSite document with an optional SearchAction. The
// search target has "{search_term_string}" appended per the vocabulary.
func WebSite(name, url, searchActionURL string) Object {
	o := NewObject("WebSite").
		Set("name", name).
		Set("url", url)
	if searchActionURL != "" {
		o["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return o
}

// BreadcrumbItem is one trail entry: a name plus its absolute URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds a schema.org BreadcrumbList. Positions are 1-based
// in input order.
func BreadcrumbList(items []BreadcrumbItem) Object {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		entry := map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
		}
		if it.Item != "" {
			entry["item"] = it.Item
		}
		el = append(el, entry)
	}
	return NewObject("BreadcrumbList").Set("itemListElement", el)
}

// ArticleInfo carries the fields surfaced in an Article document.
type ArticleInfo struct {
	Headline      string
	Description   string
	URL           string
	Image         string
	AuthorName    string
	PublisherName string
	DatePublished string
	DateModified  string
}

// Article builds a minimal Article document.
func Article(in ArticleInfo) Object {
	o := NewObject("Article").
		Set("headline", in.Headline).
		Set("description", in.Description).
		Set("url", in.URL).
		Set("image", in.Image).
		Set("datePublished", in.DatePublished).
		Set("dateModified", in.DateModified)
	if in.AuthorName != "" {
		o["author"] = map[string]any{"@type": "Person", "name": in.AuthorName}
	}
	if in.PublisherName != "" {
		o["publisher"] = map[string]any{"@type": "Organization", "name": in.PublisherName}
	}
	return o
}

// ProductInfo carries the fields surfaced in a Product document.
type ProductInfo struct {
	Name        string
	Description string
	URL         string
	Image       string
	SKU         string
	Brand       string
}

// Product builds a minimal Product document.
func Product(in ProductInfo) Object {
	o := NewObject("Product").
		Set("name", in.Name).
		Set("description", in.Description).
		Set("url", in.URL).
		Set("image", in.Image).
		Set("sku", in.SKU)
	if in.Brand != "" {
		o["brand"] = map[string]any{"@type": "Brand", "name": in.Brand}
	}
	return o
}

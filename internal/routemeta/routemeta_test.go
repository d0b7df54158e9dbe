package routemeta

import (
	"reflect"
	"testing"

	"meridianpress.org/meridian-web/internal/seo"
)

func TestStaticResolvesToProvidedValue(t *testing.T) {
	want := seo.Meta{Title: "About", Description: "Who we are"}
	got, ok := Static(want).Resolve(nil)
	if !ok {
		t.Fatalf("expected resolved metadata")
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestComputedMatchesDirectCall(t *testing.T) {
	type article struct{ Title, Summary string }
	fn := func(data any) seo.Meta {
		a := data.(article)
		return seo.Meta{Title: a.Title + " | Meridian Press", Description: a.Summary}
	}
	data := article{Title: "Field Notes", Summary: "Essays on building software."}

	got, ok := Computed(fn).Resolve(data)
	if !ok {
		t.Fatalf("expected resolved metadata")
	}
	if want := fn(data); !reflect.DeepEqual(got, want) {
		t.Fatalf("Resolve(%+v) = %+v, want fn result %+v", data, got, want)
	}
}

func TestZeroConfigInheritsParent(t *testing.T) {
	g := NewRegistry("https://meridianpress.org")
	parent := seo.Meta{Title: "Meridian Press", Description: "An independent publisher"}

	// pattern never registered
	if got := g.ResolveFor("/unregistered", nil, parent); !reflect.DeepEqual(got, parent) {
		t.Fatalf("unregistered pattern: got %+v, want parent %+v", got, parent)
	}
	// registered but zero config
	g.Register("/empty", Config{})
	if got := g.ResolveFor("/empty", nil, parent); !reflect.DeepEqual(got, parent) {
		t.Fatalf("zero config: got %+v, want parent %+v", got, parent)
	}
}

func TestResolveForOverwritesParentEntirely(t *testing.T) {
	g := NewRegistry("https://meridianpress.org")
	g.Register("/about", Static(seo.Meta{Title: "About"}))
	parent := seo.Meta{Title: "Parent", Description: "parent description", Robots: "index,follow"}

	got := g.ResolveFor("/about", nil, parent)
	if got.Title != "About" {
		t.Fatalf("title = %q", got.Title)
	}
	// no merge: parent fields do not leak through
	if got.Description != "" || got.Robots != "" {
		t.Fatalf("parent fields leaked into child metadata: %+v", got)
	}
}

func TestResolveForFinalizesCanonicals(t *testing.T) {
	g := NewRegistry("https://meridianpress.org/")
	g.Register("/articles/{slug}", Computed(func(data any) seo.Meta {
		slug := data.(string)
		return seo.Meta{
			Canonical: "/articles/" + slug,
			OG:        seo.OpenGraph{URL: "/articles/" + slug},
		}
	}))

	got := g.ResolveFor("/articles/{slug}", "field-notes", seo.Meta{})
	want := "https://meridianpress.org/articles/field-notes"
	if got.Canonical != want {
		t.Fatalf("canonical = %q, want %q", got.Canonical, want)
	}
	if got.OG.URL != want {
		t.Fatalf("og:url = %q, want %q", got.OG.URL, want)
	}
}

func TestAbsoluteCanonicalPassesThrough(t *testing.T) {
	g := NewRegistry("https://meridianpress.org")
	g.Register("/mirror", Static(seo.Meta{Canonical: "https://mirror.example/page"}))
	got := g.ResolveFor("/mirror", nil, seo.Meta{})
	if got.Canonical != "https://mirror.example/page" {
		t.Fatalf("canonical = %q", got.Canonical)
	}
}

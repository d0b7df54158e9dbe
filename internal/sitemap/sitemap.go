// Package sitemap serializes URL records into the standard XML sitemap
// format. One builder produces one file; splitting input across files to
// respect the protocol ceilings is the caller's job.
package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"meridianpress.org/meridian-web/internal/seo"
)

const (
	// Protocol ceilings per file. Marshal refuses output that would
	// exceed either; it never chunks.
	MaxEntries = 50000
	MaxBytes   = 50 * 1024 * 1024

	xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"
)

// Entry is one url record. Loc is required; the rest are optional.
type Entry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   string
}

// Source supplies dynamically discovered entries, typically fetched from
// the content API at build time.
type Source interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Entry, error)

func (f SourceFunc) Entries(ctx context.Context) ([]Entry, error) { return f(ctx) }

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []urlXML `xml:"url"`
}

type urlXML struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Builder collects static paths and dynamic sources for one sitemap file.
type Builder struct {
	origin  string
	static  []Entry
	sources []Source
}

// NewBuilder starts a builder whose relative paths resolve against origin.
func NewBuilder(origin string) *Builder {
	return &Builder{origin: origin}
}

// AddPath appends a static path, resolved against the origin.
func (b *Builder) AddPath(path string) {
	b.AddEntry(Entry{Loc: path})
}

// AddEntry appends a static entry. A relative Loc is resolved against the
// origin.
func (b *Builder) AddEntry(e Entry) {
	e.Loc = seo.Canonical(b.origin, e.Loc)
	b.static = append(b.static, e)
}

// AddSource registers a dynamic entry source, fetched at Marshal time.
func (b *Builder) AddSource(s Source) {
	b.sources = append(b.sources, s)
}

// Marshal fetches every dynamic source and serializes the full document.
// Static entries come first, then each source's entries in registration
// order. Any fetch error aborts with nothing produced.
func (b *Builder) Marshal(ctx context.Context) ([]byte, error) {
	entries := append([]Entry(nil), b.static...)
	for _, s := range b.sources {
		dyn, err := s.Entries(ctx)
		if err != nil {
			return nil, fmt.Errorf("sitemap: fetch dynamic entries: %w", err)
		}
		for _, e := range dyn {
			e.Loc = seo.Canonical(b.origin, e.Loc)
			entries = append(entries, e)
		}
	}
	if len(entries) > MaxEntries {
		return nil, fmt.Errorf("sitemap: %d entries exceeds the %d per-file ceiling; split the input", len(entries), MaxEntries)
	}

	set := urlSet{Xmlns: xmlns, URLs: make([]urlXML, 0, len(entries))}
	for _, e := range entries {
		u := urlXML{Loc: e.Loc, ChangeFreq: e.ChangeFreq, Priority: e.Priority}
		if !e.LastMod.IsZero() {
			u.LastMod = e.LastMod.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap: marshal: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	if buf.Len() > MaxBytes {
		return nil, fmt.Errorf("sitemap: %d bytes exceeds the %d byte per-file ceiling; split the input", buf.Len(), MaxBytes)
	}
	return buf.Bytes(), nil
}

// WriteFile emits the sitemap atomically: the whole document is serialized
// in memory first, written to a temp file, and renamed into place. A failed
// source fetch therefore never leaves a partial file behind.
func (b *Builder) WriteFile(ctx context.Context, path string) error {
	data, err := b.Marshal(ctx)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sitemap-*.xml")
	if err != nil {
		return fmt.Errorf("sitemap: temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sitemap: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("sitemap: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("sitemap: rename into place: %w", err)
	}
	return nil
}

package sitemap

import (
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type parsedSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []struct {
		Loc        string `xml:"loc"`
		LastMod    string `xml:"lastmod"`
		ChangeFreq string `xml:"changefreq"`
		Priority   string `xml:"priority"`
	} `xml:"url"`
}

func TestMarshalCountsStaticPlusDynamic(t *testing.T) {
	b := NewBuilder("https://meridianpress.org")
	b.AddPath("/")
	b.AddPath("/articles")
	b.AddEntry(Entry{Loc: "/about", ChangeFreq: "monthly", Priority: "0.5"})
	b.AddSource(SourceFunc(func(ctx context.Context) ([]Entry, error) {
		return []Entry{
			{Loc: "/articles/field-notes", LastMod: time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC)},
			{Loc: "/articles/sitemap-pipeline"},
		}, nil
	}))

	data, err := b.Marshal(context.Background())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var set parsedSet
	if err := xml.Unmarshal(data, &set); err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if len(set.URLs) != 5 {
		t.Fatalf("expected 5 url entries, got %d", len(set.URLs))
	}
	if set.Xmlns != "http://www.sitemaps.org/schemas/sitemap/0.9" {
		t.Fatalf("xmlns = %q", set.Xmlns)
	}
	if set.URLs[0].Loc != "https://meridianpress.org/" {
		t.Fatalf("first loc = %q", set.URLs[0].Loc)
	}
	if set.URLs[2].ChangeFreq != "monthly" || set.URLs[2].Priority != "0.5" {
		t.Fatalf("entry fields lost: %+v", set.URLs[2])
	}
	if set.URLs[3].LastMod != "2026-02-11" {
		t.Fatalf("lastmod = %q", set.URLs[3].LastMod)
	}
	if set.URLs[4].LastMod != "" {
		t.Fatalf("zero lastmod should be omitted, got %q", set.URLs[4].LastMod)
	}
}

func TestMarshalFailsWhenSourceFails(t *testing.T) {
	wantErr := errors.New("content api unreachable")
	b := NewBuilder("https://meridianpress.org")
	b.AddPath("/")
	b.AddSource(SourceFunc(func(ctx context.Context) ([]Entry, error) {
		return nil, wantErr
	}))

	if _, err := b.Marshal(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestWriteFileLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "sitemap.xml")

	b := NewBuilder("https://meridianpress.org")
	b.AddPath("/")
	b.AddSource(SourceFunc(func(ctx context.Context) ([]Entry, error) {
		return nil, errors.New("boom")
	}))
	if err := b.WriteFile(context.Background(), out); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no output file, stat err = %v", err)
	}
	leftovers, _ := os.ReadDir(dir)
	if len(leftovers) != 0 {
		t.Fatalf("expected empty dir, found %v", leftovers)
	}
}

func TestWriteFileEmitsWellFormedXML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sitemap.xml")
	b := NewBuilder("https://meridianpress.org")
	b.AddPath("/")
	if err := b.WriteFile(context.Background(), out); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(data), xml.Header) {
		t.Fatalf("missing XML declaration: %q", data[:40])
	}
	var set parsedSet
	if err := xml.Unmarshal(data, &set); err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if len(set.URLs) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(set.URLs))
	}
}

func TestMarshalRefusesEntryCeiling(t *testing.T) {
	b := NewBuilder("https://meridianpress.org")
	b.AddSource(SourceFunc(func(ctx context.Context) ([]Entry, error) {
		entries := make([]Entry, MaxEntries+1)
		for i := range entries {
			entries[i] = Entry{Loc: "/x"}
		}
		return entries, nil
	}))
	if _, err := b.Marshal(context.Background()); err == nil {
		t.Fatalf("expected ceiling error")
	}
}

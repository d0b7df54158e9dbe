// Package audit inspects rendered pages for on-page SEO problems: missing
// or out-of-band head tags, heading structure, preview metadata, and image
// alt coverage.
package audit

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Severity grades a finding.
type Severity string

const (
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Finding is one problem detected on a page.
type Finding struct {
	Check    string
	Severity Severity
	Detail   string
}

// Report summarizes one audited page.
type Report struct {
	URL               string
	Title             string
	Description       string
	Canonical         string
	Robots            string
	H1Count           int
	JSONLDCount       int
	ImagesMissingAlt  int
	InternalLinks     int
	ExternalLinks     int
	Findings          []Finding
}

// Failed reports whether any finding is an error.
func (r Report) Failed() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r *Report) add(check string, sev Severity, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Check:    check,
		Severity: sev,
		Detail:   fmt.Sprintf(format, args...),
	})
}

// Title and description length bands follow common SERP display limits.
const (
	titleMin = 15
	titleMax = 60
	descMin  = 50
	descMax  = 160
)

// Analyze parses the page HTML and reports on-page findings. pageURL is
// used to classify links as internal or external.
func Analyze(pageURL string, r io.Reader) (Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Report{}, fmt.Errorf("audit: parse html: %w", err)
	}
	rep := Report{URL: pageURL}

	rep.Title = strings.TrimSpace(doc.Find("head title").First().Text())
	switch n := len([]rune(rep.Title)); {
	case n == 0:
		rep.add("title", SeverityError, "page has no <title>")
	case n < titleMin:
		rep.add("title", SeverityWarn, "title is %d chars; aim for %d-%d", n, titleMin, titleMax)
	case n > titleMax:
		rep.add("title", SeverityWarn, "title is %d chars; may be truncated past %d", n, titleMax)
	}

	rep.Description, _ = doc.Find(`head meta[name="description"]`).First().Attr("content")
	rep.Description = strings.TrimSpace(rep.Description)
	switch n := len([]rune(rep.Description)); {
	case n == 0:
		rep.add("description", SeverityError, "page has no meta description")
	case n < descMin:
		rep.add("description", SeverityWarn, "description is %d chars; aim for %d-%d", n, descMin, descMax)
	case n > descMax:
		rep.add("description", SeverityWarn, "description is %d chars; may be truncated past %d", n, descMax)
	}

	rep.Canonical, _ = doc.Find(`head link[rel="canonical"]`).First().Attr("href")
	if rep.Canonical == "" {
		rep.add("canonical", SeverityWarn, "page has no canonical link")
	}

	rep.Robots, _ = doc.Find(`head meta[name="robots"]`).First().Attr("content")
	if strings.Contains(strings.ToLower(rep.Robots), "noindex") {
		rep.add("robots", SeverityWarn, "page is marked noindex (%q)", rep.Robots)
	}

	rep.H1Count = doc.Find("h1").Length()
	if rep.H1Count != 1 {
		rep.add("headings", SeverityWarn, "expected exactly one h1, found %d", rep.H1Count)
	}

	for _, prop := range []string{"og:title", "og:description", "og:image"} {
		if v, _ := doc.Find(`head meta[property="` + prop + `"]`).Attr("content"); strings.TrimSpace(v) == "" {
			rep.add("open-graph", SeverityWarn, "missing %s", prop)
		}
	}

	rep.JSONLDCount = doc.Find(`script[type="application/ld+json"]`).Length()
	if rep.JSONLDCount == 0 {
		rep.add("structured-data", SeverityWarn, "no JSON-LD documents found")
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); !ok || strings.TrimSpace(alt) == "" {
			rep.ImagesMissingAlt++
		}
	})
	if rep.ImagesMissingAlt > 0 {
		rep.add("images", SeverityWarn, "%d image(s) missing alt text", rep.ImagesMissingAlt)
	}

	base, _ := url.Parse(pageURL)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "mailto:") {
			return
		}
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		if u.Host == "" || (base != nil && u.Host == base.Host) {
			rep.InternalLinks++
		} else {
			rep.ExternalLinks++
		}
	})

	return rep, nil
}

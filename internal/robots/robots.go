// Package robots renders robots.txt documents. Indexing control is out of
// scope on purpose: noindex belongs in the robots meta tag or the
// X-Robots-Tag header, never in robots.txt, and the renderer enforces that.
package robots

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoindex is returned when a rule tries to smuggle indexing control into
// robots.txt.
var ErrNoindex = errors.New("robots: noindex cannot be expressed in robots.txt")

// Group is a block of rules applying to one or more user agents. An empty
// UserAgents list means every agent ("*").
type Group struct {
	UserAgents []string
	Allow      []string
	Disallow   []string
	CrawlDelay int
}

// File models a robots.txt document.
type File struct {
	Groups   []Group
	Sitemaps []string
	Host     string
}

// Render serializes the document. It fails when any rule value mentions
// noindex; crawlers ignore the directive and the intent belongs elsewhere.
func (f File) Render() (string, error) {
	var b strings.Builder
	for i, g := range f.Groups {
		if i > 0 {
			b.WriteByte('\n')
		}
		agents := g.UserAgents
		if len(agents) == 0 {
			agents = []string{"*"}
		}
		for _, ua := range agents {
			fmt.Fprintf(&b, "User-agent: %s\n", ua)
		}
		for _, p := range g.Allow {
			if err := checkRule(p); err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "Allow: %s\n", p)
		}
		for _, p := range g.Disallow {
			if err := checkRule(p); err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "Disallow: %s\n", p)
		}
		if g.CrawlDelay > 0 {
			fmt.Fprintf(&b, "Crawl-delay: %d\n", g.CrawlDelay)
		}
	}
	if f.Host != "" {
		fmt.Fprintf(&b, "\nHost: %s\n", f.Host)
	}
	for _, s := range f.Sitemaps {
		fmt.Fprintf(&b, "\nSitemap: %s\n", s)
	}
	return b.String(), nil
}

func checkRule(rule string) error {
	if strings.Contains(strings.ToLower(rule), "noindex") {
		return fmt.Errorf("%w (rule %q)", ErrNoindex, rule)
	}
	return nil
}

// Package routemeta resolves page metadata per route. A route declares its
// metadata either as a fixed value or as a function of the data the route
// loaded; routes that declare nothing inherit whatever the parent layout
// provided, untouched.
package routemeta

import (
	"strings"

	"meridianpress.org/meridian-web/internal/seo"
)

// Config declares how a route produces its metadata. At most one side is
// set; the zero Config declares nothing.
type Config struct {
	static  *seo.Meta
	compute func(data any) seo.Meta
}

// Static declares a fixed metadata value.
func Static(m seo.Meta) Config {
	return Config{static: &m}
}

// Computed declares metadata derived from the route's loaded data. Resolving
// before the data exists is a caller error; nil is passed through as-is.
func Computed(fn func(data any) seo.Meta) Config {
	return Config{compute: fn}
}

// IsZero reports whether the route declared no metadata.
func (c Config) IsZero() bool {
	return c.static == nil && c.compute == nil
}

// Resolve produces the route's metadata. The second result is false when
// nothing was declared, in which case the parent's metadata stands.
func (c Config) Resolve(data any) (seo.Meta, bool) {
	switch {
	case c.static != nil:
		return *c.static, true
	case c.compute != nil:
		return c.compute(data), true
	}
	return seo.Meta{}, false
}

// Registry maps route patterns to metadata configs and finalizes relative
// canonicals against the single site origin.
type Registry struct {
	origin  string
	configs map[string]Config
}

// NewRegistry builds a registry for the given site origin.
func NewRegistry(origin string) *Registry {
	return &Registry{
		origin:  strings.TrimRight(strings.TrimSpace(origin), "/"),
		configs: map[string]Config{},
	}
}

// Origin returns the configured site origin.
func (g *Registry) Origin() string { return g.origin }

// Register associates a config with a route pattern. Registering the same
// pattern twice replaces the earlier config.
func (g *Registry) Register(pattern string, cfg Config) {
	g.configs[pattern] = cfg
}

// ResolveFor resolves the metadata for pattern against its loaded data.
// parent is returned unchanged when the pattern has no config; there is no
// merging of parent and child fields.
func (g *Registry) ResolveFor(pattern string, data any, parent seo.Meta) seo.Meta {
	cfg, ok := g.configs[pattern]
	if !ok {
		return parent
	}
	m, ok := cfg.Resolve(data)
	if !ok {
		return parent
	}
	return g.finalize(m)
}

func (g *Registry) finalize(m seo.Meta) seo.Meta {
	if g.origin == "" {
		return m
	}
	if m.Canonical != "" {
		m.Canonical = seo.Canonical(g.origin, m.Canonical)
	}
	if m.OG.URL != "" {
		m.OG.URL = seo.Canonical(g.origin, m.OG.URL)
	}
	return m
}

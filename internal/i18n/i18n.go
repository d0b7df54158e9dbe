// Package i18n loads locale dictionaries and resolves the preferred
// language from Accept-Language headers. Supported locales also drive the
// hreflang alternates emitted on every page.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"meridianpress.org/meridian-web/internal/seo"
)

// Bundle holds per-locale dictionaries plus the fallback locale.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported map[string]struct{}
}

// Load reads <lang>.json dictionaries from dir for every supported locale.
// A missing file is fatal only for the fallback locale.
func Load(dir string, fallback string, supported []string) (*Bundle, error) {
	b := &Bundle{
		dict:      map[string]map[string]string{},
		fallback:  fallback,
		supported: map[string]struct{}{},
	}
	if len(supported) == 0 {
		supported = []string{"en", "ja"}
	}
	for _, l := range supported {
		b.supported[l] = struct{}{}
		raw, err := os.ReadFile(filepath.Join(dir, l+".json"))
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}
	return b, nil
}

// Supported returns the supported locales in sorted order.
func (b *Bundle) Supported() []string {
	out := make([]string, 0, len(b.supported))
	for k := range b.supported {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// T returns the translation for key in lang, falling back to the default
// locale and finally the key itself.
func (b *Bundle) T(lang, key string) string {
	if lang != "" {
		if m, ok := b.dict[lang]; ok {
			if v, ok := m[key]; ok {
				return v
			}
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// Alternates builds hreflang link targets for path across every supported
// locale, plus an x-default pointing at the fallback. Locale selection uses
// the hl query parameter.
func (b *Bundle) Alternates(origin, path string) []seo.Alternate {
	base := seo.Canonical(origin, path)
	alts := make([]seo.Alternate, 0, len(b.supported)+1)
	for _, lang := range b.Supported() {
		alts = append(alts, seo.Alternate{
			Href:     base + "?hl=" + lang,
			Hreflang: lang,
		})
	}
	alts = append(alts, seo.Alternate{Href: base, Hreflang: "x-default"})
	return alts
}

// Resolve chooses the best supported language from an Accept-Language
// header, honoring q-values.
func (b *Bundle) Resolve(acceptLang string) string {
	type pref struct {
		base string
		q    float64
		pos  int
	}
	prefs := make([]pref, 0, 8)
	for i, raw := range strings.Split(acceptLang, ",") {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		q := 1.0
		if sc := strings.IndexByte(p, ';'); sc != -1 {
			params := strings.TrimSpace(p[sc+1:])
			p = strings.TrimSpace(p[:sc])
			if strings.HasPrefix(params, "q=") {
				if v, err := strconv.ParseFloat(strings.TrimPrefix(params, "q="), 64); err == nil {
					q = min(max(v, 0), 1)
				}
			}
		}
		base := p
		if dash := strings.IndexByte(p, '-'); dash != -1 {
			base = p[:dash]
		}
		prefs = append(prefs, pref{base: strings.ToLower(base), q: q, pos: i})
	}
	sort.SliceStable(prefs, func(i, j int) bool {
		if prefs[i].q == prefs[j].q {
			return prefs[i].pos < prefs[j].pos
		}
		return prefs[i].q > prefs[j].q
	})
	for _, p := range prefs {
		if _, ok := b.supported[p.base]; ok {
			return p.base
		}
	}
	return b.fallback
}

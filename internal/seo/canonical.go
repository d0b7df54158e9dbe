package seo

import "strings"

// Canonical resolves a page path against the site origin. Relative paths are
// joined with exactly one slash; absolute URLs pass through untouched. An
// empty path yields the origin itself.
func Canonical(origin, path string) string {
	origin = strings.TrimRight(origin, "/")
	if path == "" {
		return origin
	}
	if strings.Contains(path, "://") {
		return path
	}
	return origin + "/" + strings.TrimLeft(path, "/")
}

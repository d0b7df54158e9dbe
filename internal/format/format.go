// Package format holds locale-aware display formatting for dates and
// reading times shown on article pages.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Date formats a timestamp in a locale-friendly short form. Zero times
// render empty so templates can omit the element.
func Date(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "ja":
		return t.Format("2006年1月2日")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// ISODate renders a timestamp for machine-readable attributes and
// structured data, empty when unset.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ReadingTime renders a reading-time figure, empty when unknown.
func ReadingTime(minutes int, lang string) string {
	if minutes <= 0 {
		return ""
	}
	switch strings.ToLower(lang) {
	case "ja":
		return fmt.Sprintf("%d分で読めます", minutes)
	default:
		return fmt.Sprintf("%d min read", minutes)
	}
}

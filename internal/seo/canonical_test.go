package seo

import "testing"

func TestCanonical(t *testing.T) {
	cases := []struct {
		origin, path, want string
	}{
		{"https://meridianpress.org", "/articles", "https://meridianpress.org/articles"},
		{"https://meridianpress.org/", "/articles", "https://meridianpress.org/articles"},
		{"https://meridianpress.org/", "articles", "https://meridianpress.org/articles"},
		{"https://meridianpress.org", "", "https://meridianpress.org"},
		{"https://meridianpress.org", "https://other.example/x", "https://other.example/x"},
		{"https://meridianpress.org", "//articles", "https://meridianpress.org/articles"},
	}
	for _, c := range cases {
		if got := Canonical(c.origin, c.path); got != c.want {
			t.Fatalf("Canonical(%q, %q) = %q, want %q", c.origin, c.path, got, c.want)
		}
	}
}

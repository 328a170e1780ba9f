package engine

import "strings"

// Filter is a requirement or desire predicate. If ID is set it shortcircuits
// every other field. Otherwise Name and Professor are whitespace-separated
// keyword lists; every keyword must appear as a substring of the matching
// field. Matching is a raw byte/rune substring test — never lowercased, so
// CJK course names compare correctly without a locale-aware fold.
type Filter struct {
	ID        string
	Name      string
	Professor string
}

// empty reports whether the filter carries no predicate at all.
func (f Filter) empty() bool {
	return f.ID == "" && strings.TrimSpace(f.Name) == "" && strings.TrimSpace(f.Professor) == ""
}

// matches reports whether the given course satisfies the filter.
func (f Filter) matches(c Course) bool {
	if f.ID != "" {
		return c.ID == f.ID
	}
	for _, kw := range keywords(f.Name) {
		if !strings.Contains(c.Name, kw) {
			return false
		}
	}
	for _, kw := range keywords(f.Professor) {
		if !strings.Contains(c.Professor, kw) {
			return false
		}
	}
	return true
}

func keywords(s string) []string {
	return strings.Fields(s)
}

// matchAll returns every catalog course satisfying the filter, in catalog
// order. If ID is set this is the singleton match (or nil).
func matchAll(f Filter, catalog []Course) []Course {
	if f.ID != "" {
		for _, c := range catalog {
			if c.ID == f.ID {
				return []Course{c}
			}
		}
		return nil
	}
	var out []Course
	for _, c := range catalog {
		if f.matches(c) {
			out = append(out, c)
		}
	}
	return out
}

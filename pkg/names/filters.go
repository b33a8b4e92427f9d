package names

import "unicode/utf8"

// Filter reports whether a normalized name should not be searched for
type Filter func(name string) bool

// NoFilter never excludes a name
func NoFilter(string) bool { return false }

// NewExclusionFilter excludes names on the given list of generic or already
// well-known organization names, plus names too short to be meaningful.
func NewExclusionFilter(excluded []string) Filter {
	set := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		if normalized := Normalize(name); normalized != "" {
			set[normalized] = true
		}
	}

	return func(name string) bool {
		normalized := Normalize(name)
		if utf8.RuneCountInString(normalized) < 2 {
			return true
		}
		return set[normalized]
	}
}

// Or combines filters, excluding a name when any of them does
func Or(filters ...Filter) Filter {
	return func(name string) bool {
		for _, f := range filters {
			if f != nil && f(name) {
				return true
			}
		}
		return false
	}
}

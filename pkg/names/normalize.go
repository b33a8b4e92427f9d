package names

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	// Everything except letters, digits, whitespace and the separators names use
	nonNameChars = regexp.MustCompile(`[^\p{L}\p{N}\s&'\-./]`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes an organization name for searching and comparison:
// compatibility composition, case folding, punctuation and whitespace folding.
func Normalize(name string) string {
	normalized := norm.NFKC.String(name)

	// cases.Caser is stateful, one per call
	normalized = cases.Fold().String(normalized)

	normalized = nonNameChars.ReplaceAllString(normalized, " ")
	normalized = multiSpace.ReplaceAllString(normalized, " ")

	return strings.Trim(normalized, " .,-'/")
}

// NormalizedVariants expands the raw names into their variants and returns the
// distinct non-empty normalized values in ascending order.
func NormalizedVariants(rawNames []string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0, len(rawNames))

	for _, variant := range Variants(rawNames) {
		normalized := Normalize(variant)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		values = append(values, normalized)
	}

	sort.Strings(values)
	return values
}

package names

import (
	"strings"
)

// Legal form suffixes, compared lower case with dots removed
var legalSuffixes = map[string]bool{
	"inc": true, "incorporated": true, "llc": true, "llp": true, "lp": true,
	"ltd": true, "limited": true, "plc": true, "corp": true, "corporation": true,
	"co": true, "company": true, "group": true, "holding": true, "holdings": true,
	"gmbh": true, "ag": true, "kg": true, "a/s": true, "aps": true, "ab": true,
	"as": true, "asa": true, "oy": true, "oyj": true, "bv": true, "nv": true,
	"sa": true, "sas": true, "sarl": true, "srl": true, "spa": true, "pty": true,
}

// Variants expands raw organization names into the name forms worth searching
// for: the name itself, the name with trailing legal suffixes removed one at a
// time, and "&"/"and" spellings of each. Empty names are skipped; the result
// may contain duplicates.
func Variants(rawNames []string) []string {
	variants := make([]string, 0, len(rawNames)*2)

	for _, raw := range rawNames {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		forms := append([]string{name}, stripLegalSuffixes(name)...)
		for _, form := range forms {
			variants = append(variants, form)
			if swapped, ok := swapAmpersand(form); ok {
				variants = append(variants, swapped)
			}
		}
	}

	return variants
}

// stripLegalSuffixes returns the successive forms of name with one more
// trailing legal suffix removed. The first word is never removed.
func stripLegalSuffixes(name string) []string {
	words := strings.Fields(name)

	var forms []string
	for len(words) > 1 {
		last := strings.ToLower(strings.Trim(words[len(words)-1], ".,()"))
		last = strings.ReplaceAll(last, ".", "")
		if !legalSuffixes[last] {
			break
		}

		words = words[:len(words)-1]
		form := strings.TrimRight(strings.Join(words, " "), " ,")
		if form == "" {
			break
		}
		forms = append(forms, form)
	}

	return forms
}

// swapAmpersand replaces " & " with " and " or the other way round
func swapAmpersand(name string) (string, bool) {
	if strings.Contains(name, " & ") {
		return strings.ReplaceAll(name, " & ", " and "), true
	}

	words := strings.Fields(name)
	swapped := false
	for i, w := range words {
		if i > 0 && i < len(words)-1 && strings.EqualFold(w, "and") {
			words[i] = "&"
			swapped = true
		}
	}
	if !swapped {
		return "", false
	}
	return strings.Join(words, " "), true
}

package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lower case", "Acme", "acme"},
		{"whitespace collapse", "  Acme   Widgets\t Inc ", "acme widgets inc"},
		{"trailing dot", "Acme Inc.", "acme inc"},
		{"punctuation folded", "Yahoo!", "yahoo"},
		{"ampersand kept", "AT&T", "at&t"},
		{"compatibility form", "Ａｃｍｅ", "acme"},
		{"accents kept", "Nestlé", "nestlé"},
		{"empty", "  ", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestVariants(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "plain name",
			input:    []string{"Acme"},
			expected: []string{"Acme"},
		},
		{
			name:     "legal suffix stripped",
			input:    []string{"Acme Inc."},
			expected: []string{"Acme Inc.", "Acme"},
		},
		{
			name:     "stacked suffixes",
			input:    []string{"Acme Holdings Ltd"},
			expected: []string{"Acme Holdings Ltd", "Acme Holdings", "Acme"},
		},
		{
			name:     "ampersand swap",
			input:    []string{"Procter & Gamble Co"},
			expected: []string{"Procter & Gamble Co", "Procter and Gamble Co", "Procter & Gamble", "Procter and Gamble"},
		},
		{
			name:     "and swap",
			input:    []string{"Marks and Spencer"},
			expected: []string{"Marks and Spencer", "Marks & Spencer"},
		},
		{
			name:     "single suffix word kept",
			input:    []string{"Company"},
			expected: []string{"Company"},
		},
		{
			name:     "empty skipped",
			input:    []string{"", "   "},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Variants(tt.input))
		})
	}
}

func TestNormalizedVariants_DistinctAndSorted(t *testing.T) {
	values := NormalizedVariants([]string{"Acme Inc", "ACME", "acme inc.", "Beta"})
	assert.Equal(t, []string{"acme", "acme inc", "beta"}, values)
}

func TestNewExclusionFilter(t *testing.T) {
	filter := NewExclusionFilter([]string{"Google", "Unknown"})

	assert.True(t, filter("google"))
	assert.True(t, filter("UNKNOWN"))
	assert.True(t, filter("x"))
	assert.True(t, filter(""))
	assert.False(t, filter("acme"))
}

func TestOr(t *testing.T) {
	f := Or(NoFilter, nil, func(name string) bool { return name == "acme" })
	assert.True(t, f("acme"))
	assert.False(t, f("beta"))
}

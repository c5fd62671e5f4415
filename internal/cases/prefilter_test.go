package cases

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefilter_Candidates(t *testing.T) {
	pf := NewPrefilter(Registry())

	tests := []struct {
		name     string
		input    string
		expected map[int]bool
	}{
		{
			name:     "nothing",
			input:    "all good",
			expected: map[int]bool{},
		},
		{
			name:     "missing file keyword",
			input:    "File not found: /x",
			expected: map[int]bool{0: true},
		},
		{
			name:     "case insensitive",
			input:    "ERROR: FAILED build dependencies",
			expected: map[int]bool{2: true},
		},
		{
			name:     "unpackaged listing",
			input:    "Installed (but unpackaged) file(s) found:",
			expected: map[int]bool{0: true, 1: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pf.Candidates(tt.input))
		})
	}
}

func TestPrefilter_CaseWithoutKeywordsAlwaysCandidate(t *testing.T) {
	cs := []Case{
		{Title: "bare", Pattern: regexp.MustCompile(`x`)},
		{Title: "keyed", Pattern: regexp.MustCompile(`y`), Keywords: []string{"y"}},
	}
	pf := NewPrefilter(cs)

	assert.Equal(t, map[int]bool{0: true}, pf.Candidates("nothing here"))
	assert.Equal(t, map[int]bool{0: true, 1: true}, pf.Candidates("y"))
}

func TestRegistry_KeywordsAreLiteralInPatterns(t *testing.T) {
	for _, c := range Registry() {
		for _, kw := range c.Keywords {
			assert.Contains(t, c.Pattern.String(), regexp.QuoteMeta(kw), "case %q keyword %q", c.Title, kw)
		}
	}
}

func TestRegistry_ReturnsCopy(t *testing.T) {
	cs := Registry()
	cs[0].Title = "changed"

	_, ok := Lookup(TitleMissingFile)
	assert.True(t, ok)
	assert.Equal(t, TitleMissingFile, Registry()[0].Title)
}

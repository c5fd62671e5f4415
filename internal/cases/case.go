// Package cases holds the registry of known build failure signatures and
// the matcher that applies them to build log text.
package cases

import (
	"regexp"
)

// DetailExtractor turns the occurrences of a case pattern into a display
// string. finds holds [start, end] byte offsets into text, in order.
type DetailExtractor func(text string, finds [][]int) string

// Case is a named detection rule for a known build failure.
type Case struct {
	// Title is the short, stable name used as the result key.
	Title string
	// Pattern detects the case in the log text.
	Pattern *regexp.Regexp
	// Description explains the problem and how to fix it.
	Description string
	// Keywords are literals that must appear in any text the pattern
	// matches. They feed the prefilter and may be empty.
	Keywords []string
	// Extract produces the details for a matched case.
	Extract DetailExtractor
}

// nothingDetails is returned by cases without a real extractor.
const nothingDetails = "Nothing"

// noDetails is the default extractor.
func noDetails(string, [][]int) string {
	return nothingDetails
}

// fromFirstStart returns the log from the start of the first occurrence
// through the end of the text.
// TODO: bound this to the file listing block once the block terminator is known.
func fromFirstStart(text string, finds [][]int) string {
	if len(finds) == 0 {
		return ""
	}
	return text[finds[0][0]:]
}

// afterFirstEnd returns the log strictly after the first occurrence.
func afterFirstEnd(text string, finds [][]int) string {
	if len(finds) == 0 {
		return ""
	}
	return text[finds[0][1]:]
}

// Titles of the registered cases.
const (
	TitleMissingFile     = "File not found"
	TitleUnpackagedFile  = "File not listed in %files"
	TitleMissingBuildDep = "Build dependency not installed"
)

var registry = []Case{
	{
		Title:       TitleMissingFile,
		Pattern:     regexp.MustCompile(`File\s+not\s+found:`),
		Description: "TBD",
		Keywords:    []string{"found:"},
		// TODO: extract the missing filenames instead of the placeholder.
		Extract: noDetails,
	},
	{
		Title:       TitleUnpackagedFile,
		Pattern:     regexp.MustCompile(`Installed\s+\(but\s+unpackaged\)\s+file\(s\)\s+found:`),
		Description: "TBD",
		Keywords:    []string{"unpackaged)"},
		Extract:     fromFirstStart,
	},
	{
		Title:       TitleMissingBuildDep,
		Pattern:     regexp.MustCompile(`error: Failed\s+build\s+dependencies\:\n`),
		Description: "Your spec file set a build dependency in `BuildRequires` that is not installed.",
		Keywords:    []string{"error: Failed"},
		Extract:     afterFirstEnd,
	},
}

// Registry returns the registered cases in scan order.
func Registry() []Case {
	out := make([]Case, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the registered case with the given title.
func Lookup(title string) (Case, bool) {
	for _, c := range registry {
		if c.Title == title {
			return c, true
		}
	}
	return Case{}, false
}

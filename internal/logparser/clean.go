// Package logparser prepares raw CI build logs for case scanning.
package logparser

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var (
	// timestampPattern matches CI log timestamp prefixes.
	// Format: 2026-01-26T14:49:40.7760945Z
	timestampPattern = regexp.MustCompile(`(?m)^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z ?`)

	// jobPrefixPattern matches GitHub Actions job/step prefixes.
	// Format: "JobName\tStepName\t2026-01-26..."
	jobPrefixPattern = regexp.MustCompile(`(?m)^[^\t\n]+\t[^\t\n]+\t(\d{4}-\d{2}-\d{2}T)`)
)

// StripTimestamps removes CI timestamp prefixes from each line.
// Input:  "2026-01-26T14:49:40.7760945Z error: Failed build dependencies:"
// Output: "error: Failed build dependencies:"
func StripTimestamps(log string) string {
	return timestampPattern.ReplaceAllString(log, "")
}

// StripANSI removes ANSI escape sequences from the log.
func StripANSI(log string) string {
	return ansi.Strip(log)
}

// StripJobPrefix removes the job/step prefix from each line, leaving the
// timestamp for StripTimestamps.
// Input:  "build\tRun mock\t2026-01-26T14:49:40Z content"
// Output: "2026-01-26T14:49:40Z content"
func StripJobPrefix(log string) string {
	return jobPrefixPattern.ReplaceAllString(log, "$1")
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(log string) string {
	log = strings.ReplaceAll(log, "\r\n", "\n")
	return strings.ReplaceAll(log, "\r", "\n")
}

// CleanLog applies all cleanup operations to a log.
func CleanLog(log string) string {
	log = NormalizeNewlines(log)
	log = StripANSI(log)
	log = StripJobPrefix(log)
	log = StripTimestamps(log)
	return log
}

package logparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTimestamps(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "fractional seconds",
			input:    "2026-01-26T14:49:40.7760945Z error: Failed build dependencies:",
			expected: "error: Failed build dependencies:",
		},
		{
			name:     "whole seconds",
			input:    "2026-01-26T14:49:40Z File not found: /a",
			expected: "File not found: /a",
		},
		{
			name:     "every line",
			input:    "2026-01-26T14:49:40Z one\n2026-01-26T14:49:41Z two",
			expected: "one\ntwo",
		},
		{
			name:     "no timestamp",
			input:    "plain line",
			expected: "plain line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripTimestamps(tt.input))
		})
	}
}

func TestStripANSI(t *testing.T) {
	input := "\x1b[31merror\x1b[0m: Failed build dependencies:"
	assert.Equal(t, "error: Failed build dependencies:", StripANSI(input))
}

func TestStripJobPrefix(t *testing.T) {
	input := "build\tRun mock\t2026-01-26T14:49:40Z content"
	assert.Equal(t, "2026-01-26T14:49:40Z content", StripJobPrefix(input))
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\nc", NormalizeNewlines("a\r\nb\rc"))
}

func TestCleanLog(t *testing.T) {
	input := "build\tRun mock\t2026-01-26T14:49:40.1Z \x1b[1merror: Failed build dependencies:\x1b[0m\r\n" +
		"build\tRun mock\t2026-01-26T14:49:40.2Z     python3dist(foo) is needed by bar-1.0\r\n"

	expected := "error: Failed build dependencies:\n" +
		"    python3dist(foo) is needed by bar-1.0\n"
	assert.Equal(t, expected, CleanLog(input))
}

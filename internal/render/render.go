// Package render writes scan results for humans and for other tools.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"gopkg.in/yaml.v3"

	"github.com/newhook/loggy/internal/cases"
	"github.com/newhook/loggy/internal/config"
)

// Renderer writes a scan result to an output stream.
type Renderer interface {
	Render(result cases.Result) error
}

// Options tunes the human readable renderers.
type Options struct {
	// All includes unmatched cases.
	All bool
	// Width wraps details in the styled renderer. 0 disables wrapping.
	Width int
	// MaxLines caps the detail lines per case in the styled renderer.
	MaxLines int
}

// New returns the renderer for format.
func New(format string, w io.Writer, opts Options) (Renderer, error) {
	switch format {
	case "", config.FormatText:
		return &TextRenderer{w: w, all: opts.All}, nil
	case config.FormatStyled:
		return &StyledRenderer{w: w, opts: opts}, nil
	case config.FormatJSON:
		return &JSONRenderer{w: w}, nil
	case config.FormatYAML:
		return &YAMLRenderer{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// noMatch is shown in place of details for unmatched cases.
const noMatch = "(no match)"

// TextRenderer prints the title and details of each matched case,
// separated by blank lines.
type TextRenderer struct {
	w   io.Writer
	all bool
}

func (r *TextRenderer) Render(result cases.Result) error {
	for _, e := range result.Entries() {
		details := e.Details
		if !e.Matched {
			if !r.all {
				continue
			}
			details = noMatch
		}
		if _, err := fmt.Fprintf(r.w, "%s\n%s\n\n\n", e.Title, details); err != nil {
			return fmt.Errorf("failed to write %q: %w", e.Title, err)
		}
	}
	return nil
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	missStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	detailStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// StyledRenderer prints matched cases with terminal styling, wrapping and
// trimming long details.
type StyledRenderer struct {
	w    io.Writer
	opts Options
}

func (r *StyledRenderer) Render(result cases.Result) error {
	var b strings.Builder
	for _, e := range result.Entries() {
		if !e.Matched {
			if r.opts.All {
				b.WriteString(titleStyle.Render(e.Title) + " " + missStyle.Render(noMatch) + "\n\n")
			}
			continue
		}

		b.WriteString(titleStyle.Render(e.Title) + "\n")
		lines, hidden := r.detailLines(e.Details)
		if len(lines) > 0 {
			b.WriteString(detailStyle.Render(strings.Join(lines, "\n")) + "\n")
		}
		if hidden > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more lines", hidden)) + "\n")
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return fmt.Errorf("failed to write styled output: %w", err)
	}
	return nil
}

// detailLines wraps details to the configured width and returns the lines
// to show plus the number of lines left out.
func (r *StyledRenderer) detailLines(details string) ([]string, int) {
	details = strings.TrimRight(details, "\n")
	if details == "" {
		return nil, 0
	}

	if r.opts.Width > 0 {
		// Wrap on spaces only; paths and NVRs contain '-'.
		ww := wordwrap.NewWriter(r.opts.Width)
		ww.Breakpoints = nil
		_, _ = ww.Write([]byte(details))
		_ = ww.Close()
		details = ww.String()
	}
	lines := strings.Split(details, "\n")
	if r.opts.Width > 0 {
		// Words longer than the width, such as paths, are kept whole by wordwrap.
		for i, line := range lines {
			lines[i] = truncate.StringWithTail(line, uint(r.opts.Width), "...")
		}
	}

	hidden := 0
	if r.opts.MaxLines > 0 && len(lines) > r.opts.MaxLines {
		hidden = len(lines) - r.opts.MaxLines
		lines = lines[:r.opts.MaxLines]
	}
	return lines, hidden
}

// JSONRenderer prints the full result as an indented JSON object keyed by
// case title.
type JSONRenderer struct {
	w io.Writer
}

func (r *JSONRenderer) Render(result cases.Result) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// YAMLRenderer prints the full result as a YAML mapping keyed by case
// title.
type YAMLRenderer struct {
	w io.Writer
}

func (r *YAMLRenderer) Render(result cases.Result) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return enc.Close()
}

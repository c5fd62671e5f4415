package cases

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Scanner applies the case registry to build log text.
// It holds no mutable state and is safe for concurrent use.
type Scanner struct {
	cases     []Case
	prefilter *Prefilter
	clean     func(string) string
	logger    *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithPrefilter enables or disables the keyword prefilter.
func WithPrefilter(enabled bool) Option {
	return func(s *Scanner) {
		if enabled {
			s.prefilter = NewPrefilter(s.cases)
		} else {
			s.prefilter = nil
		}
	}
}

// WithCleaner sets a function applied to the log text before scanning.
func WithCleaner(clean func(string) string) Option {
	return func(s *Scanner) {
		s.clean = clean
	}
}

// WithLogger sets the logger used to report read failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScanner creates a Scanner over the registered cases.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		cases:  Registry(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan runs every case against text and returns one entry per case.
func (s *Scanner) Scan(text string) Result {
	if s.clean != nil {
		text = s.clean(text)
	}

	var candidates map[int]bool
	if s.prefilter != nil {
		candidates = s.prefilter.Candidates(text)
	}

	var result Result
	for i, c := range s.cases {
		if candidates != nil && !candidates[i] {
			result.add(c.Title, MatchResult{Matched: false})
			continue
		}

		finds := c.Pattern.FindAllStringIndex(text, -1)
		if len(finds) == 0 {
			result.add(c.Title, MatchResult{Matched: false})
			continue
		}

		extract := c.Extract
		if extract == nil {
			extract = noDetails
		}
		result.add(c.Title, MatchResult{
			Matched: true,
			Details: extract(text, finds),
		})
	}
	return result
}

// ScanFile reads the whole file at path and scans it.
// Unlike ParseBuildLog it reports read failures to the caller.
func (s *Scanner) ScanFile(path string) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read build log %s: %w", path, err)
	}
	return s.Scan(string(content)), nil
}

// ParseBuildLog reads and scans the log at path. A read failure is logged
// and yields an empty Result; scanning is skipped entirely.
func (s *Scanner) ParseBuildLog(path string) Result {
	result, err := s.ScanFile(path)
	if err != nil {
		s.logger.Error("failed to open build log", "path", path, "error", err)
		return Result{}
	}
	return result
}

// defaultScanner has no prefilter or cleaner.
var defaultScanner = NewScanner()

// Scan runs the registered cases against text.
func Scan(text string) Result {
	return defaultScanner.Scan(text)
}

// ScanFile reads and scans the log at path, reporting read failures.
func ScanFile(path string) (Result, error) {
	return defaultScanner.ScanFile(path)
}

// ParseBuildLog reads and scans the log at path, logging read failures to
// the default slog logger and returning an empty Result for them.
func ParseBuildLog(path string) Result {
	return NewScanner(WithLogger(slog.Default())).ParseBuildLog(path)
}

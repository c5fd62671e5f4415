package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed templates/config.tmpl
var configTemplateText string

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = ".loggy.toml"

// Config represents the configuration stored in .loggy.toml.
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Scan    ScanConfig    `toml:"scan"`
	Logging LoggingConfig `toml:"logging"`
	Watch   WatchConfig   `toml:"watch"`
}

// OutputConfig controls how scan results are rendered.
type OutputConfig struct {
	// Format is one of "text", "styled", "json", "yaml".
	// Defaults to "text" when not specified.
	Format string `toml:"format"`

	// All prints unmatched cases too.
	All bool `toml:"all"`

	// Width wraps details in the styled format. 0 disables wrapping.
	Width int `toml:"width"`

	// MaxLines limits the number of detail lines in the styled format.
	// 0 means no limit.
	MaxLines int `toml:"max_lines"`
}

// Valid output formats.
const (
	FormatText   = "text"
	FormatStyled = "styled"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// GetFormat returns the configured output format.
// Defaults to "text" when not specified.
func (o *OutputConfig) GetFormat() string {
	if o.Format == "" {
		return FormatText
	}
	return o.Format
}

// ScanConfig controls preprocessing and matching.
type ScanConfig struct {
	// Clean strips ANSI codes, CI timestamps and CRLF line endings before
	// scanning. Details then come from the cleaned text.
	Clean bool `toml:"clean"`

	// Prefilter skips regex matching for cases whose keywords are absent.
	// Defaults to true when not specified.
	Prefilter *bool `toml:"prefilter"`
}

// ShouldPrefilter returns true if the keyword prefilter is enabled.
func (s *ScanConfig) ShouldPrefilter() bool {
	if s.Prefilter == nil {
		return true
	}
	return *s.Prefilter
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error". Defaults to "warn".
	Level string `toml:"level"`

	// File receives JSON logs instead of stderr when set.
	File string `toml:"file"`
}

// GetLevel returns the configured level, defaulting to "warn".
func (l *LoggingConfig) GetLevel() string {
	if l.Level == "" {
		return "warn"
	}
	return l.Level
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// DedupTTLSeconds is how long an already rendered log content is
	// remembered. Defaults to 600 seconds.
	DedupTTLSeconds int `toml:"dedup_ttl_seconds"`
}

// DedupTTL returns the dedup window for watch mode.
func (w *WatchConfig) DedupTTL() time.Duration {
	if w.DedupTTLSeconds <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(w.DedupTTLSeconds) * time.Second
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.Output.GetFormat() {
	case FormatText, FormatStyled, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("output width must not be negative, got %d", c.Output.Width)
	}
	if c.Output.MaxLines < 0 {
		return fmt.Errorf("output max_lines must not be negative, got %d", c.Output.MaxLines)
	}
	return nil
}

// LoadConfig reads the config from the specified path.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Find loads the config at path. With an empty path it loads
// DefaultFileName from the working directory if present and otherwise
// returns an empty config.
func Find(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	if _, err := os.Stat(DefaultFileName); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", DefaultFileName, err)
	}
	return LoadConfig(DefaultFileName)
}

// configTemplate is the parsed template for generating documented config files.
var configTemplate = template.Must(template.New("config").Parse(configTemplateText))

// GenerateDocumentedConfig generates a documented config.toml string with
// the current values and a comment for every option.
func (c *Config) GenerateDocumentedConfig() (string, error) {
	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return buf.String(), nil
}

// SaveDocumentedConfig writes a fully documented config to the specified path.
// It refuses to overwrite an existing file.
func (c *Config) SaveDocumentedConfig(path string) error {
	content, err := c.GenerateDocumentedConfig()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

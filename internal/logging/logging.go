// Package logging provides structured logging using slog.
// Diagnostics go to stderr as text, or to a log file as JSON in append mode.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// defaultLogger is the package-level logger.
	defaultLogger *slog.Logger
	// logFile is the file handle for the log file.
	logFile *os.File
	// mu protects concurrent access to the logger.
	mu sync.RWMutex
)

// Options controls where and how much is logged.
type Options struct {
	// Level is one of debug, info, warn, error. Defaults to warn.
	Level string
	// File, when set, receives JSON logs instead of Stderr.
	File string
	// Stderr is the text log destination. Defaults to os.Stderr.
	Stderr io.Writer
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", name)
	}
}

// Init initializes the package-level logger.
// If the log file cannot be opened, logging falls back to stderr.
func Init(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	// Close any existing log file.
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err == nil {
			f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				logFile = f
				defaultLogger = slog.New(slog.NewJSONHandler(f, handlerOpts))
				return nil
			}
		}
	}

	defaultLogger = slog.New(slog.NewTextHandler(stderr, handlerOpts))
	return nil
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// Logger returns the default logger.
// If not initialized, returns a logger writing warnings to stderr.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if defaultLogger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return defaultLogger
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Package watch rescans a build log every time it changes on disk.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/newhook/loggy/internal/cases"
	"github.com/newhook/loggy/internal/render"
)

// Watcher rescans the whole log file on every write and renders the
// result when the content differs from anything rendered within the
// dedup window.
type Watcher struct {
	path     string
	scanner  *cases.Scanner
	renderer render.Renderer
	logger   *slog.Logger
	// seen maps content digests to the scan ID that rendered them.
	seen *cache.Cache
}

// New creates a Watcher for the log at path.
func New(path string, scanner *cases.Scanner, renderer render.Renderer, dedupTTL time.Duration, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return &Watcher{
		path:     abs,
		scanner:  scanner,
		renderer: renderer,
		logger:   logger,
		seen:     cache.New(dedupTTL, 2*dedupTTL),
	}, nil
}

// ScanOnce reads and scans the log, rendering the result unless the same
// content was already rendered. It reports whether anything was rendered.
// A read failure is logged and skipped, as in a one-shot scan.
func (w *Watcher) ScanOnce() (bool, error) {
	content, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Error("failed to open build log", "path", w.path, "error", err)
		return false, nil
	}

	sum := sha256.Sum256(content)
	digest := hex.EncodeToString(sum[:])
	if id, found := w.seen.Get(digest); found {
		w.logger.Debug("build log unchanged", "path", w.path, "scan_id", id)
		return false, nil
	}

	scanID := uuid.New().String()
	result := w.scanner.Scan(string(content))
	w.seen.SetDefault(digest, scanID)
	w.logger.Info("scanned build log",
		"path", w.path,
		"scan_id", scanID,
		"bytes", len(content),
		"matched", len(result.Matched()))

	if err := w.renderer.Render(result); err != nil {
		return false, fmt.Errorf("failed to render scan %s: %w", scanID, err)
	}
	return true, nil
}

// Run scans the log once, then again after every change, until ctx is
// cancelled. The parent directory is watched so that logs which are
// recreated or rotated keep being followed.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	if _, err := w.ScanOnce(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if _, err := w.ScanOnce(); err != nil {
				return err
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "path", w.path, "error", err)
		}
	}
}

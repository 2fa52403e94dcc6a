// Package watch re-runs the review whenever a Python file in the project
// changes.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces editor save bursts into one re-run.
const debounceDelay = 250 * time.Millisecond

// Watcher re-runs a review callback on Python file changes under root.
type Watcher struct {
	root   string
	logger *slog.Logger
	run    func(ctx context.Context)
}

// New creates a watcher. run is invoked once immediately and again after
// every debounced change.
func New(root string, logger *slog.Logger, run func(ctx context.Context)) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{root: root, logger: logger, run: run}
}

// Watch blocks until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := w.addDirs(watcher); err != nil {
		return err
	}

	w.run(ctx)

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !relevant(event.Name) {
				continue
			}
			// New directories need to be watched too.
			if event.Op&fsnotify.Create != 0 {
				_ = w.addDirs(watcher)
			}
			if debounce != nil {
				debounce.Stop()
			}
			name := event.Name
			debounce = time.AfterFunc(debounceDelay, func() {
				w.logger.Info("change detected", "file", filepath.Base(name))
				w.run(ctx)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// addDirs registers every directory under root, skipping caches and hidden
// directories.
func (w *Watcher) addDirs(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == "__pycache__" || (path != w.root && strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// relevant reports whether a change to the file should trigger a re-run.
func relevant(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".py") || base == ".env" ||
		base == "alembic.ini" || strings.HasPrefix(base, ".freview.")
}

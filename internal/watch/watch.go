// Package watch regenerates output when fixture files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/xaphier/Eternal-Lands/pkg/resource"
)

// Watcher observes a fixture directory.
type Watcher struct {
	dir      string
	debounce time.Duration
	log      *zap.Logger
	watcher  *fsnotify.Watcher
}

// New starts watching dir. Changes are reported after debounce has passed
// without further events.
func New(dir string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Editors often replace files, so the directory is watched instead of
	// the fixtures themselves.
	if err := watcher.Add(absDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", absDir, err)
	}

	return &Watcher{
		dir:      absDir,
		debounce: debounce,
		log:      log,
		watcher:  watcher,
	}, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run blocks until ctx is done or the watcher is closed, calling onChange
// once per burst of fixture events. Errors from onChange are logged and
// watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	// Timers never deliver stale values after Stop or Reset (Go 1.23+).
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !isFixtureEvent(event) {
				w.log.Debug("ignoring event", zap.Stringer("event", event))
				continue
			}
			w.log.Debug("fixture event", zap.Stringer("event", event))
			timer.Reset(w.debounce)

		case <-timer.C:
			if err := onChange(); err != nil {
				w.log.Error("regeneration failed", zap.Error(err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func isFixtureEvent(event fsnotify.Event) bool {
	if !resource.IsFixtureName(filepath.Base(event.Name)) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

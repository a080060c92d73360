// Package watch re-runs a build whenever one of its configuration files
// changes.
//
// Directories reported by a build are watched recursively, so a project
// directory created below one of them is picked up without a restart.
// Hidden directories are not descended into.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/orgdefaults/internal/ctxlog"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before rebuilding.
const DefaultDebounce = 250 * time.Millisecond

// BuildFunc runs one build and returns the directories whose configuration
// files it read.
type BuildFunc func(ctx context.Context) ([]string, error)

// Watcher rebuilds on configuration changes.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	debounce   time.Duration
	extensions []string
	ignore     func(path string) bool
}

// New creates a Watcher reacting to files with the given extensions
// (including the dot). A non-positive debounce selects DefaultDebounce.
func New(debounce time.Duration, extensions ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{fsWatcher: fsw, debounce: debounce, extensions: extensions}, nil
}

// Ignore installs a predicate for paths the watcher should neither descend
// into nor react to, such as the directory builds write their output to.
// It must be called before Run.
func (w *Watcher) Ignore(fn func(path string) bool) {
	w.ignore = fn
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

// Run calls build once, then again after every settled change in the
// directories it reported, until ctx is cancelled. An error from the first
// build is returned; later build errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, build BuildFunc) error {
	logger := ctxlog.FromContext(ctx)

	dirs, err := build(ctx)
	if err != nil {
		return err
	}
	w.watch(ctx, dirs)
	logger.Info("Watching for configuration changes.", "directories", len(w.fsWatcher.WatchList()))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				w.addTree(ctx, event.Name)
			} else if !w.isRelevantEvent(event) {
				continue
			}
			logger.Debug("Configuration change detected.", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			dirs, err := build(ctx)
			if err != nil {
				logger.Error("Rebuild failed, still watching.", "error", err)
				continue
			}
			w.watch(ctx, dirs)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)
		}
	}
}

// watch adds the trees rooted at dirs. Directories that disappeared are
// dropped by fsnotify itself.
func (w *Watcher) watch(ctx context.Context, dirs []string) {
	for _, dir := range dirs {
		w.addTree(ctx, dir)
	}
}

// addTree watches root and every directory below it that is neither hidden
// nor ignored.
func (w *Watcher) addTree(ctx context.Context, root string) {
	logger := ctxlog.FromContext(ctx)

	root, err := filepath.Abs(root)
	if err != nil {
		logger.Warn("Cannot watch directory.", "dir", root, "error", err)
		return
	}
	watched := w.fsWatcher.WatchList()
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Debug("Skipping unreadable directory.", "dir", path, "error", err)
			return fs.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || w.ignored(path)) {
			return fs.SkipDir
		}
		if slices.Contains(watched, path) {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			logger.Warn("Cannot watch directory.", "dir", path, "error", err)
			return nil
		}
		watched = append(watched, path)
		return nil
	})
	if err != nil {
		logger.Warn("Cannot watch directory.", "dir", root, "error", err)
	}
}

func (w *Watcher) ignored(path string) bool {
	if w.ignore == nil {
		return false
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return w.ignore(path)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if len(w.extensions) == 0 {
		return true
	}
	return slices.Contains(w.extensions, filepath.Ext(event.Name))
}

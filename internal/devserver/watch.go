package devserver

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	".tuffi":       {},
}

func shouldSkipDir(name string) bool {
	_, exists := skipDirs[name]
	return exists
}

// Watcher watches the dist directory and fires the notify callback when a
// file with a reload-relevant extension changes.
type Watcher struct {
	watcher *fsnotify.Watcher
	exts    map[string]bool
	notify  func()
	logger  *slog.Logger
}

func NewWatcher(root string, extensions []string, notify func(), logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}

	w := &Watcher{
		watcher: fsWatcher,
		exts:    exts,
		notify:  notify,
		logger:  logger,
	}

	if err := w.watchDirs(root); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

func (w *Watcher) watchDirs(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("error accessing path", "path", path, "error", err)
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if shouldSkipDir(d.Name()) {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

func (w *Watcher) shouldReloadForPath(path string) bool {
	return w.exts[strings.ToLower(filepath.Ext(path))]
}

// Run blocks until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if shouldAddWatchDir(event) {
				if err := w.watcher.Add(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
				}
			}

			if isWatchEvent(event.Op) && w.shouldReloadForPath(event.Name) {
				w.logger.Debug("change detected", "path", event.Name)
				w.notify()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func isWatchEvent(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func shouldAddWatchDir(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create == 0 {
		return false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return false
	}

	return info.IsDir() && !shouldSkipDir(info.Name())
}

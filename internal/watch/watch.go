// Package watch turns filesystem notifications into activation events.
//
// Outside a host editor there is no "file opened" signal, so a create or a
// (debounced) write on a trackable file stands in for the file becoming
// active. The watcher also keeps the file-universe index current.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"rft/internal/bridge"
	"rft/internal/config"
	"rft/internal/ignore"
	"rft/internal/logging"
	"rft/internal/recent"
)

// Recorder receives index upkeep for files the watcher sees change.
type Recorder interface {
	Upsert(relPath string, size int64, modTime time.Time) error
	Remove(relPath string) error
}

// Watcher watches the vault recursively and emits activations.
type Watcher struct {
	vaultRoot string
	matcher   *ignore.Matcher
	debouncer *Debouncer
	logger    *logging.Logger
	recorder  Recorder // optional

	fsw    *fsnotify.Watcher
	events chan bridge.Activation

	mu     sync.Mutex
	closed bool
}

// New creates a watcher over the vault root using the watcher config.
// The recorder may be nil.
func New(vaultRoot string, cfg config.WatcherConfig, recorder Recorder, logger *logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	debounce := time.Duration(cfg.DebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &Watcher{
		vaultRoot: vaultRoot,
		matcher:   ignore.NewMatcher(cfg.IgnorePatterns),
		debouncer: NewDebouncer(debounce),
		logger:    logger,
		recorder:  recorder,
		fsw:       fsw,
		events:    make(chan bridge.Activation, 64),
	}

	if err := w.watchTree(vaultRoot); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// isDataDir reports whether the relative path is inside the tool's own data
// directory. Always excluded: state saves must not feed back as activations.
func isDataDir(rel string) bool {
	return rel == config.Dir || strings.HasPrefix(rel, config.Dir+"/")
}

// Events implements bridge.Source.
func (w *Watcher) Events() <-chan bridge.Activation {
	return w.events
}

// watchTree adds the directory and all non-ignored subdirectories.
func (w *Watcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.vaultRoot {
			rel, relErr := ignore.Rel(p, w.vaultRoot)
			if relErr != nil {
				return relErr
			}
			if isDataDir(rel) || w.matcher.Match(rel) {
				return filepath.SkipDir
			}
		}
		return w.fsw.Add(p)
	})
}

// Run consumes filesystem notifications until the context is cancelled.
// Blocking call; the events channel is closed on return.
func (w *Watcher) Run(ctx context.Context) {
	defer w.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("watcher error", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

func (w *Watcher) shutdown() {
	w.debouncer.Stop()
	w.fsw.Close()

	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	close(w.events)
}

func (w *Watcher) handle(ev fsnotify.Event) {
	rel, err := ignore.Rel(ev.Name, w.vaultRoot)
	if err != nil || rel == "." {
		return
	}
	if isDataDir(rel) || w.matcher.Match(rel) {
		return
	}

	switch {
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		if w.recorder != nil {
			if err := w.recorder.Remove(rel); err != nil && w.logger != nil {
				w.logger.Warn("index remove failed", map[string]interface{}{
					"path":  rel,
					"error": err.Error(),
				})
			}
		}

	case ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write):
		info, statErr := os.Stat(ev.Name)
		if statErr != nil {
			return // vanished between event and stat
		}
		if info.IsDir() {
			if ev.Op.Has(fsnotify.Create) {
				if err := w.watchTree(ev.Name); err != nil && w.logger != nil {
					w.logger.Warn("could not watch new directory", map[string]interface{}{
						"path":  rel,
						"error": err.Error(),
					})
				}
			}
			return
		}
		if !info.Mode().IsRegular() {
			return
		}

		if w.recorder != nil {
			if err := w.recorder.Upsert(rel, info.Size(), info.ModTime()); err != nil && w.logger != nil {
				w.logger.Warn("index upsert failed", map[string]interface{}{
					"path":  rel,
					"error": err.Error(),
				})
			}
		}

		w.debouncer.Trigger(rel, func() {
			w.emit(recent.NewFileRef(rel))
		})
	}
}

// emit delivers an activation unless the watcher has shut down. A full
// channel drops the event; the list is lossy by nature and the next write
// will re-activate the file.
func (w *Watcher) emit(f recent.FileRef) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	select {
	case w.events <- bridge.NewActivation(f):
	default:
		if w.logger != nil {
			w.logger.Warn("activation dropped, event buffer full", map[string]interface{}{
				"path": f.Path,
			})
		}
	}
}

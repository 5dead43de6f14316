package theme

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	applog "pureui/internal/log"
)

// Watcher reloads a Controller whenever the file behind a FileStore is
// changed by another process.
type Watcher struct {
	controller *Controller
	path       string
	watcher    *fsnotify.Watcher
	log        *slog.Logger

	mu      sync.Mutex
	running bool
	done    chan struct{}
	stopped chan struct{}
}

// NewWatcher prepares a watcher for store's file.
func NewWatcher(controller *Controller, store *FileStore) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		controller: controller,
		path:       store.Path(),
		watcher:    fw,
		log:        applog.Component("theme-watcher"),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}, nil
}

// Start begins watching. The directory is watched rather than the file so
// rename-based writes are observed, and it is created when missing.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.running = true
	go w.loop(ctx)
	w.log.DebugContext(ctx, "watcher started", "path", w.path)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.stopped)
	name := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if _, err := w.controller.Reload(ctx); err != nil {
					w.log.WarnContext(ctx, "failed to reload theme after file change", "path", w.path, "error", err)
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WarnContext(ctx, "theme file watcher error", "error", err)
		}
	}
}

// Stop ends the watch loop and releases the fsnotify handle.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	close(w.done)
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.stopped
	return err
}

// Package watch reloads a record file when it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"formstate/internal/logging"
	"formstate/internal/record"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives the freshly loaded file, or the error from loading it.
type ReloadFunc func(record.File, error)

// Watcher monitors a single record file. Editors commonly replace a file by
// rename, so the parent directory is watched and events are filtered by name.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	dir      string
	onReload ReloadFunc
	debounce *Debouncer
	log      *logging.Logger

	pending chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu        sync.Mutex
	running   bool
	closeOnce sync.Once
}

// New creates a watcher for path. Nothing is observed until Start.
func New(path string, debounce time.Duration, onReload ReloadFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &Watcher{
		watcher:  fw,
		path:     filepath.Clean(abs),
		dir:      filepath.Dir(abs),
		onReload: onReload,
		debounce: NewDebouncer(debounce),
		log:      logging.Get(logging.CategoryWatch),
		pending:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. The loop exits when ctx is cancelled or Close is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("watcher for %s already started", w.path)
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.running = true
	w.log.Info("watching %s", w.path)
	go w.run(ctx)
	return nil
}

// Close stops the loop and releases the underlying watcher. It is safe to
// call more than once and before Start.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopCh)
		w.debounce.Cancel()

		w.mu.Lock()
		running := w.running
		w.mu.Unlock()
		if running {
			<-w.doneCh
		}
		err = w.watcher.Close()
		w.log.Debug("stopped watching %s", w.path)
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-ctx.Done():
			w.debounce.Cancel()
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error: %v", err)
		case <-w.pending:
			w.reload()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.log.Debug("%s on %s", event.Op, event.Name)
	w.debounce.Debounce(func() {
		select {
		case w.pending <- struct{}{}:
		default:
		}
	})
}

// reload runs on the loop goroutine so callbacks never overlap.
func (w *Watcher) reload() {
	f, err := record.Load(w.path)
	if err != nil {
		w.log.Warn("reload %s failed: %v", w.path, err)
	} else {
		w.log.Info("reloaded %s: %d defaults, %d values", w.path, len(f.Defaults), len(f.Values))
	}
	if w.onReload != nil {
		w.onReload(f, err)
	}
}

// Package watch extracts notices as they appear under a directory tree, for
// download folders that are filled while the extractor runs.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/fsnotify.v1"

	"github.com/mnov88/marked/pkg/notice"
)

// DefaultDebounce is how long a notice file must stay unchanged before it is
// handled. Downloads write a file in several chunks.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called once a notice file has settled.
type Handler func(path string)

// Config holds configuration for a NoticeWatcher.
type Config struct {
	// Root is watched recursively, including directories created later.
	Root string

	// Filename is the notice file name to react to.
	Filename string

	Debounce time.Duration
}

// Status describes a running watcher.
type Status struct {
	Root        string    `json:"root"`
	Directories int       `json:"directories"`
	Handled     int       `json:"handled"`
	Pending     int       `json:"pending"`
	LastNotice  string    `json:"last_notice,omitempty"`
	LastHandled time.Time `json:"last_handled,omitempty"`
}

// NoticeWatcher calls a Handler for every notice file created or rewritten
// under its root.
type NoticeWatcher struct {
	config  Config
	handler Handler
	logger  *slog.Logger

	watcher     *fsnotify.Watcher
	stopChan    chan struct{}
	stopped     chan struct{}
	directories map[string]bool

	// Debouncing
	pendingChanges map[string]time.Time

	handled     int
	lastNotice  string
	lastHandled time.Time

	mu sync.Mutex
}

// New creates a NoticeWatcher. A nil logger uses slog.Default().
func New(config Config, handler Handler, logger *slog.Logger) *NoticeWatcher {
	if config.Filename == "" {
		config.Filename = notice.DefaultFilename
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NoticeWatcher{
		config:         config,
		handler:        handler,
		logger:         logger,
		directories:    make(map[string]bool),
		pendingChanges: make(map[string]time.Time),
	}
}

// Start adds watches for every directory under the root and begins handling
// events in the background until ctx is done or Stop is called.
func (w *NoticeWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watcher != nil {
		w.mu.Unlock()
		return fmt.Errorf("watcher is already running")
	}
	w.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	w.mu.Lock()
	w.watcher = watcher
	w.stopChan = make(chan struct{})
	w.stopped = make(chan struct{})
	w.mu.Unlock()

	if err := w.addTree(w.config.Root, false); err != nil {
		watcher.Close()
		w.mu.Lock()
		w.watcher = nil
		w.mu.Unlock()
		return err
	}

	w.logger.Info("watching for notices", "root", w.config.Root, "filename", w.config.Filename)
	go w.watchLoop(ctx)
	return nil
}

// Stop ends the watch loop and releases the watches.
func (w *NoticeWatcher) Stop() error {
	w.mu.Lock()
	if w.watcher == nil {
		w.mu.Unlock()
		return fmt.Errorf("watcher is not running")
	}
	stopChan, stopped := w.stopChan, w.stopped
	w.mu.Unlock()

	select {
	case <-stopChan:
	default:
		close(stopChan)
	}
	<-stopped
	return nil
}

// Status reports what the watcher has seen so far.
func (w *NoticeWatcher) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Status{
		Root:        w.config.Root,
		Directories: len(w.directories),
		Handled:     w.handled,
		Pending:     len(w.pendingChanges),
		LastNotice:  w.lastNotice,
		LastHandled: w.lastHandled,
	}
}

// addTree watches dir and its subdirectories. When enqueue is set, notice
// files already present are queued; they may have been written before the
// watch on a new directory was in place.
func (w *NoticeWatcher) addTree(dir string, enqueue bool) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watching directory %s: %w", dir, err)
			}
			return nil
		}
		if !entry.IsDir() {
			if enqueue && entry.Name() == w.config.Filename {
				w.enqueue(path)
			}
			return nil
		}

		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watching directory %s: %w", path, err)
		}
		w.mu.Lock()
		w.directories[path] = true
		w.mu.Unlock()
		return nil
	})
}

func (w *NoticeWatcher) enqueue(path string) {
	w.mu.Lock()
	w.pendingChanges[path] = time.Now()
	w.mu.Unlock()
}

// watchLoop handles file system events.
func (w *NoticeWatcher) watchLoop(ctx context.Context) {
	ticker := time.NewTicker(max(w.config.Debounce/2, time.Millisecond))
	defer func() {
		ticker.Stop()
		w.watcher.Close()
		w.mu.Lock()
		w.watcher = nil
		w.mu.Unlock()
		close(w.stopped)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopChan:
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
			w.logger.Warn("watch error", "error", err)

		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *NoticeWatcher) handleEvent(event fsnotify.Event) {
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		info, err := os.Stat(event.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			if err := w.addTree(event.Name, true); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
		if filepath.Base(event.Name) == w.config.Filename {
			w.enqueue(event.Name)
		}

	case event.Op&fsnotify.Write == fsnotify.Write:
		if filepath.Base(event.Name) == w.config.Filename {
			w.enqueue(event.Name)
		}

	case event.Op&fsnotify.Remove == fsnotify.Remove, event.Op&fsnotify.Rename == fsnotify.Rename:
		w.mu.Lock()
		delete(w.pendingChanges, event.Name)
		delete(w.directories, event.Name)
		w.mu.Unlock()
	}
}

// flush hands every notice unchanged for the debounce interval to the
// handler, in the watch goroutine.
func (w *NoticeWatcher) flush(now time.Time) {
	w.mu.Lock()
	var ready []string
	for path, changed := range w.pendingChanges {
		if now.Sub(changed) >= w.config.Debounce {
			ready = append(ready, path)
			delete(w.pendingChanges, path)
		}
	}
	w.mu.Unlock()
	sort.Strings(ready)

	for _, path := range ready {
		w.logger.Debug("notice settled", "path", path)
		w.handler(path)

		w.mu.Lock()
		w.handled++
		w.lastNotice = path
		w.lastHandled = now
		w.mu.Unlock()
	}
}

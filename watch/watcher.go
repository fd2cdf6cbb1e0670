// Package watch re-triggers pipeline runs when corpus input files
// change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config configures the file watcher.
type Config struct {
	// Paths are the resolved input files to watch.
	Paths []string

	// DebounceDelay is how long to wait for more changes before
	// emitting an event. Zero means 500ms; editors and sync tools
	// write corpus files in bursts.
	DebounceDelay time.Duration

	// Logger for watch events.
	Logger *slog.Logger
}

// Event is one debounced batch of changed input files.
type Event struct {
	// Paths are the files that changed in this burst.
	Paths []string
}

// Watcher watches corpus input files and emits debounced change
// events.
type Watcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect changes before emitting
	pendingMu sync.Mutex
	pending   map[string]struct{}

	watched map[string]struct{}
	events  chan Event
}

// NewWatcher creates a watcher over the given files.
func NewWatcher(config Config) (*Watcher, error) {
	if len(config.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 500 * time.Millisecond
	}

	watched := make(map[string]struct{}, len(config.Paths))
	for _, p := range config.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		watched[abs] = struct{}{}
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]struct{}),
		watched: watched,
		events:  make(chan Event, 16),
	}, nil
}

// Events returns the channel of debounced change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching. Directories are watched rather than the files
// themselves so atomic save (write temp, rename over) is still seen.
// Blocks until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]struct{})
	for path := range w.watched {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w.logger.Info("input watcher started",
		"files", len(w.watched),
		"directories", len(dirs),
		"debounce", w.config.DebounceDelay)

	timer := time.NewTimer(w.config.DebounceDelay)
	if !timer.Stop() {
		<-timer.C
	}

	defer w.watcher.Close()
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			abs, _ := filepath.Abs(event.Name)
			w.pendingMu.Lock()
			w.pending[abs] = struct{}{}
			w.pendingMu.Unlock()
			timer.Reset(w.config.DebounceDelay)
			w.logger.Debug("input change detected", "path", event.Name, "op", event.Op.String())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			w.pendingMu.Lock()
			paths := make([]string, 0, len(w.pending))
			for p := range w.pending {
				paths = append(paths, p)
			}
			w.pending = make(map[string]struct{})
			w.pendingMu.Unlock()

			if len(paths) == 0 {
				continue
			}
			select {
			case w.events <- Event{Paths: paths}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// relevant reports whether an fsnotify event touches a watched file
// with an operation that changes its content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.watched[abs]
	return ok
}

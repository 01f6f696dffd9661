package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Operation is the kind of change seen on a file.
type Operation int

const (
	// OpCreate means the file appeared.
	OpCreate Operation = iota
	// OpModify means the file's content changed.
	OpModify
	// OpDelete means the file was removed.
	OpDelete
	// OpRename means the file was moved away.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// FileEvent is one change to a watched file.
type FileEvent struct {
	// Path is the absolute path of the watched file.
	Path      string
	Operation Operation
	Timestamp time.Time
}

// DefaultPollInterval is used when fsnotify is unavailable.
const DefaultPollInterval = time.Second

// Watcher watches a fixed set of files.
type Watcher struct {
	files        map[string]struct{}
	debouncer    *Debouncer
	pollInterval time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a Watcher for files, emitting batches after window of quiet.
func New(window time.Duration, files ...string) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		set[abs] = struct{}{}
	}
	return &Watcher{
		files:        set,
		debouncer:    NewDebouncer(window),
		pollInterval: DefaultPollInterval,
		stopCh:       make(chan struct{}),
	}, nil
}

// Events returns debounced batches. The channel closes when the watcher stops.
func (w *Watcher) Events() <-chan []FileEvent {
	return w.debouncer.Output()
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.debouncer.Stop()
	})
	return nil
}

// Run watches until ctx is done or Stop is called. It returns ctx.Err() on
// cancellation and nil after Stop.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := w.newFsnotify()
	if err != nil {
		slog.Warn("watcher_fsnotify_unavailable", slog.String("error", err.Error()))
		return w.poll(ctx)
	}
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher_error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) newFsnotify() (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dirs := make(map[string]struct{})
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return fsw, nil
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if _, ok := w.files[path]; !ok {
		return
	}

	var op Operation
	switch {
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
	case event.Op&fsnotify.Write != 0:
		op = OpModify
	case event.Op&fsnotify.Remove != 0:
		op = OpDelete
	case event.Op&fsnotify.Rename != 0:
		op = OpRename
	default:
		// Chmod alone does not change content.
		return
	}

	slog.Debug("watcher_event", slog.String("path", path), slog.String("op", op.String()))
	w.debouncer.Add(FileEvent{Path: path, Operation: op, Timestamp: time.Now()})
}

package watcher

import (
	"context"
	"os"
	"time"
)

type fileSnapshot struct {
	exists  bool
	modTime time.Time
	size    int64
}

func snapshot(path string) fileSnapshot {
	info, err := os.Stat(path)
	if err != nil {
		return fileSnapshot{}
	}
	return fileSnapshot{exists: true, modTime: info.ModTime(), size: info.Size()}
}

// poll compares each file's stat against the previous tick.
func (w *Watcher) poll(ctx context.Context) error {
	state := make(map[string]fileSnapshot, len(w.files))
	for f := range w.files {
		state[f] = snapshot(f)
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			for f, prev := range state {
				cur := snapshot(f)
				if op, changed := diff(prev, cur); changed {
					w.debouncer.Add(FileEvent{Path: f, Operation: op, Timestamp: time.Now()})
				}
				state[f] = cur
			}
		}
	}
}

func diff(prev, cur fileSnapshot) (Operation, bool) {
	switch {
	case !prev.exists && cur.exists:
		return OpCreate, true
	case prev.exists && !cur.exists:
		return OpDelete, true
	case cur.exists && (!cur.modTime.Equal(prev.modTime) || cur.size != prev.size):
		return OpModify, true
	default:
		return 0, false
	}
}

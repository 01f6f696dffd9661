// Package watcher reports changes to a fixed set of input files.
//
// fsnotify watches the files' parent directories, so editors that save by
// renaming a temp file over the original are still seen. If fsnotify cannot
// be set up, the files are polled by size and modification time instead.
// Bursts of events are debounced into one batch.
//
// Usage:
//
//	w, err := watcher.New(500*time.Millisecond, "directory.txt", "find.txt")
//	if err != nil {
//	    return err
//	}
//	go func() { _ = w.Run(ctx) }()
//	for batch := range w.Events() {
//	    // re-run
//	}
package watcher

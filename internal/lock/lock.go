// Package lock serializes benchmark runs across processes so two runs on one
// machine do not skew each other's wall-clock timings.
package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
)

// FileName is the lock file created inside the data directory.
const FileName = "run.lock"

// retryDelay is how often a waiting Acquire polls the lock.
const retryDelay = 100 * time.Millisecond

// RunLock is an exclusive cross-process lock backed by gofrs/flock.
type RunLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// New creates a lock at <dir>/run.lock. Nothing is touched until Acquire.
func New(dir string) *RunLock {
	path := filepath.Join(dir, FileName)
	return &RunLock{
		path:  path,
		flock: flock.New(path),
	}
}

// Acquire takes the lock. With wait it polls until the lock is free or ctx
// is done; without it a held lock returns ERR_504_LOCK_BUSY.
func (l *RunLock) Acquire(ctx context.Context, wait bool) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return amerrors.IOError("failed to create lock directory", err).WithDetail("path", l.path)
	}

	var (
		acquired bool
		err      error
	)
	if wait {
		acquired, err = l.flock.TryLockContext(ctx, retryDelay)
	} else {
		acquired, err = l.flock.TryLock()
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return amerrors.InternalError(fmt.Sprintf("failed to acquire lock %s", l.path), err)
	}
	if !acquired {
		return amerrors.New(amerrors.ErrCodeLockBusy, "another benchmark is running", nil).
			WithDetail("lock", l.path).
			WithSuggestion("Wait for it to finish or pass --wait-lock")
	}

	l.locked = true
	return nil
}

// Release drops the lock. It is safe to call when not held.
func (l *RunLock) Release() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Path returns the lock file path.
func (l *RunLock) Path() string {
	return l.path
}

// Held reports whether this RunLock currently owns the lock.
func (l *RunLock) Held() bool {
	return l.locked
}

package toc

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	tocerrors "github.com/Aman-CERP/tocgen/internal/errors"
)

// lockRetryDelay is how often a contended lock is retried.
const lockRetryDelay = 50 * time.Millisecond

// OutputLock provides cross-process locking of one output file using
// gofrs/flock. The lock file is a hidden sibling of the output, so it is
// owned by whoever can write the output and never matches the scan filter.
type OutputLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewOutputLock creates the lock guarding output.
// The lock file will be created at <dir>/.<name>.lock
func NewOutputLock(output string) *OutputLock {
	lockPath := LockPath(output)
	return &OutputLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// LockPath returns the lock file path for output.
func LockPath(output string) string {
	dir, name := filepath.Split(filepath.Clean(output))
	return filepath.Join(dir, "."+name+".lock")
}

// Lock acquires the lock, waiting until it is free or ctx is done.
func (l *OutputLock) Lock(ctx context.Context) error {
	acquired, err := l.flock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return tocerrors.IOError(tocerrors.ErrCodeLockFailed, "failed to acquire output lock", err).
			WithDetail("lock", l.path)
	}
	if !acquired {
		return tocerrors.New(tocerrors.ErrCodeLockFailed, "output lock is held by another process", nil).
			WithDetail("lock", l.path)
	}

	l.locked = true
	return nil
}

// Unlock releases the lock.
// It's safe to call Unlock multiple times or on an unlocked OutputLock.
func (l *OutputLock) Unlock() error {
	if !l.locked {
		return nil
	}

	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return tocerrors.New(tocerrors.ErrCodeLockFailed, "failed to release output lock", err)
	}
	return nil
}

// Path returns the path to the lock file.
func (l *OutputLock) Path() string {
	return l.path
}

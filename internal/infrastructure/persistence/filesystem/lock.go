package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// BoardLock serializes whole load/save transactions. The mutex covers
// goroutines of this process; the optional file lock covers other processes
// sharing the same data directory.
type BoardLock struct {
	mu      sync.Mutex
	file    *flock.Flock
	timeout time.Duration
}

// NewBoardLock creates a lock. An empty dataDir disables the file lock,
// which is what in-memory filesystems want.
func NewBoardLock(dataDir string, timeout time.Duration) *BoardLock {
	l := &BoardLock{timeout: timeout}
	if dataDir != "" {
		l.file = flock.New(filepath.Join(dataDir, boardLockFile))
	}
	return l
}

// Lock acquires the lock and returns the function that releases it
func (l *BoardLock) Lock(ctx context.Context) (func(), error) {
	l.mu.Lock()
	if l.file == nil {
		return l.mu.Unlock, nil
	}

	lockCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	locked, err := l.file.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil || !locked {
		l.mu.Unlock()
		if err == nil {
			err = fmt.Errorf("lock held by another process")
		}
		return nil, fmt.Errorf("failed to acquire board lock %s: %w", l.file.Path(), err)
	}

	return func() {
		_ = l.file.Unlock()
		l.mu.Unlock()
	}, nil
}

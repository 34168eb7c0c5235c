package harness

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = "hazcat.lock"

// runLock is an advisory file lock held for the duration of one harness run
// so concurrent invocations cannot interleave scenario file-system side
// effects in the same scratch directory.
type runLock struct {
	fl *flock.Flock
}

func acquireRunLock(dir string) (*runLock, error) {
	fl := flock.New(filepath.Join(dir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("scratch directory %s is locked by another harness run", dir)
	}
	return &runLock{fl: fl}, nil
}

func (l *runLock) release() {
	if l == nil || l.fl == nil {
		return
	}
	// Best effort; the lock dies with the process anyway.
	_ = l.fl.Unlock()
}

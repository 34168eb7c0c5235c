package harness

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunLockIsExclusive(t *testing.T) {
	dir := t.TempDir()

	first, err := acquireRunLock(dir)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	if _, err := acquireRunLock(dir); err == nil {
		t.Error("second acquire succeeded while the lock was held")
	}

	first.release()

	second, err := acquireRunLock(dir)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	second.release()

	if _, err := os.Stat(filepath.Join(dir, lockFileName)); err != nil {
		t.Errorf("lock file missing after use: %v", err)
	}
}

func TestRunLockReleaseIsNilSafe(t *testing.T) {
	var l *runLock
	l.release()
}

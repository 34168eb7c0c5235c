package scenarios

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/torosent/hazcat/internal/catalog"
)

func resourceScenarios() []catalog.ScenarioRecord {
	return []catalog.ScenarioRecord{
		{
			ID:          "resource/double-close",
			Category:    catalog.CategoryResource,
			Tier:        catalog.TierSafe,
			Description: "file handle closed twice; the second close reports an error instead of corrupting state",
			Run:         runDoubleClose,
		},
		{
			ID:          "resource/file-handle-leak",
			Category:    catalog.CategoryResource,
			Tier:        catalog.TierSafe,
			Description: "temporary file opened on a path where close could be skipped; cleaned up before return",
			Run:         runFileHandleLeak,
		},
		{
			ID:          "resource/lock-leak",
			Category:    catalog.CategoryResource,
			Tier:        catalog.TierSafe,
			Description: "advisory file lock acquired with a release-free path; released on the inert path",
			Run:         runLockLeak,
		},
	}
}

func runDoubleClose(ctx context.Context, w io.Writer) error {
	f, err := os.CreateTemp("", "hazcat-double-close-*.txt")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if err := f.Close(); err != nil {
		return fmt.Errorf("first close: %w", err)
	}
	// Second close on an already-closed handle. In Go this is an error
	// return, not undefined behavior, but it is the same lifecycle defect.
	if err := f.Close(); err != nil {
		fmt.Fprintf(w, "checked double close (second close failed as expected: %v)\n", err)
	} else {
		fmt.Fprintln(w, "checked double close (second close unexpectedly succeeded)")
	}
	return nil
}

// runFileHandleLeak mirrors the classic missing-fclose path: the handle is
// opened, a branch models the early exit where Close would be skipped, and
// the inert path closes and removes the file so no artifact outlives the
// scenario.
func runFileHandleLeak(ctx context.Context, w io.Writer) error {
	f, err := os.CreateTemp("", "hazcat-resource-*.txt")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()

	if _, err := f.WriteString("temporary file\n"); err != nil {
		f.Close()
		os.Remove(name)
		return fmt.Errorf("write temp file: %w", err)
	}

	leakPath := true
	if leakPath {
		// On this path a missing Close leaks the descriptor. Resource
		// trackers flag the handle as possibly unreleased here.
		fmt.Fprintln(w, "opened file handle on potential leak path")
	}

	if err := f.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("remove temp file: %w", err)
	}
	fmt.Fprintln(w, "checked file handle lifecycle (artifact removed)")
	return nil
}

// runLockLeak exercises the same lifecycle defect with an advisory file lock
// instead of a descriptor: a branch models the return that skips Unlock.
func runLockLeak(ctx context.Context, w io.Writer) error {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("hazcat-lock-leak-%d.lock", os.Getpid()))
	lock := flock.New(path)
	defer os.Remove(path)

	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	if !locked {
		fmt.Fprintln(w, "file lock busy; lock-leak demo skipped this run")
		return nil
	}

	leakPath := true
	if leakPath {
		// Returning here would hold the lock until process exit.
		fmt.Fprintln(w, "holding file lock on potential leak path")
	}

	if err := lock.Unlock(); err != nil {
		return fmt.Errorf("release file lock: %w", err)
	}
	fmt.Fprintln(w, "checked file lock lifecycle (lock released)")
	return nil
}

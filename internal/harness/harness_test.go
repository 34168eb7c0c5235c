package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/torosent/hazcat/internal/catalog"
	"github.com/torosent/hazcat/internal/metrics"
)

func okScenario(id string) catalog.ScenarioRecord {
	return catalog.ScenarioRecord{
		ID:          id,
		Category:    catalog.CategoryNumeric,
		Tier:        catalog.TierSafe,
		Description: "completes immediately",
		Run: func(ctx context.Context, w io.Writer) error {
			fmt.Fprintf(w, "checked %s\n", id)
			return nil
		},
	}
}

// hangScenario blocks until the harness context expires. The payload itself
// returns once the per-scenario context is cancelled, so abandoned goroutines
// do not outlive the test.
func hangScenario(id string, tier catalog.RiskTier) catalog.ScenarioRecord {
	return catalog.ScenarioRecord{
		ID:          id,
		Category:    catalog.CategoryConcurrency,
		Tier:        tier,
		Description: "blocks until cancelled",
		Run: func(ctx context.Context, w io.Writer) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}
}

func newTestRegistry(t *testing.T, recs ...catalog.ScenarioRecord) *catalog.Registry {
	t.Helper()
	reg := catalog.NewRegistry()
	for _, rec := range recs {
		if err := reg.Register(rec); err != nil {
			t.Fatalf("register %s: %v", rec.ID, err)
		}
	}
	return reg
}

func TestDangerousScenariosQuarantinedByDefault(t *testing.T) {
	reg := newTestRegistry(t,
		okScenario("numeric/ok"),
		hangScenario("concurrency/hang", catalog.TierDangerous),
	)

	runner := New(reg, Options{ScratchDir: t.TempDir()})

	start := time.Now()
	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Run took %s; quarantine should make it prompt", elapsed)
	}

	if len(result.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(result.Outcomes))
	}
	out := result.Outcomes[1]
	if out.Executed {
		t.Error("quarantined scenario was executed")
	}
	if out.Skipped != SkipQuarantined {
		t.Errorf("Skipped = %q, want %q", out.Skipped, SkipQuarantined)
	}
	if result.Stats.Skipped != 1 || result.Stats.Completed != 1 {
		t.Errorf("stats = %d skipped / %d completed, want 1/1", result.Stats.Skipped, result.Stats.Completed)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestRunDangerousWithTimeout(t *testing.T) {
	reg := newTestRegistry(t, hangScenario("concurrency/hang", catalog.TierDangerous))

	runner := New(reg, Options{
		RunDangerous: true,
		Timeout:      50 * time.Millisecond,
		ScratchDir:   t.TempDir(),
	})

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := result.Outcomes[0]
	if !out.Executed {
		t.Fatal("scenario was not executed despite RunDangerous")
	}
	if !out.TimedOut {
		t.Error("TimedOut = false, want true")
	}
	if out.Complete {
		t.Error("Complete = true for a timed-out scenario")
	}
	if result.Stats.TimedOut != 1 {
		t.Errorf("stats.TimedOut = %d, want 1", result.Stats.TimedOut)
	}
}

// A SAFE or FLAKY scenario that hits the timeout breaks its tier contract;
// the run completes but reports an integrity failure naming the scenario.
func TestIntegrityErrorOnMisclassifiedScenario(t *testing.T) {
	reg := newTestRegistry(t,
		hangScenario("concurrency/mislabeled", catalog.TierFlaky),
		okScenario("numeric/ok"),
	)

	runner := New(reg, Options{
		Timeout:    50 * time.Millisecond,
		ScratchDir: t.TempDir(),
	})

	result, err := runner.Run(context.Background())
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("Run error = %v, want *IntegrityError", err)
	}
	if len(integrity.IDs) != 1 || integrity.IDs[0] != "concurrency/mislabeled" {
		t.Errorf("IntegrityError.IDs = %v, want [concurrency/mislabeled]", integrity.IDs)
	}

	// The violation does not abort the run.
	if len(result.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(result.Outcomes))
	}
	if !result.Outcomes[1].Complete {
		t.Error("scenario after the violation did not complete")
	}
}

func TestPanicIsRecoveredAndReported(t *testing.T) {
	reg := newTestRegistry(t, catalog.ScenarioRecord{
		ID:          "numeric/panics",
		Category:    catalog.CategoryNumeric,
		Tier:        catalog.TierSafe,
		Description: "panics immediately",
		Run: func(ctx context.Context, w io.Writer) error {
			panic("boom")
		},
	})

	runner := New(reg, Options{ScratchDir: t.TempDir()})
	result, err := runner.Run(context.Background())

	out := result.Outcomes[0]
	if out.Panic != "boom" {
		t.Errorf("Panic = %q, want %q", out.Panic, "boom")
	}
	if out.Complete {
		t.Error("Complete = true for a panicked scenario")
	}

	// A panicking SAFE scenario is a tier violation.
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("Run error = %v, want *IntegrityError", err)
	}
}

func TestFailedScenarioIsNotATierViolation(t *testing.T) {
	wantErr := errors.New("expected failure")
	reg := newTestRegistry(t, catalog.ScenarioRecord{
		ID:          "numeric/fails",
		Category:    catalog.CategoryNumeric,
		Tier:        catalog.TierSafe,
		Description: "returns an error",
		Run: func(ctx context.Context, w io.Writer) error {
			return wantErr
		},
	})

	runner := New(reg, Options{ScratchDir: t.TempDir()})
	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := result.Outcomes[0]
	if !errors.Is(out.Err, wantErr) {
		t.Errorf("Err = %v, want %v", out.Err, wantErr)
	}
	if out.Error == "" {
		t.Error("Error string not populated")
	}
	if result.Stats.Failed != 1 {
		t.Errorf("stats.Failed = %d, want 1", result.Stats.Failed)
	}
}

func TestOnlyAndSkipFilters(t *testing.T) {
	reg := newTestRegistry(t,
		okScenario("numeric/a"),
		okScenario("numeric/b"),
		okScenario("numeric/c"),
	)

	runner := New(reg, Options{
		Only:       []string{"numeric/a", "numeric/c"},
		Skip:       []string{"numeric/c"},
		ScratchDir: t.TempDir(),
	})

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := map[string]string{
		"numeric/a": "",
		"numeric/b": SkipFiltered,
		"numeric/c": SkipFiltered,
	}
	for _, out := range result.Outcomes {
		if out.Skipped != want[out.ID] {
			t.Errorf("%s: Skipped = %q, want %q", out.ID, out.Skipped, want[out.ID])
		}
	}
}

func TestOutcomesFollowRegistrationOrder(t *testing.T) {
	ids := []string{"numeric/c", "numeric/a", "numeric/b"}
	recs := make([]catalog.ScenarioRecord, 0, len(ids))
	for _, id := range ids {
		recs = append(recs, okScenario(id))
	}
	reg := newTestRegistry(t, recs...)

	var buf bytes.Buffer
	runner := New(reg, Options{Writer: &buf, ScratchDir: t.TempDir()})
	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i, id := range ids {
		if result.Outcomes[i].ID != id {
			t.Errorf("Outcomes[%d].ID = %q, want %q", i, result.Outcomes[i].ID, id)
		}
	}
	if buf.Len() == 0 {
		t.Error("payload output was not forwarded to the writer")
	}
}

func TestSoakIterations(t *testing.T) {
	var runs int64
	reg := newTestRegistry(t, catalog.ScenarioRecord{
		ID:          "numeric/counts",
		Category:    catalog.CategoryNumeric,
		Tier:        catalog.TierSafe,
		Description: "counts executions",
		Run: func(ctx context.Context, w io.Writer) error {
			atomic.AddInt64(&runs, 1)
			fmt.Fprintln(w, "checked")
			return nil
		},
	})

	collector := metrics.NewCollector()
	var buf bytes.Buffer
	runner := New(reg, Options{
		Iterations: 3,
		Writer:     &buf,
		Collector:  collector,
		ScratchDir: t.TempDir(),
	})

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := atomic.LoadInt64(&runs); got != 3 {
		t.Errorf("payload ran %d times, want 3", got)
	}
	// One outcome per scenario regardless of soak passes.
	if len(result.Outcomes) != 1 {
		t.Errorf("got %d outcomes, want 1", len(result.Outcomes))
	}
	if result.Stats.Completed != 3 {
		t.Errorf("stats.Completed = %d, want 3", result.Stats.Completed)
	}
	// Soak passes suppress payload output; only the first pass writes.
	if got := bytes.Count(buf.Bytes(), []byte("checked")); got != 1 {
		t.Errorf("writer saw %d payload lines, want 1", got)
	}
}

func TestSoakSkipsQuarantinedScenarios(t *testing.T) {
	reg := newTestRegistry(t,
		okScenario("numeric/ok"),
		hangScenario("concurrency/hang", catalog.TierDangerous),
	)

	runner := New(reg, Options{Iterations: 2, ScratchDir: t.TempDir()})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := runner.Run(context.Background()); err != nil {
			t.Errorf("Run: %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("soak pass invoked a quarantined scenario")
	}
}

func TestRunRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// DANGEROUS tier: cancelling mid-payload may surface as either a clean
	// return or a context error, and neither is a tier violation.
	reg := newTestRegistry(t,
		catalog.ScenarioRecord{
			ID:          "concurrency/cancels",
			Category:    catalog.CategoryConcurrency,
			Tier:        catalog.TierDangerous,
			Description: "cancels the run",
			Run: func(ctx context.Context, w io.Writer) error {
				cancel()
				fmt.Fprintln(w, "checked")
				return nil
			},
		},
		okScenario("numeric/never-runs"),
	)

	runner := New(reg, Options{RunDangerous: true, ScratchDir: t.TempDir()})
	result, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Outcomes) != 1 {
		t.Errorf("got %d outcomes after cancellation, want 1", len(result.Outcomes))
	}
}

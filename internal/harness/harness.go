package harness

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/torosent/hazcat/internal/catalog"
	"github.com/torosent/hazcat/internal/metrics"
	"github.com/torosent/hazcat/internal/tracing"
)

// Skip reasons recorded on non-executed outcomes. Quarantine must be
// distinguishable from filtering in every report.
const (
	SkipQuarantined = "quarantined"
	SkipFiltered    = "filtered"
)

// Outcome records what happened to one scenario during one pass.
type Outcome struct {
	ID       string           `json:"id"`
	Category catalog.Category `json:"category"`
	Tier     catalog.RiskTier `json:"tier"`
	Executed bool             `json:"executed"`
	Complete bool             `json:"completed"`
	Skipped  string           `json:"skipped,omitempty"`
	TimedOut bool             `json:"timed_out,omitempty"`
	Err      error            `json:"-"`
	Error    string           `json:"error,omitempty"`
	Panic    string           `json:"panic,omitempty"`
	Duration time.Duration    `json:"duration_ns"`
}

// RunResult is the batch of outcomes for one harness run.
type RunResult struct {
	RunID    string        `json:"run_id"`
	Outcomes []Outcome     `json:"outcomes"`
	Stats    metrics.Stats `json:"stats"`
	Duration time.Duration `json:"-"`
}

// IntegrityError reports SAFE or FLAKY scenarios that hung or panicked.
// Those tiers promise bounded, non-fatal execution, so a violation is a
// defect in the catalog itself, not an expected outcome.
type IntegrityError struct {
	IDs []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("harness integrity failure: misclassified scenarios: %s", strings.Join(e.IDs, ", "))
}

// Runner executes a catalog sequentially: concurrency lives inside a single
// scenario's payload and never overlaps across scenarios.
type Runner struct {
	reg *catalog.Registry
	opt Options
}

// New creates a Runner over the given registry.
func New(reg *catalog.Registry, opt Options) *Runner {
	opt.normalize()
	return &Runner{reg: reg, opt: opt}
}

// Run executes the catalog in registration order and returns one outcome per
// scenario, in the same order. Under default quarantine the call is
// guaranteed to return: DANGEROUS scenarios are never invoked. With
// RunDangerous set and no Timeout, Run may block forever by design.
//
// A non-nil error of type *IntegrityError means a SAFE or FLAKY scenario
// violated its tier contract; the remaining scenarios still ran and the
// result is complete.
func (r *Runner) Run(ctx context.Context) (RunResult, error) {
	start := time.Now()
	result := RunResult{RunID: ulid.Make().String()}

	lock, err := acquireRunLock(r.opt.ScratchDir)
	if err != nil {
		return result, err
	}
	defer lock.release()

	var integrity []string
	for _, rec := range r.reg.List() {
		out := r.runOne(ctx, rec, r.opt.Writer)
		result.Outcomes = append(result.Outcomes, out)
		r.record(rec, out)
		if tierViolated(out) {
			integrity = append(integrity, out.ID)
		}
		if ctx.Err() != nil {
			break
		}
	}

	if r.opt.Iterations > 1 && ctx.Err() == nil {
		if err := r.soak(ctx); err != nil && ctx.Err() == nil {
			return result, err
		}
	}

	result.Duration = time.Since(start)
	result.Stats = r.opt.Collector.Stats(result.Duration)

	if len(integrity) > 0 {
		return result, &IntegrityError{IDs: integrity}
	}
	return result, nil
}

// soak re-executes the non-quarantined, non-filtered subset for the
// remaining iterations, feeding durations to the collector. Payload output
// is suppressed; the first pass already reported it.
func (r *Runner) soak(ctx context.Context) error {
	limiter := r.opt.LimiterFactory(r.opt.RatePerSecond)
	for iter := 1; iter < r.opt.Iterations; iter++ {
		for _, rec := range r.reg.List() {
			if reason := r.skipReason(rec); reason != "" {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			out := r.invoke(ctx, rec, io.Discard)
			r.record(rec, out)
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
	return nil
}

// runOne applies quarantine and filters, then invokes the payload.
func (r *Runner) runOne(ctx context.Context, rec catalog.ScenarioRecord, w io.Writer) Outcome {
	if reason := r.skipReason(rec); reason != "" {
		return Outcome{
			ID:       rec.ID,
			Category: rec.Category,
			Tier:     rec.Tier,
			Skipped:  reason,
		}
	}
	return r.invoke(ctx, rec, w)
}

func (r *Runner) skipReason(rec catalog.ScenarioRecord) string {
	if rec.Tier == catalog.TierDangerous && !r.opt.RunDangerous {
		return SkipQuarantined
	}
	if len(r.opt.Only) > 0 && !containsID(r.opt.Only, rec.ID) {
		return SkipFiltered
	}
	if containsID(r.opt.Skip, rec.ID) {
		return SkipFiltered
	}
	return ""
}

type payloadResult struct {
	err        error
	panicValue any
}

// invoke runs one payload under the timeout policy. The payload executes in
// its own goroutine with panic recovery; on timeout the goroutine is
// abandoned (the buffered channel lets its late send complete) and the
// outcome is marked TimedOut rather than failed.
func (r *Runner) invoke(ctx context.Context, rec catalog.ScenarioRecord, w io.Writer) Outcome {
	out := Outcome{
		ID:       rec.ID,
		Category: rec.Category,
		Tier:     rec.Tier,
		Executed: true,
	}

	runCtx := ctx
	if r.opt.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.opt.Timeout)
		defer cancel()
	}

	spanCtx, span := tracing.StartScenarioSpan(runCtx, r.opt.Tracer, rec.ID, string(rec.Category), string(rec.Tier))

	done := make(chan payloadResult, 1)
	start := time.Now()
	go func() {
		defer func() {
			if v := recover(); v != nil {
				done <- payloadResult{panicValue: v}
			}
		}()
		done <- payloadResult{err: rec.Run(spanCtx, w)}
	}()

	select {
	case res := <-done:
		out.Duration = time.Since(start)
		out.Err = res.err
		if res.panicValue != nil {
			out.Panic = fmt.Sprint(res.panicValue)
		} else if res.err != nil {
			out.Error = res.err.Error()
		} else {
			out.Complete = true
		}
	case <-runCtx.Done():
		out.Duration = time.Since(start)
		out.TimedOut = true
		out.Err = runCtx.Err()
	}

	tracing.EndSpan(span, out.Err,
		attribute.Bool("hazcat.timed_out", out.TimedOut),
		attribute.Bool("hazcat.completed", out.Complete),
	)
	return out
}

func (r *Runner) record(rec catalog.ScenarioRecord, out Outcome) {
	kind := metrics.OutcomeCompleted
	switch {
	case !out.Executed:
		kind = metrics.OutcomeSkipped
	case out.TimedOut:
		kind = metrics.OutcomeTimedOut
	case out.Err != nil || out.Panic != "":
		kind = metrics.OutcomeFailed
	}
	r.opt.Collector.Record(string(rec.Category), out.Duration, kind)
}

// tierViolated reports whether an outcome breaks the SAFE/FLAKY contract of
// bounded, non-fatal execution. DANGEROUS scenarios are exempt: hanging is
// their documented behavior when run under an explicit override.
func tierViolated(out Outcome) bool {
	if out.Tier == catalog.TierDangerous || !out.Executed {
		return false
	}
	return out.TimedOut || out.Panic != ""
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

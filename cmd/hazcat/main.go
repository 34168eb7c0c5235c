package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/torosent/hazcat/internal/catalog"
	"github.com/torosent/hazcat/internal/config"
	"github.com/torosent/hazcat/internal/harness"
	"github.com/torosent/hazcat/internal/metrics"
	"github.com/torosent/hazcat/internal/output"
	"github.com/torosent/hazcat/internal/scenarios"
	"github.com/torosent/hazcat/internal/threshold"
	"github.com/torosent/hazcat/internal/tracing"
	"github.com/torosent/hazcat/internal/verify"
)

const progressInterval = time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Catalog construction happens once at startup; a duplicate or
	// malformed registration is fatal before anything executes.
	registry, err := scenarios.Catalog()
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	if cfg.List {
		printCatalog(registry)
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Verify {
		return runVerify(ctx, cfg)
	}

	thresholds, err := threshold.ParseMultiple(cfg.Thresholds)
	if err != nil {
		return err
	}

	provider, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: trace shutdown: %v\n", err)
		}
	}()

	collector := metrics.NewCollector()
	runner := harness.New(registry, harness.Options{
		RunDangerous:  cfg.RunDangerous,
		Timeout:       cfg.Timeout,
		Only:          cfg.Only,
		Skip:          cfg.Skip,
		Iterations:    cfg.Iterations,
		RatePerSecond: cfg.Rate,
		ScratchDir:    cfg.ScratchDir,
		Writer:        os.Stdout,
		Collector:     collector,
		Tracer:        provider.Tracer(),
	})

	var progress *output.ProgressReporter
	if cfg.Iterations > 1 && !cfg.JSONOutput {
		progress = output.NewProgressReporter(collector, progressInterval, os.Stderr)
		progress.Start()
	}

	result, runErr := runner.Run(ctx)
	if progress != nil {
		progress.Stop()
		fmt.Fprintln(os.Stderr)
	}

	if cfg.LogErrors {
		for _, out := range result.Outcomes {
			if out.Executed && !out.Complete && !out.TimedOut {
				fmt.Fprintf(os.Stderr, "scenario %s failed: %v\n", out.ID, out.Err)
			}
		}
	}

	if cfg.JSONOutput {
		if err := output.PrintJSONReport(os.Stdout, result); err != nil {
			return err
		}
	} else {
		output.PrintReport(os.Stdout, result)
	}

	if len(thresholds) > 0 {
		failed := false
		fmt.Println("\nThresholds:")
		for _, res := range threshold.NewEvaluator(thresholds).Evaluate(result.Stats) {
			fmt.Printf("  %s\n", res.Message)
			if !res.Pass {
				failed = true
			}
		}
		if failed {
			return fmt.Errorf("one or more thresholds failed")
		}
	}

	if runErr != nil {
		return runErr
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}
	return nil
}

// runVerify executes the external analyzer and compares its findings
// against the expected-findings manifest.
func runVerify(ctx context.Context, cfg *config.Config) error {
	manifest, err := verify.LoadManifest(cfg.Manifest)
	if err != nil {
		return err
	}

	raw, err := verify.RunAnalyzer(ctx, cfg.Analyzer, ".")
	if err != nil {
		return err
	}
	findings, err := verify.ParseFindings(raw)
	if err != nil {
		return err
	}

	report := verify.Compare(manifest, findings)
	for _, res := range report.Results {
		status := "found"
		if !res.Found {
			status = "MISSING"
		}
		fmt.Printf("%-8s %s (%s: %q)\n", status, res.Expectation.Scenario, res.Expectation.Check, res.Expectation.Match)
	}
	for _, f := range report.Unexpected {
		fmt.Printf("extra    %s at %s: %s\n", f.Check, f.Position, f.Message)
	}

	if missing := report.Missing(); len(missing) > 0 {
		return fmt.Errorf("analyzer missed %d expected finding(s)", len(missing))
	}
	return nil
}

func printCatalog(reg *catalog.Registry) {
	for _, rec := range reg.List() {
		fmt.Printf("%-34s %-15s %-9s %s\n", rec.ID, "["+string(rec.Category)+"]", rec.Tier, rec.Description)
	}
}

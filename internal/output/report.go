package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/torosent/hazcat/internal/harness"
)

// PrintReport outputs a human-readable summary of one harness run.
func PrintReport(w io.Writer, result harness.RunResult) {
	fmt.Fprintf(w, "\n--- Hazard Run %s ---\n", result.RunID)
	for _, out := range result.Outcomes {
		fmt.Fprintf(w, "  %-34s %-15s %-9s %s\n", out.ID, "["+string(out.Category)+"]", out.Tier, outcomeStatus(out))
	}

	stats := result.Stats
	fmt.Fprintf(w, "\nScenarios:         %d\n", stats.Total)
	fmt.Fprintf(w, "Completed:         %d\n", stats.Completed)
	fmt.Fprintf(w, "Failed:            %d\n", stats.Failed)
	fmt.Fprintf(w, "Timed out:         %d\n", stats.TimedOut)
	fmt.Fprintf(w, "Skipped:           %d\n", stats.Skipped)
	fmt.Fprintf(w, "Duration:          %s\n", stats.Duration)
	fmt.Fprintln(w, "\nScenario duration:")
	fmt.Fprintf(w, "  Min:             %s\n", stats.MinDuration)
	fmt.Fprintf(w, "  Max:             %s\n", stats.MaxDuration)
	fmt.Fprintf(w, "  Mean:            %s\n", stats.MeanDuration)
	fmt.Fprintf(w, "  P50:             %s\n", stats.P50Duration)
	fmt.Fprintf(w, "  P90:             %s\n", stats.P90Duration)
	fmt.Fprintf(w, "  P99:             %s\n", stats.P99Duration)

	if len(stats.ByCategory) > 0 {
		fmt.Fprintln(w, "\nBy category:")
		categories := make([]string, 0, len(stats.ByCategory))
		for c := range stats.ByCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			fmt.Fprintf(w, "  %s: %d\n", c, stats.ByCategory[c])
		}
	}
}

// PrintJSONReport outputs a JSON-formatted report.
func PrintJSONReport(w io.Writer, result harness.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outcomeStatus renders the status column. Quarantine and filtering are
// spelled out so an absent completion is never ambiguous.
func outcomeStatus(out harness.Outcome) string {
	switch {
	case out.Skipped != "":
		return "skipped: " + out.Skipped
	case out.TimedOut:
		return fmt.Sprintf("timeout after %s", out.Duration.Round(time.Millisecond))
	case out.Panic != "":
		return "panicked: " + out.Panic
	case out.Err != nil:
		return "failed: " + out.Err.Error()
	default:
		return fmt.Sprintf("ok (%s)", out.Duration)
	}
}

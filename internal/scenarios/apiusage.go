package scenarios

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/torosent/hazcat/internal/catalog"
)

func apiUsageScenarios() []catalog.ScenarioRecord {
	return []catalog.ScenarioRecord{
		{
			ID:          "apiusage/printf-mismatch",
			Category:    catalog.CategoryAPIUsage,
			Tier:        catalog.TierSafe,
			Description: "format verb does not match the argument type",
			Run:         runPrintfMismatch,
		},
		{
			ID:          "apiusage/overlapping-copy",
			Category:    catalog.CategoryAPIUsage,
			Tier:        catalog.TierSafe,
			Description: "copy between overlapping regions of the same buffer",
			Run:         runOverlappingCopy,
		},
		{
			ID:          "apiusage/unchecked-returns",
			Category:    catalog.CategoryAPIUsage,
			Tier:        catalog.TierSafe,
			Description: "error and status returns silently discarded",
			Run:         runUncheckedReturns,
		},
	}
}

// runPrintfMismatch formats a string through an integer verb. The format is
// held in a variable so the mismatch survives to run time and shows up as a
// %!d conversion failure in the output.
func runPrintfMismatch(ctx context.Context, w io.Writer) error {
	format := "mismatched format: %d\n"
	fmt.Fprintf(w, format, "hello") // %d applied to a string
	fmt.Fprintln(w, "checked printf verb/argument mismatch")
	return nil
}

// runOverlappingCopy is the memcpy-overlap analogue. Go's copy is defined
// for overlapping slices (it behaves like memmove), so the call runs; the
// hazard is carrying the C habit of assuming it does not.
func runOverlappingCopy(ctx context.Context, w io.Writer) error {
	buffer := []byte("123456789")
	copy(buffer[2:], buffer[:5])
	fmt.Fprintf(w, "checked overlapping copy: %s\n", buffer)
	return nil
}

func runUncheckedReturns(ctx context.Context, w io.Writer) error {
	// Parse error discarded entirely.
	parsed, _ := time.Parse("01/02/2006", "2026-08-31")
	_ = parsed

	// Remove on a path that never existed; error ignored.
	removeScratchFile()

	fmt.Fprintln(w, "checked unchecked return values (time.Parse, os.Remove)")
	return nil
}

func removeScratchFile() {
	// Error deliberately dropped; the file never existed.
	os.Remove(filepath.Join(os.TempDir(), "hazcat-nonexistent-scratch"))
}

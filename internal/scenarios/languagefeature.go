package scenarios

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/torosent/hazcat/internal/catalog"
)

func languageFeatureScenarios() []catalog.ScenarioRecord {
	return []catalog.ScenarioRecord{
		{
			ID:          "languagefeature/typed-nil",
			Category:    catalog.CategoryLanguageFeature,
			Tier:        catalog.TierSafe,
			Description: "nil concrete pointer stored in an interface compares non-nil",
			Run:         runTypedNil,
		},
		{
			ID:          "languagefeature/defer-in-loop",
			Category:    catalog.CategoryLanguageFeature,
			Tier:        catalog.TierSafe,
			Description: "defers accumulate across loop iterations until function exit",
			Run:         runDeferInLoop,
		},
		{
			ID:          "languagefeature/reslice-past-len",
			Category:    catalog.CategoryLanguageFeature,
			Tier:        catalog.TierSafe,
			Description: "reslicing to capacity exposes elements past the logical length",
			Run:         runReslicePastLen,
		},
		{
			ID:          "languagefeature/zero-value",
			Category:    catalog.CategoryLanguageFeature,
			Tier:        catalog.TierSafe,
			Description: "branch taken on a variable that was never explicitly initialized",
			Run:         runZeroValue,
		},
	}
}

type failure struct{ msg string }

func (f *failure) Error() string { return f.msg }

func mayFail(fail bool) *failure {
	if fail {
		return &failure{msg: "failed"}
	}
	return nil
}

// runTypedNil stores a nil *failure in an error interface. The interface
// carries a type word, so err == nil is false even though the pointer is nil.
func runTypedNil(ctx context.Context, w io.Writer) error {
	var err error = mayFail(false)
	if err != nil {
		fmt.Fprintln(w, "checked typed nil in interface: err != nil despite nil pointer inside")
	} else {
		fmt.Fprintln(w, "typed nil compared equal to nil (unexpected)")
	}
	return nil
}

// runDeferInLoop opens a handful of temp files, deferring each close inside
// the loop. All descriptors stay open until the function returns; with a
// large iteration count this exhausts the descriptor table.
func runDeferInLoop(ctx context.Context, w io.Writer) error {
	opened := 0
	err := func() error {
		for i := 0; i < 3; i++ {
			f, err := os.CreateTemp("", "hazcat-defer-*.txt")
			if err != nil {
				return fmt.Errorf("create temp file: %w", err)
			}
			defer f.Close()           // runs at function exit, not loop end
			defer os.Remove(f.Name()) // artifact cleanup, same accumulation
			opened++
		}
		return nil
	}()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "checked defer in loop (%d closes delayed to function exit)\n", opened)
	return nil
}

// runReslicePastLen is the oversized-span analogue: the reslice is legal
// because it stays within capacity, but it exposes elements the logical
// slice never contained.
func runReslicePastLen(ctx context.Context, w io.Writer) error {
	s := make([]int, 2, 8)
	s[0], s[1] = 1, 2
	risky := s[:cap(s)] // len jumps from 2 to 8
	fmt.Fprintf(w, "checked reslice past length: len %d -> %d\n", len(s), len(risky))
	return nil
}

func runZeroValue(ctx context.Context, w io.Writer) error {
	var x int // zero value, never explicitly assigned
	if x > 0 {
		fmt.Fprintln(w, "positive branch (unreachable for the zero value)")
	}
	fmt.Fprintln(w, "checked zero-value reliance on an uninitialized-looking variable")
	return nil
}

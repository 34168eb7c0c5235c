package scenarios

import (
	"context"
	"fmt"
	"io"

	"github.com/torosent/hazcat/internal/catalog"
)

func controlFlowScenarios() []catalog.ScenarioRecord {
	return []catalog.ScenarioRecord{
		{
			ID:          "controlflow/identical-branches",
			Category:    catalog.CategoryControlFlow,
			Tier:        catalog.TierSafe,
			Description: "if and else branches contain the same code",
			Run:         runIdenticalBranches,
		},
		{
			ID:          "controlflow/unreachable-loop",
			Category:    catalog.CategoryControlFlow,
			Tier:        catalog.TierSafe,
			Description: "loop condition false on entry; body can never run",
			Run:         runUnreachableLoop,
		},
		{
			ID:          "controlflow/dead-code",
			Category:    catalog.CategoryControlFlow,
			Tier:        catalog.TierSafe,
			Description: "statements after an unconditional return",
			Run:         runDeadCode,
		},
	}
}

func runIdenticalBranches(ctx context.Context, w io.Writer) error {
	i := 1
	if i > 2 {
		i = 2 // branch bodies are deliberately identical
	} else {
		i = 2
	}
	fmt.Fprintf(w, "checked identical if/else branches (i=%d)\n", i)
	return nil
}

func runUnreachableLoop(ctx context.Context, w io.Writer) error {
	var empty []int
	iterations := 0
	for i := 0; i > len(empty); i++ { // condition false on first evaluation
		iterations++
	}
	fmt.Fprintf(w, "checked unreachable loop body (%d iterations)\n", iterations)
	return nil
}

func runDeadCode(ctx context.Context, w io.Writer) error {
	deadCodeAfterReturn(w)
	fmt.Fprintln(w, "checked unreachable code after return")
	return nil
}

func deadCodeAfterReturn(w io.Writer) {
	return
	fmt.Fprintln(w, "unreachable line") // vet: unreachable code
}

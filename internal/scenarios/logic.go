package scenarios

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/torosent/hazcat/internal/catalog"
)

func logicScenarios() []catalog.ScenarioRecord {
	return []catalog.ScenarioRecord{
		{
			ID:          "logic/bitwise-vs-logical",
			Category:    catalog.CategoryLogic,
			Tier:        catalog.TierSafe,
			Description: "bitwise OR used where a bit test or logical OR was intended",
			Run:         runBitwiseVsLogical,
		},
		{
			ID:          "logic/always-true",
			Category:    catalog.CategoryLogic,
			Tier:        catalog.TierSafe,
			Description: "condition that cannot be false for any input",
			Run:         runAlwaysTrue,
		},
		{
			ID:          "logic/ignored-trylock",
			Category:    catalog.CategoryLogic,
			Tier:        catalog.TierSafe,
			Description: "TryLock result discarded; the guarded section runs regardless",
			Run:         runIgnoredTryLock,
		},
	}
}

func runBitwiseVsLogical(ctx context.Context, w io.Writer) error {
	flags, mask := 2, 1
	// Intended test was flags&mask != 0; | is always non-zero here.
	if (flags | mask) != 0 {
		fmt.Fprintln(w, "checked bitwise OR where a bit test was intended (branch always taken)")
	}
	return nil
}

// alwaysTrueBounds holds the comparands as variables rather than constants:
// vet's bool check rejects the tautology when either side is a constant,
// which would stop the package's own tests from building.
var alwaysTrueBounds = [2]int{3, 4}

func runAlwaysTrue(ctx context.Context, w io.Writer) error {
	value := 7
	lo, hi := alwaysTrueBounds[0], alwaysTrueBounds[1]
	// x != a || x != b with a != b is a tautology.
	if value != lo || value != hi {
		fmt.Fprintln(w, "checked always-true condition (x != 3 || x != 4)")
	}
	return nil
}

func runIgnoredTryLock(ctx context.Context, w io.Writer) error {
	var mu sync.Mutex
	mu.TryLock() // result ignored; caller proceeds without knowing if it holds the lock
	fmt.Fprintln(w, "checked ignored TryLock result")
	mu.Unlock()
	return nil
}

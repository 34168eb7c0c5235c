package scenarios

import (
	"context"
	"fmt"
	"io"

	"github.com/torosent/hazcat/internal/catalog"
)

func styleScenarios() []catalog.ScenarioRecord {
	return []catalog.ScenarioRecord{
		{
			ID:          "style/shadowing",
			Category:    catalog.CategoryStyle,
			Tier:        catalog.TierSafe,
			Description: "inner declaration shadows an outer variable of the same name",
			Run:         runShadowing,
		},
		{
			ID:          "style/unused-parameter",
			Category:    catalog.CategoryStyle,
			Tier:        catalog.TierSafe,
			Description: "function parameter never referenced, alongside a magic number",
			Run:         runUnusedParameter,
		},
		{
			ID:          "style/deep-nesting",
			Category:    catalog.CategoryStyle,
			Tier:        catalog.TierSafe,
			Description: "five levels of nested conditionals",
			Run:         runDeepNesting,
		},
	}
}

func runShadowing(ctx context.Context, w io.Writer) error {
	outer := 100
	{
		outer := 200 // shadows the outer declaration
		_ = outer
	}
	fmt.Fprintf(w, "checked variable shadowing (outer still %d)\n", outer)
	return nil
}

func runUnusedParameter(ctx context.Context, w io.Writer) error {
	checkThresholdValue(w, 4000, 99)
	fmt.Fprintln(w, "checked unused parameter and magic number")
	return nil
}

func checkThresholdValue(w io.Writer, used, unused int) {
	if used > 3600 { // 3600 is an unexplained magic number
		fmt.Fprintln(w, "threshold exceeded")
	}
}

func runDeepNesting(ctx context.Context, w io.Writer) error {
	level := 5
	if level > 0 {
		if level > 1 {
			if level > 2 {
				if level > 3 {
					if level > 4 {
						fmt.Fprintf(w, "checked deep nesting (level %d)\n", level)
					}
				}
			}
		}
	}
	return nil
}

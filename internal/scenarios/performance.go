package scenarios

import (
	"context"
	"fmt"
	"io"

	"github.com/torosent/hazcat/internal/catalog"
)

// largeValue is big enough that passing it by value copies 8KiB per call.
type largeValue struct {
	data [1024]int64
}

func processByValue(v largeValue) int64 {
	return v.data[0]
}

func performanceScenarios() []catalog.ScenarioRecord {
	return []catalog.ScenarioRecord{
		{
			ID:          "performance/pass-by-value",
			Category:    catalog.CategoryPerformance,
			Tier:        catalog.TierSafe,
			Description: "8KiB struct copied on every call instead of passing a pointer",
			Run:         runPassByValue,
		},
		{
			ID:          "performance/string-concat",
			Category:    catalog.CategoryPerformance,
			Tier:        catalog.TierSafe,
			Description: "string built with += in a loop, reallocating each iteration",
			Run:         runStringConcat,
		},
		{
			ID:          "performance/write-per-item",
			Category:    catalog.CategoryPerformance,
			Tier:        catalog.TierSafe,
			Description: "one unbuffered write per loop iteration",
			Run:         runWritePerItem,
		},
	}
}

func runPassByValue(ctx context.Context, w io.Writer) error {
	var v largeValue
	v.data[0] = 1
	_ = processByValue(v) // whole struct copied
	fmt.Fprintln(w, "checked large struct passed by value")
	return nil
}

func runStringConcat(ctx context.Context, w io.Writer) error {
	parts := []string{"a", "b", "c"}
	var result string
	for _, p := range parts {
		result = result + p // reallocates; strings.Builder avoids this
	}
	fmt.Fprintf(w, "checked string concatenation in loop: %s\n", result)
	return nil
}

func runWritePerItem(ctx context.Context, w io.Writer) error {
	for i := 0; i < 3; i++ {
		fmt.Fprintf(w, "item %d\n", i) // separate write per iteration
	}
	fmt.Fprintln(w, "checked per-item writes without buffering")
	return nil
}

package scenarios

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/torosent/hazcat/internal/catalog"
)

func numericScenarios() []catalog.ScenarioRecord {
	return []catalog.ScenarioRecord{
		{
			ID:          "numeric/division-by-zero",
			Category:    catalog.CategoryNumeric,
			Tier:        catalog.TierSafe,
			Description: "integer division by a zero divisor guarded; float division runs and yields +Inf",
			Run:         runDivisionByZero,
		},
		{
			ID:          "numeric/float-compare",
			Category:    catalog.CategoryNumeric,
			Tier:        catalog.TierSafe,
			Description: "direct equality comparison of accumulated floats",
			Run:         runFloatCompare,
		},
		{
			ID:          "numeric/truncation",
			Category:    catalog.CategoryNumeric,
			Tier:        catalog.TierSafe,
			Description: "narrowing conversions silently lose precision and range",
			Run:         runTruncation,
		},
		{
			ID:          "numeric/wraparound",
			Category:    catalog.CategoryNumeric,
			Tier:        catalog.TierSafe,
			Description: "unsigned and signed integer wraparound at type boundaries",
			Run:         runWraparound,
		},
		{
			ID:          "numeric/nan",
			Category:    catalog.CategoryNumeric,
			Tier:        catalog.TierSafe,
			Description: "square root of a negative value produces NaN that propagates silently",
			Run:         runNaN,
		},
		{
			ID:          "numeric/oversized-shift",
			Category:    catalog.CategoryNumeric,
			Tier:        catalog.TierSafe,
			Description: "shift count at or past the operand width; negative count guarded",
			Run:         runOversizedShift,
		},
	}
}

func runDivisionByZero(ctx context.Context, w io.Writer) error {
	intDivisor := 0
	// _ = 100 / intDivisor // would panic: integer divide by zero
	if intDivisor != 0 {
		fmt.Fprintln(w, "integer division ok")
	} else {
		fmt.Fprintln(w, "integer division by zero skipped (would panic)")
	}

	floatDivisor := 0.0
	result := 1.0 / floatDivisor // defined: +Inf, often still a logic error
	fmt.Fprintf(w, "checked float division by zero: 1.0/0.0 = %v\n", result)
	return nil
}

func runFloatCompare(ctx context.Context, w io.Writer) error {
	x := 0.1 + 0.1 + 0.1
	y := 0.3
	if x == y {
		fmt.Fprintln(w, "float equality held (unexpected on IEEE 754)")
	} else {
		fmt.Fprintf(w, "checked float comparison: 0.1+0.1+0.1 != 0.3 (diff %g)\n", math.Abs(x-y))
	}
	return nil
}

func runTruncation(ctx context.Context, w io.Writer) error {
	highPrecision := 123.789
	truncated := int(highPrecision) // fraction silently discarded
	fmt.Fprintf(w, "checked float truncation: %v -> %d\n", highPrecision, truncated)

	large := int64(3_000_000_000)
	small := int32(large) // out of int32 range; value changes
	fmt.Fprintf(w, "checked narrowing conversion: %d -> %d\n", large, small)
	return nil
}

func runWraparound(ctx context.Context, w io.Writer) error {
	var u uint32
	u-- // wraps to MaxUint32; defined, frequently a logic error
	fmt.Fprintf(w, "checked unsigned wraparound: 0 - 1 = %d\n", u)

	v := int64(math.MaxInt64)
	v++ // defined in Go (wraps negative), unlike C++ signed overflow
	fmt.Fprintf(w, "checked signed wraparound: MaxInt64 + 1 = %d\n", v)
	return nil
}

func runNaN(ctx context.Context, w io.Writer) error {
	result := math.Sqrt(-1.0)
	fmt.Fprintf(w, "checked NaN generation: sqrt(-1) = %v (IsNaN=%t)\n", result, math.IsNaN(result))
	return nil
}

// runOversizedShift shifts by the full operand width, which zeroes the value
// where C leaves it undefined. A negative shift count would panic, so that
// trigger stays guarded.
func runOversizedShift(ctx context.Context, w io.Writer) error {
	value := uint64(0xFF)
	count := 64
	shifted := value << count // count >= width: result is 0, defined in Go
	fmt.Fprintf(w, "checked oversized shift: 0xFF << %d = %d\n", count, shifted)

	negative := -1
	// _ = value << negative // would panic: negative shift amount
	if negative >= 0 {
		fmt.Fprintln(w, "negative shift ok")
	} else {
		fmt.Fprintln(w, "negative shift count skipped (would panic)")
	}
	return nil
}

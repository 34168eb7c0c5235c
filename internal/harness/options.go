package harness

import (
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"

	"github.com/torosent/hazcat/internal/metrics"
)

// Options configure the Runner.
type Options struct {
	// RunDangerous disables quarantine. The zero value keeps DANGEROUS
	// scenarios skipped, so a default-constructed runner is always bounded.
	RunDangerous bool

	// Timeout bounds each scenario execution (0 means unbounded). A timed-out
	// payload goroutine is abandoned, not cancelled.
	Timeout time.Duration

	// Only and Skip filter scenario IDs. Skip is applied after Only.
	Only []string
	Skip []string

	// Iterations is the number of soak passes over the SAFE/FLAKY subset.
	// The first pass produces the outcome batch; further passes only feed
	// the collector.
	Iterations int

	// RatePerSecond paces soak-pass executions (0 means unpaced).
	RatePerSecond int

	// ScratchDir holds the run lock and scenario file artifacts.
	ScratchDir string

	// Writer receives payload console lines.
	Writer io.Writer

	Collector *metrics.Collector
	Tracer    trace.Tracer

	LimiterFactory func(rps int) *rate.Limiter // optional injection for tests
}

func (o *Options) normalize() {
	if o.Iterations < 1 {
		o.Iterations = 1
	}
	if o.RatePerSecond < 0 {
		o.RatePerSecond = 0
	}
	if o.ScratchDir == "" {
		o.ScratchDir = os.TempDir()
	}
	if o.Writer == nil {
		o.Writer = io.Discard
	}
	if o.Collector == nil {
		o.Collector = metrics.NewCollector()
	}
	if o.Tracer == nil {
		o.Tracer = noop.NewTracerProvider().Tracer("hazcat")
	}
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(rps int) *rate.Limiter {
			if rps <= 0 {
				return rate.NewLimiter(rate.Inf, 0)
			}
			// Burst equal to rps to smooth pacing across a pass.
			return rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}

package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// OutcomeKind classifies how a scenario execution ended for accounting.
type OutcomeKind int

const (
	OutcomeCompleted OutcomeKind = iota
	OutcomeFailed
	OutcomeTimedOut
	OutcomeSkipped
)

// Collector records per-scenario metrics in a thread-safe manner.
type Collector struct {
	mu          sync.Mutex
	hist        *hdrhistogram.Histogram
	completed   int64
	failed      int64
	timedOut    int64
	skipped     int64
	minDuration time.Duration
	maxDuration time.Duration
	sumDuration time.Duration
	byCategory  map[string]int64
}

// Stats represents aggregated metrics for one harness run (including any
// soak iterations).
type Stats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	TimedOut  int64 `json:"timed_out"`
	Skipped   int64 `json:"skipped"`

	MinDuration  time.Duration `json:"-"`
	MaxDuration  time.Duration `json:"-"`
	MeanDuration time.Duration `json:"-"`
	P50Duration  time.Duration `json:"-"`
	P90Duration  time.Duration `json:"-"`
	P99Duration  time.Duration `json:"-"`
	Duration     time.Duration `json:"-"`

	ScenariosPerSec float64 `json:"scenarios_per_sec"`

	// JSON-friendly millisecond fields.
	MinDurationMs  float64          `json:"min_duration_ms"`
	MaxDurationMs  float64          `json:"max_duration_ms"`
	MeanDurationMs float64          `json:"mean_duration_ms"`
	P50DurationMs  float64          `json:"p50_duration_ms"`
	P90DurationMs  float64          `json:"p90_duration_ms"`
	P99DurationMs  float64          `json:"p99_duration_ms"`
	DurationMs     float64          `json:"duration_ms"`
	ByCategory     map[string]int64 `json:"by_category,omitempty"`
}

// NewCollector creates a collector tracking durations from 1µs up to 60s
// with 3 significant figures.
func NewCollector() *Collector {
	h := hdrhistogram.New(1, 60_000_000, 3)
	return &Collector{
		hist:       h,
		byCategory: make(map[string]int64),
	}
}

// Record accounts one scenario execution. Skipped scenarios carry no
// duration; everything else feeds the histogram.
func (c *Collector) Record(category string, duration time.Duration, kind OutcomeKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byCategory[category]++

	switch kind {
	case OutcomeCompleted:
		c.completed++
	case OutcomeFailed:
		c.failed++
	case OutcomeTimedOut:
		c.timedOut++
	case OutcomeSkipped:
		c.skipped++
		return
	}

	if duration > 0 {
		us := duration.Microseconds()
		if us < c.hist.LowestTrackableValue() {
			us = c.hist.LowestTrackableValue()
		}
		if us > c.hist.HighestTrackableValue() {
			us = c.hist.HighestTrackableValue()
		}
		_ = c.hist.RecordValue(us)
	}
	c.sumDuration += duration

	if c.minDuration == 0 || duration < c.minDuration {
		c.minDuration = duration
	}
	if duration > c.maxDuration {
		c.maxDuration = duration
	}
}

// Stats computes and returns current aggregated statistics.
func (c *Collector) Stats(elapsed time.Duration) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	executed := c.completed + c.failed + c.timedOut
	stats := Stats{
		Total:       executed + c.skipped,
		Completed:   c.completed,
		Failed:      c.failed,
		TimedOut:    c.timedOut,
		Skipped:     c.skipped,
		MinDuration: c.minDuration,
		MaxDuration: c.maxDuration,
	}

	if executed > 0 {
		stats.MeanDuration = time.Duration(int64(c.sumDuration) / executed)
	}

	if c.hist.TotalCount() > 0 {
		stats.P50Duration = time.Duration(c.hist.ValueAtQuantile(50)) * time.Microsecond
		stats.P90Duration = time.Duration(c.hist.ValueAtQuantile(90)) * time.Microsecond
		stats.P99Duration = time.Duration(c.hist.ValueAtQuantile(99)) * time.Microsecond
	}

	stats.MinDurationMs = float64(stats.MinDuration) / float64(time.Millisecond)
	stats.MaxDurationMs = float64(stats.MaxDuration) / float64(time.Millisecond)
	stats.MeanDurationMs = float64(stats.MeanDuration) / float64(time.Millisecond)
	stats.P50DurationMs = float64(stats.P50Duration) / float64(time.Millisecond)
	stats.P90DurationMs = float64(stats.P90Duration) / float64(time.Millisecond)
	stats.P99DurationMs = float64(stats.P99Duration) / float64(time.Millisecond)

	stats.Duration = elapsed
	stats.DurationMs = float64(elapsed) / float64(time.Millisecond)
	if elapsed > 0 {
		stats.ScenariosPerSec = float64(executed) / elapsed.Seconds()
	}

	if len(c.byCategory) > 0 {
		stats.ByCategory = make(map[string]int64, len(c.byCategory))
		for k, v := range c.byCategory {
			stats.ByCategory[k] = v
		}
	}

	return stats
}

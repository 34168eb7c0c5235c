package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Category identifies the defect class a scenario demonstrates.
type Category string

const (
	CategoryMemory          Category = "memory"
	CategoryResource        Category = "resource"
	CategoryNumeric         Category = "numeric"
	CategoryConcurrency     Category = "concurrency"
	CategoryControlFlow     Category = "controlflow"
	CategoryAPIUsage        Category = "apiusage"
	CategoryLogic           Category = "logic"
	CategoryStyle           Category = "style"
	CategoryPerformance     Category = "performance"
	CategoryObjectOriented  Category = "objectoriented"
	CategoryLanguageFeature Category = "languagefeature"
)

// RiskTier determines whether a scenario is eligible for execution by default.
type RiskTier string

const (
	// TierSafe scenarios are deterministic, terminate, and cannot crash the process.
	TierSafe RiskTier = "SAFE"
	// TierFlaky scenarios terminate in bounded time but their reported result
	// may differ between runs (e.g. a data race).
	TierFlaky RiskTier = "FLAKY"
	// TierDangerous scenarios may hang or crash the process. They are never
	// executed unless quarantine is explicitly disabled.
	TierDangerous RiskTier = "DANGEROUS"
)

// ErrDuplicateID is returned when a scenario ID is registered twice.
var ErrDuplicateID = errors.New("duplicate scenario id")

// RunFunc executes a scenario payload. The context carries the harness's
// timeout policy; payload console lines go to w.
type RunFunc func(ctx context.Context, w io.Writer) error

// ScenarioRecord describes one registered hazard scenario. Records are
// immutable after registration: the category and tier of an ID never change,
// so repeated runs execute the same set of scenarios.
type ScenarioRecord struct {
	ID          string
	Category    Category
	Tier        RiskTier
	Description string
	Run         RunFunc
}

func (r ScenarioRecord) validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("scenario id is required")
	}
	if !validCategory(r.Category) {
		return fmt.Errorf("scenario %q: unknown category %q", r.ID, r.Category)
	}
	switch r.Tier {
	case TierSafe, TierFlaky, TierDangerous:
	default:
		return fmt.Errorf("scenario %q: unknown risk tier %q", r.ID, r.Tier)
	}
	if r.Run == nil {
		return fmt.Errorf("scenario %q: run function is required", r.ID)
	}
	return nil
}

func validCategory(c Category) bool {
	switch c {
	case CategoryMemory, CategoryResource, CategoryNumeric, CategoryConcurrency,
		CategoryControlFlow, CategoryAPIUsage, CategoryLogic, CategoryStyle,
		CategoryPerformance, CategoryObjectOriented, CategoryLanguageFeature:
		return true
	}
	return false
}

// Registry is an append-only, ordered catalog of scenarios. It is built once
// at process start and read-only afterwards; it is not safe for concurrent
// registration.
type Registry struct {
	records []ScenarioRecord
	index   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends a scenario to the catalog. A duplicate ID fails with an
// error wrapping ErrDuplicateID and leaves the registry unchanged.
func (r *Registry) Register(rec ScenarioRecord) error {
	if err := rec.validate(); err != nil {
		return err
	}
	if _, ok := r.index[rec.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, rec.ID)
	}
	r.index[rec.ID] = len(r.records)
	r.records = append(r.records, rec)
	return nil
}

// MustRegister registers a scenario and panics on error. Intended for
// catalog construction at process start, where a malformed or duplicate
// entry is fatal.
func (r *Registry) MustRegister(rec ScenarioRecord) {
	if err := r.Register(rec); err != nil {
		panic(err)
	}
}

// List returns the scenarios in registration order. The returned slice is a
// copy; callers cannot mutate the catalog through it.
func (r *Registry) List() []ScenarioRecord {
	out := make([]ScenarioRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len reports the number of registered scenarios.
func (r *Registry) Len() int {
	return len(r.records)
}

// Lookup returns the record for id, if registered.
func (r *Registry) Lookup(id string) (ScenarioRecord, bool) {
	i, ok := r.index[id]
	if !ok {
		return ScenarioRecord{}, false
	}
	return r.records[i], true
}

// TierOf returns the risk tier recorded for id. The tier is sourced from the
// registered record, never inferred from payload behavior.
func (r *Registry) TierOf(id string) (RiskTier, bool) {
	rec, ok := r.Lookup(id)
	if !ok {
		return "", false
	}
	return rec.Tier, true
}

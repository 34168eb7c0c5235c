package catalog

import (
	"context"
	"errors"
	"io"
	"testing"
)

func noopRun(ctx context.Context, w io.Writer) error { return nil }

func record(id string) ScenarioRecord {
	return ScenarioRecord{
		ID:          id,
		Category:    CategoryNumeric,
		Tier:        TierSafe,
		Description: "test scenario",
		Run:         noopRun,
	}
}

func TestRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(record("numeric/a")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register(record("numeric/b")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if got := reg.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}

	rec, ok := reg.Lookup("numeric/a")
	if !ok {
		t.Fatal("Lookup(numeric/a) not found")
	}
	if rec.ID != "numeric/a" || rec.Category != CategoryNumeric {
		t.Errorf("Lookup returned %q/%q", rec.ID, rec.Category)
	}

	if _, ok := reg.Lookup("numeric/missing"); ok {
		t.Error("Lookup(numeric/missing) found unexpectedly")
	}
}

func TestRegisterDuplicateIDLeavesRegistryUnchanged(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(record("numeric/a")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	dup := record("numeric/a")
	dup.Tier = TierDangerous
	err := reg.Register(dup)
	if err == nil {
		t.Fatal("Register duplicate: want error, got nil")
	}
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Register duplicate: error %v does not wrap ErrDuplicateID", err)
	}

	if got := reg.Len(); got != 1 {
		t.Errorf("Len after failed register = %d, want 1", got)
	}
	tier, ok := reg.TierOf("numeric/a")
	if !ok || tier != TierSafe {
		t.Errorf("TierOf after failed register = %q, %v; want SAFE, true", tier, ok)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScenarioRecord)
	}{
		{"empty id", func(r *ScenarioRecord) { r.ID = "  " }},
		{"unknown category", func(r *ScenarioRecord) { r.Category = "quantum" }},
		{"unknown tier", func(r *ScenarioRecord) { r.Tier = "MOSTLY_SAFE" }},
		{"nil run", func(r *ScenarioRecord) { r.Run = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			rec := record("numeric/a")
			tt.mutate(&rec)
			if err := reg.Register(rec); err == nil {
				t.Error("Register: want validation error, got nil")
			}
			if reg.Len() != 0 {
				t.Errorf("Len after failed register = %d, want 0", reg.Len())
			}
		})
	}
}

func TestListPreservesOrderAndIsACopy(t *testing.T) {
	reg := NewRegistry()
	ids := []string{"numeric/c", "numeric/a", "numeric/b"}
	for _, id := range ids {
		if err := reg.Register(record(id)); err != nil {
			t.Fatalf("Register(%s): %v", id, err)
		}
	}

	list := reg.List()
	for i, id := range ids {
		if list[i].ID != id {
			t.Errorf("List()[%d].ID = %q, want %q", i, list[i].ID, id)
		}
	}

	list[0].ID = "mutated"
	if _, ok := reg.Lookup("numeric/c"); !ok {
		t.Error("mutating List() result affected the registry")
	}
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(record("numeric/a"))

	defer func() {
		if recover() == nil {
			t.Error("MustRegister duplicate: want panic")
		}
	}()
	reg.MustRegister(record("numeric/a"))
}

func TestDefaultTier(t *testing.T) {
	if got := DefaultTier(CategoryConcurrency); got != TierDangerous {
		t.Errorf("DefaultTier(concurrency) = %q, want DANGEROUS", got)
	}
	for _, c := range []Category{CategoryMemory, CategoryNumeric, CategoryStyle} {
		if got := DefaultTier(c); got != TierSafe {
			t.Errorf("DefaultTier(%s) = %q, want SAFE", c, got)
		}
	}
}

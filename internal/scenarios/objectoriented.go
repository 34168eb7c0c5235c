package scenarios

import (
	"context"
	"fmt"
	"io"

	"github.com/torosent/hazcat/internal/catalog"
)

// baseHandle is the narrow capability. Its methods are deliberately not
// promoted through an interface: dispatch on a baseHandle value is static,
// which is the entire point of these scenarios.
type baseHandle struct {
	closed bool
}

func (b baseHandle) describe() string {
	return "base handle"
}

func (b *baseHandle) release(w io.Writer) {
	b.closed = true
	fmt.Fprintln(w, "base release called")
}

// derivedHandle embeds baseHandle and shadows both methods. Narrowing a
// derivedHandle to its embedded baseHandle loses the shadowed behavior and
// the payload field.
type derivedHandle struct {
	baseHandle
	payload string
}

func (d derivedHandle) describe() string {
	return "derived handle: " + d.payload
}

func (d *derivedHandle) release(w io.Writer) {
	d.payload = ""
	d.baseHandle.release(w)
	fmt.Fprintln(w, "derived release called")
}

func objectOrientedScenarios() []catalog.ScenarioRecord {
	return []catalog.ScenarioRecord{
		{
			ID:          "objectoriented/narrowed-release",
			Category:    catalog.CategoryObjectOriented,
			Tier:        catalog.TierSafe,
			Description: "cleanup dispatched through the embedded base skips the derived release",
			Run:         runNarrowedRelease,
		},
		{
			ID:          "objectoriented/value-slicing",
			Category:    catalog.CategoryObjectOriented,
			Tier:        catalog.TierSafe,
			Description: "copying the embedded base out of a derived value discards derived state",
			Run:         runValueSlicing,
		},
	}
}

// runNarrowedRelease is the non-virtual destructor analogue: releasing
// through the embedded base runs only the base method, so the derived
// payload is never cleared. Do not reintroduce an interface here; dynamic
// dispatch would make the defect disappear.
func runNarrowedRelease(ctx context.Context, w io.Writer) error {
	d := &derivedHandle{payload: "derived data"}
	d.baseHandle.release(w) // derived release skipped
	if d.payload != "" {
		fmt.Fprintf(w, "checked narrowed release: payload %q survived base-only cleanup\n", d.payload)
	}
	return nil
}

// runValueSlicing copies the embedded base out of a derived value, the Go
// analogue of object slicing: the copy answers with base behavior and the
// derived field is gone.
func runValueSlicing(ctx context.Context, w io.Writer) error {
	d := derivedHandle{payload: "derived data"}
	b := d.baseHandle // slice: payload lost, describe() is the base version
	fmt.Fprintf(w, "derived describes as %q, sliced copy as %q\n", d.describe(), b.describe())
	fmt.Fprintln(w, "checked value slicing through embedded base")
	return nil
}

package scenarios

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/torosent/hazcat/internal/catalog"
)

const (
	// raceIncrements is the fixed per-goroutine increment count for the data
	// race payload. Termination is guaranteed; the final counter value is not.
	raceIncrements = 10000

	// lockHoldDelay widens the window between the first and second lock
	// acquisition so the circular wait is reached in the overwhelming
	// majority of unquarantined runs.
	lockHoldDelay = time.Millisecond
)

func concurrencyScenarios() []catalog.ScenarioRecord {
	return []catalog.ScenarioRecord{
		{
			ID:          "concurrency/data-race",
			Category:    catalog.CategoryConcurrency,
			Tier:        catalog.TierFlaky,
			Description: "two goroutines perform unsynchronized read-modify-write on a shared counter",
			Run:         runDataRace,
		},
		{
			ID:          "concurrency/deadlock",
			Category:    catalog.CategoryConcurrency,
			Tier:        catalog.TierDangerous,
			Description: "two goroutines acquire two mutexes in opposite order; may block forever",
			Run:         runDeadlock,
		},
	}
}

// runDataRace races two goroutines over one shared integer. The counter is a
// single mutable cell with no lock or atomic wrapping it; the unguarded
// access is the defect under test, so it must not be "fixed" with
// synchronization. The race detector flags this payload by design.
func runDataRace(ctx context.Context, w io.Writer) error {
	var counter int64

	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			for n := 0; n < raceIncrements; n++ {
				counter++
			}
		}()
	}
	wg.Wait()

	fmt.Fprintf(w, "checked data race: final counter %d (arithmetic sum would be %d; any mismatch is the race, not an error)\n",
		counter, 2*raceIncrements)
	return nil
}

// runDeadlock starts two goroutines that each take two locks in opposite
// order, sleeping between acquisitions to maximize the chance of circular
// wait. Once each goroutine holds its first lock there is no in-process
// cancellation path: neither lock offers a bounded-wait fallback here by
// construction, and the context cannot interrupt a blocked Mutex.Lock. The
// only recovery is external process termination. Invoke only with quarantine
// explicitly disabled, preferably under the harness timeout wrapper.
func runDeadlock(ctx context.Context, w io.Writer) error {
	var first, second sync.Mutex

	fmt.Fprintln(w, "deadlock scenario started: opposite lock order across two goroutines (may hang)")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		first.Lock()
		time.Sleep(lockHoldDelay)
		second.Lock()
		second.Unlock()
		first.Unlock()
	}()
	go func() {
		defer wg.Done()
		second.Lock()
		time.Sleep(lockHoldDelay)
		first.Lock()
		first.Unlock()
		second.Unlock()
	}()
	wg.Wait()

	// Reaching this line means the circular wait happened not to occur.
	fmt.Fprintln(w, "deadlock scenario joined: circular wait did not occur this run")
	return nil
}

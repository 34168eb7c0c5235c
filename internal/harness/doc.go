// Package harness executes the hazard catalog safely end to end.
//
// The runner iterates the registry in registration order and runs each
// scenario sequentially; any concurrency is confined inside a single
// payload. Three mechanisms keep a run bounded:
//
//   - Quarantine: DANGEROUS scenarios are skipped, not invoked, unless
//     [Options.RunDangerous] is set. A skipped outcome is explicit
//     ("skipped: quarantined"), never silence.
//   - Timeout wrapper: each payload runs in its own goroutine; expiry of
//     [Options.Timeout] produces a distinct timed-out outcome. The payload
//     goroutine is abandoned, which is the documented cost of bounding a
//     payload that cannot be cancelled.
//   - Panic recovery: a panicking payload is recorded, not fatal.
//
// A SAFE or FLAKY scenario that times out or panics violates its tier
// contract; Run reports this as an *IntegrityError so the catalog
// misclassification fails the run even though all scenarios were attempted.
//
// With RunDangerous set and Timeout zero, Run may block forever: the
// deadlock payload offers no in-process cancellation once its goroutines
// hold one lock each, and the only recovery is external process
// termination.
package harness

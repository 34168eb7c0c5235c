package catalog

// DefaultTier is the policy table guiding catalog authors when assigning a
// risk tier to a new scenario. It is guidance, not enforcement: the tier on
// the registered record is authoritative, and a payload that can itself hang
// or crash must be tiered DANGEROUS regardless of category.
//
// Concurrency is the only category whose tier depends on the payload shape:
// a deadlock-shaped scenario has no termination guarantee (DANGEROUS), while
// a race-shaped scenario terminates with a nondeterministic result (FLAKY).
// DefaultTier returns the conservative choice for the category; authors of
// race-shaped payloads downgrade to TierFlaky explicitly.
func DefaultTier(c Category) RiskTier {
	switch c {
	case CategoryConcurrency:
		return TierDangerous
	default:
		return TierSafe
	}
}

// Package scenarios holds the hazard payload catalog: one minimal,
// self-contained scenario per well-known defect class. Payload text is
// opaque to the harness; each Run writes free-text "checked ..." lines and
// the judgment of whether an analyzer flags the defect is made out of
// process (see internal/verify).
//
// Payloads are either inert (the defect is present in the source but its
// trigger is guarded, mirroring hazards whose trigger would panic) or active
// (the defect actually runs, for hazards whose Go behavior is defined).
package scenarios

import (
	"github.com/torosent/hazcat/internal/catalog"
)

// Catalog builds the full hazard registry in its fixed reporting order.
// A duplicate or malformed record is a registration error, fatal to process
// start.
func Catalog() (*catalog.Registry, error) {
	reg := catalog.NewRegistry()

	groups := [][]catalog.ScenarioRecord{
		memoryScenarios(),
		resourceScenarios(),
		numericScenarios(),
		concurrencyScenarios(),
		apiUsageScenarios(),
		controlFlowScenarios(),
		logicScenarios(),
		styleScenarios(),
		performanceScenarios(),
		objectOrientedScenarios(),
		languageFeatureScenarios(),
	}
	for _, group := range groups {
		for _, rec := range group {
			if err := reg.Register(rec); err != nil {
				return nil, err
			}
		}
	}
	return reg, nil
}

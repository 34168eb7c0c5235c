package verify

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest declares the findings an external analyzer is expected to report
// over the scenario sources. It is the out-of-process oracle: the harness
// run itself never judges whether a defect was flagged.
type Manifest struct {
	// Analyzer names the tool the expectations were written against
	// (e.g. "go vet"). Informational.
	Analyzer string `yaml:"analyzer"`

	// Findings lists the expected diagnostics.
	Findings []Expectation `yaml:"findings"`
}

// Expectation is one diagnostic the analyzer should produce.
type Expectation struct {
	// Scenario is the hazard scenario ID the finding belongs to.
	Scenario string `yaml:"scenario"`

	// Check is the analyzer check name (e.g. "unreachable", "printf").
	Check string `yaml:"check"`

	// Match is a substring the diagnostic message must contain.
	Match string `yaml:"match"`

	// File optionally narrows the expectation to diagnostics whose position
	// mentions this path fragment.
	File string `yaml:"file,omitempty"`
}

// LoadManifest reads and parses an expected-findings YAML file. Unknown
// fields are rejected so manifest typos fail loudly.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if len(m.Findings) == 0 {
		return fmt.Errorf("findings list is required and must be non-empty")
	}
	for i, exp := range m.Findings {
		if exp.Scenario == "" {
			return fmt.Errorf("findings[%d]: scenario is required", i)
		}
		if exp.Check == "" {
			return fmt.Errorf("findings[%d]: check is required", i)
		}
		if exp.Match == "" {
			return fmt.Errorf("findings[%d]: match is required", i)
		}
	}
	return nil
}

package verify

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const vetOutput = `# github.com/torosent/hazcat/internal/scenarios
{
	"github.com/torosent/hazcat/internal/scenarios": {
		"unreachable": [
			{
				"posn": "/src/internal/scenarios/controlflow.go:88:2",
				"message": "unreachable code"
			}
		],
		"printf": [
			{
				"posn": "/src/internal/scenarios/apiusage.go:41:2",
				"message": "fmt.Fprintf format %d has arg \"hello\" of wrong type string"
			}
		]
	}
}`

func TestParseFindings(t *testing.T) {
	findings, err := ParseFindings([]byte(vetOutput))
	if err != nil {
		t.Fatalf("ParseFindings: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(findings))
	}

	byCheck := make(map[string]Finding)
	for _, f := range findings {
		byCheck[f.Check] = f
	}

	unreachable, ok := byCheck["unreachable"]
	if !ok {
		t.Fatal("no unreachable finding")
	}
	if unreachable.Message != "unreachable code" {
		t.Errorf("message = %q", unreachable.Message)
	}
	if !strings.Contains(unreachable.Position, "controlflow.go") {
		t.Errorf("position = %q", unreachable.Position)
	}
}

func TestParseFindingsEmptyAndInvalid(t *testing.T) {
	findings, err := ParseFindings([]byte("# only banners\n#\n"))
	if err != nil {
		t.Fatalf("ParseFindings(banners): %v", err)
	}
	if findings != nil {
		t.Errorf("findings = %v, want nil", findings)
	}

	if _, err := ParseFindings([]byte("not json at all")); err == nil {
		t.Error("ParseFindings(garbage): want error, got nil")
	}
}

func TestCompare(t *testing.T) {
	findings, err := ParseFindings([]byte(vetOutput))
	if err != nil {
		t.Fatalf("ParseFindings: %v", err)
	}

	m := &Manifest{
		Analyzer: "go vet",
		Findings: []Expectation{
			{Scenario: "controlflow/dead-code", Check: "unreachable", Match: "unreachable code", File: "controlflow.go"},
			{Scenario: "numeric/wraparound", Check: "overflow", Match: "constant overflow"},
		},
	}

	report := Compare(m, findings)
	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}
	if !report.Results[0].Found {
		t.Error("unreachable expectation not matched")
	}
	if report.Results[1].Found {
		t.Error("overflow expectation matched unexpectedly")
	}

	missing := report.Missing()
	if len(missing) != 1 || missing[0].Expectation.Scenario != "numeric/wraparound" {
		t.Errorf("Missing = %+v, want the wraparound expectation", missing)
	}

	// The printf finding was claimed by no expectation.
	if len(report.Unexpected) != 1 || report.Unexpected[0].Check != "printf" {
		t.Errorf("Unexpected = %+v, want the printf finding", report.Unexpected)
	}
}

func TestCompareFileNarrowing(t *testing.T) {
	findings := []Finding{
		{Check: "unreachable", Position: "/src/a.go:1:1", Message: "unreachable code"},
	}
	m := &Manifest{Findings: []Expectation{
		{Scenario: "x", Check: "unreachable", Match: "unreachable", File: "b.go"},
	}}

	report := Compare(m, findings)
	if report.Results[0].Found {
		t.Error("expectation matched a finding in the wrong file")
	}
	if len(report.Unexpected) != 1 {
		t.Errorf("finding in the wrong file should stay unclaimed, got %+v", report.Unexpected)
	}
}

func TestRunAnalyzer(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX shell utility")
	}

	out, err := RunAnalyzer(context.Background(), "echo hello", t.TempDir())
	if err != nil {
		t.Fatalf("RunAnalyzer: %v", err)
	}
	if strings.TrimSpace(string(out)) != "hello" {
		t.Errorf("output = %q, want hello", out)
	}

	if _, err := RunAnalyzer(context.Background(), "   ", t.TempDir()); err == nil {
		t.Error("empty command: want error, got nil")
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expected_findings.yaml")
	content := `analyzer: go vet
findings:
  - scenario: controlflow/dead-code
    check: unreachable
    match: unreachable code
    file: controlflow.go
  - scenario: apiusage/printf-mismatch
    check: printf
    match: wrong type
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Analyzer != "go vet" {
		t.Errorf("Analyzer = %q", m.Analyzer)
	}
	if len(m.Findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(m.Findings))
	}
	if m.Findings[0].File != "controlflow.go" {
		t.Errorf("Findings[0].File = %q", m.Findings[0].File)
	}
	if m.Findings[1].File != "" {
		t.Errorf("Findings[1].File = %q, want empty", m.Findings[1].File)
	}
}

func TestLoadManifestRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "findings:\n  - scenario: a\n    check: b\n    match: c\n    severity: high\n"},
		{"no findings", "analyzer: go vet\n"},
		{"missing check", "findings:\n  - scenario: a\n    match: c\n"},
		{"missing match", "findings:\n  - scenario: a\n    check: b\n"},
		{"missing scenario", "findings:\n  - check: b\n    match: c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write manifest: %v", err)
			}
			if _, err := LoadManifest(path); err == nil {
				t.Error("LoadManifest: want error, got nil")
			}
		})
	}
}

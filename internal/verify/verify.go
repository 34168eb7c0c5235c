// Package verify compares an external analyzer's findings against an
// expected-findings manifest. Analysis is out of process by design: the
// harness exercises defects, an analyzer flags them, and this package is
// the comparison step between the two.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tidwall/gjson"
)

// Finding is one diagnostic extracted from analyzer output.
type Finding struct {
	Check    string
	Position string
	Message  string
}

// Result pairs an expectation with whether the analyzer produced it.
type Result struct {
	Expectation Expectation
	Found       bool
	Matched     *Finding
}

// Report aggregates a verification pass.
type Report struct {
	Results    []Result
	Unexpected []Finding
}

// Missing returns the expectations the analyzer did not satisfy.
func (r Report) Missing() []Result {
	var missing []Result
	for _, res := range r.Results {
		if !res.Found {
			missing = append(missing, res)
		}
	}
	return missing
}

// RunAnalyzer executes the analyzer command and returns its raw output.
// Analyzers conventionally exit non-zero when they report findings, so an
// exit error with output is not a failure.
func RunAnalyzer(ctx context.Context, command, dir string) ([]byte, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty analyzer command")
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(out) > 0 {
			return out, nil
		}
		return nil, fmt.Errorf("run analyzer %q: %w", command, err)
	}
	return out, nil
}

// ParseFindings extracts diagnostics from `go vet -json`-shaped output: a
// JSON object keyed by package, mapping check names to diagnostic arrays.
// Lines starting with '#' (vet's package banners) are stripped first.
func ParseFindings(raw []byte) ([]Finding, error) {
	var jsonBody bytes.Buffer
	for _, line := range bytes.Split(raw, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimSpace(line), []byte("#")) {
			continue
		}
		jsonBody.Write(line)
		jsonBody.WriteByte('\n')
	}

	body := bytes.TrimSpace(jsonBody.Bytes())
	if len(body) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("analyzer output is not valid JSON")
	}

	var findings []Finding
	gjson.ParseBytes(body).ForEach(func(_, pkg gjson.Result) bool {
		pkg.ForEach(func(check, diags gjson.Result) bool {
			diags.ForEach(func(_, diag gjson.Result) bool {
				findings = append(findings, Finding{
					Check:    check.String(),
					Position: diag.Get("posn").String(),
					Message:  diag.Get("message").String(),
				})
				return true
			})
			return true
		})
		return true
	})
	return findings, nil
}

// Compare matches findings against the manifest. A finding satisfies an
// expectation when the check name matches, the message contains the match
// substring, and the position mentions the expectation's file (when set).
// Findings claimed by no expectation are reported as unexpected.
func Compare(m *Manifest, findings []Finding) Report {
	report := Report{}
	claimed := make([]bool, len(findings))

	for _, exp := range m.Findings {
		res := Result{Expectation: exp}
		for i := range findings {
			if !matches(exp, findings[i]) {
				continue
			}
			res.Found = true
			res.Matched = &findings[i]
			claimed[i] = true
			break
		}
		report.Results = append(report.Results, res)
	}

	for i, f := range findings {
		if !claimed[i] {
			report.Unexpected = append(report.Unexpected, f)
		}
	}
	return report
}

func matches(exp Expectation, f Finding) bool {
	if exp.Check != f.Check {
		return false
	}
	if !strings.Contains(f.Message, exp.Match) {
		return false
	}
	if exp.File != "" && !strings.Contains(f.Position, exp.File) {
		return false
	}
	return true
}

package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// PlutoScanner runs FairwindsOps pluto against the current kubeconfig
// context.
type PlutoScanner struct {
	binary string
}

// NewPlutoScanner returns a scanner that invokes the pluto binary on PATH.
func NewPlutoScanner() *PlutoScanner {
	return &PlutoScanner{binary: "pluto"}
}

func (s *PlutoScanner) Name() string { return "pluto" }

// plutoOutput mirrors pluto's JSON envelope: {"items": [...]}.
type plutoOutput struct {
	Items []plutoItem `json:"items"`
}

type plutoItem struct {
	Name       string `json:"name"`
	Namespace  string `json:"namespace"`
	Kind       string `json:"kind"`
	APIVersion string `json:"api-version"`
}

// Scan runs pluto detect-all-in-cluster with JSON output.
func (s *PlutoScanner) Scan(ctx context.Context, targetVersion string) Result {
	result := Result{Scanner: s.Name()}

	path, err := exec.LookPath(s.binary)
	if err != nil {
		result.Status = StatusNotInstalled
		result.Error = fmt.Sprintf("%s not found in PATH", s.binary)
		return result
	}

	runCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path,
		"detect-all-in-cluster",
		"--output", "json",
		"--target-versions", fmt.Sprintf("k8s=v%s", strings.TrimPrefix(targetVersion, "v")),
	)
	out, err := cmd.Output()
	// pluto exits non-zero when deprecated APIs are found; output is still
	// valid JSON in that case, so only a missing payload is a failure.
	if err != nil && strings.TrimSpace(string(out)) == "" {
		result.Status = StatusFailed
		result.Error = fmt.Sprintf("running %s: %v", s.binary, err)
		return result
	}

	if strings.TrimSpace(string(out)) == "" {
		result.Status = StatusSuccess
		return result
	}

	var parsed plutoOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		result.Status = StatusParseError
		result.Error = fmt.Sprintf("parsing %s output: %v", s.binary, err)
		return result
	}

	result.Status = StatusSuccess
	result.Findings = plutoFindings(parsed.Items)
	return result
}

func plutoFindings(items []plutoItem) []Finding {
	if len(items) == 0 {
		return nil
	}
	findings := make([]Finding, len(items))
	for i, item := range items {
		findings[i] = Finding{
			Kind:       item.Kind,
			Name:       item.Name,
			Namespace:  item.Namespace,
			APIVersion: item.APIVersion,
		}
	}
	return findings
}

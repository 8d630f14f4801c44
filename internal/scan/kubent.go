package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// KubentScanner runs kube-no-trouble (kubent) against the current
// kubeconfig context.
type KubentScanner struct {
	// binary defaults to "kubent"; overridable for tests.
	binary string
}

// NewKubentScanner returns a scanner that invokes the kubent binary on PATH.
func NewKubentScanner() *KubentScanner {
	return &KubentScanner{binary: "kubent"}
}

func (s *KubentScanner) Name() string { return "kubent" }

// kubentItem mirrors the fields kubent emits per finding in JSON mode.
type kubentItem struct {
	Kind       string `json:"Kind"`
	Name       string `json:"Name"`
	Namespace  string `json:"Namespace"`
	APIVersion string `json:"ApiVersion"`
	RuleSet    string `json:"RuleSet"`
}

// Scan runs kubent with JSON output. The cluster and helm collectors are
// disabled; only the in-cluster resource collector runs.
func (s *KubentScanner) Scan(ctx context.Context, targetVersion string) Result {
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
		"--output", "json",
		"--target-version", targetVersion,
		"--cluster=false",
		"--helm3=false",
		"--exit-error=false",
	)
	out, err := cmd.Output()
	if err != nil {
		result.Status = StatusFailed
		result.Error = fmt.Sprintf("running %s: %v", s.binary, err)
		return result
	}

	if strings.TrimSpace(string(out)) == "" {
		result.Status = StatusSuccess
		return result
	}

	var items []kubentItem
	if err := json.Unmarshal(out, &items); err != nil {
		result.Status = StatusParseError
		result.Error = fmt.Sprintf("parsing %s output: %v", s.binary, err)
		return result
	}

	result.Status = StatusSuccess
	result.Findings = kubentFindings(items)
	return result
}

func kubentFindings(items []kubentItem) []Finding {
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
			RuleSet:    item.RuleSet,
		}
	}
	return findings
}

package scan

import (
	"context"
	"encoding/json"
	"testing"
)

func TestKubentScanner_NotInstalled(t *testing.T) {
	s := &KubentScanner{binary: "kubent-binary-that-does-not-exist"}
	result := s.Scan(context.Background(), "1.29")
	if result.Status != StatusNotInstalled {
		t.Fatalf("Status = %q; want not_installed", result.Status)
	}
	if result.Error == "" {
		t.Error("Error empty; want a PATH message")
	}
}

func TestPlutoScanner_NotInstalled(t *testing.T) {
	s := &PlutoScanner{binary: "pluto-binary-that-does-not-exist"}
	result := s.Scan(context.Background(), "1.29")
	if result.Status != StatusNotInstalled {
		t.Fatalf("Status = %q; want not_installed", result.Status)
	}
}

func TestKubentFindings(t *testing.T) {
	raw := `[
  {"Kind": "Ingress", "Name": "web", "Namespace": "default", "ApiVersion": "extensions/v1beta1", "RuleSet": "Deprecated APIs removed in 1.22"},
  {"Kind": "CronJob", "Name": "backup", "Namespace": "ops", "ApiVersion": "batch/v1beta1", "RuleSet": "Deprecated APIs removed in 1.25"}
]`
	var items []kubentItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	findings := kubentFindings(items)
	if len(findings) != 2 {
		t.Fatalf("findings = %d; want 2", len(findings))
	}
	if findings[0].APIVersion != "extensions/v1beta1" {
		t.Errorf("APIVersion = %q; want extensions/v1beta1", findings[0].APIVersion)
	}
	if findings[1].Namespace != "ops" {
		t.Errorf("Namespace = %q; want ops", findings[1].Namespace)
	}

	if got := kubentFindings(nil); got != nil {
		t.Errorf("kubentFindings(nil) = %v; want nil", got)
	}
}

func TestPlutoFindings(t *testing.T) {
	raw := `{
  "items": [
    {"name": "web", "namespace": "default", "kind": "Ingress", "api-version": "networking.k8s.io/v1beta1"}
  ]
}`
	var parsed plutoOutput
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	findings := plutoFindings(parsed.Items)
	if len(findings) != 1 {
		t.Fatalf("findings = %d; want 1", len(findings))
	}
	if findings[0].APIVersion != "networking.k8s.io/v1beta1" {
		t.Errorf("APIVersion = %q; want networking.k8s.io/v1beta1", findings[0].APIVersion)
	}

	if got := plutoFindings(nil); got != nil {
		t.Errorf("plutoFindings(nil) = %v; want nil", got)
	}
}

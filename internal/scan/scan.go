// Package scan runs the external deprecated-API scanners (kubent and pluto)
// against the cluster the current kubeconfig points at and normalises their
// JSON output into a finding count. A missing binary is a reportable status,
// not an error; the assessment proceeds with the scanners it has.
package scan

import (
	"context"
	"time"
)

// ScanStatus describes how one scanner run ended.
type ScanStatus string

const (
	StatusSuccess      ScanStatus = "success"
	StatusNotInstalled ScanStatus = "not_installed"
	StatusFailed       ScanStatus = "failed"
	StatusParseError   ScanStatus = "parse_error"
)

// Finding is one deprecated-API usage reported by a scanner.
type Finding struct {
	Kind       string `json:"kind,omitempty"`
	Name       string `json:"name,omitempty"`
	Namespace  string `json:"namespace,omitempty"`
	APIVersion string `json:"api_version,omitempty"`
	RuleSet    string `json:"rule_set,omitempty"`
}

// Result is the outcome of one scanner run.
type Result struct {
	Scanner  string     `json:"scanner"`
	Status   ScanStatus `json:"status"`
	Findings []Finding  `json:"findings,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// DeprecatedAPIScanner runs one external tool and reports its findings.
// Implementations shell out; they must honor ctx for cancellation.
type DeprecatedAPIScanner interface {
	// Name identifies the scanner in reports ("kubent", "pluto").
	Name() string

	// Scan runs the tool against the current kubeconfig context, checking
	// for APIs removed at or before targetVersion.
	Scan(ctx context.Context, targetVersion string) Result
}

// defaultTimeout bounds a single scanner invocation.
const defaultTimeout = 60 * time.Second

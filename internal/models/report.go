package models

import "time"

// ReadinessSummary aggregates counts across all assessed clusters.
type ReadinessSummary struct {
	TotalClusters       int `json:"total_clusters"`
	Ready               int `json:"ready"`
	ReadyWithWarnings   int `json:"ready_with_warnings"`
	NeedsAttention      int `json:"needs_attention"`
	TotalBlockingIssues int `json:"total_blocking_issues"`
	TotalWarnings       int `json:"total_warnings"`
}

// ReadinessReport is the top-level output of an assessment run.
type ReadinessReport struct {
	ReportID      string             `json:"report_id"`
	GeneratedAt   time.Time          `json:"generated_at"`
	Profile       string             `json:"profile"`
	AccountID     string             `json:"account_id"`
	Regions       []string           `json:"regions"`
	TargetVersion string             `json:"target_version"`
	Summary       ReadinessSummary   `json:"summary"`
	Clusters      []ClusterReadiness `json:"clusters"`
}

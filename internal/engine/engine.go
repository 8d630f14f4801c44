package engine

import (
	"context"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/policy"
)

// ReportFormat controls the CLI output format.
type ReportFormat string

const (
	ReportFormatJSON     ReportFormat = "json"
	ReportFormatTable    ReportFormat = "table"
	ReportFormatMarkdown ReportFormat = "markdown"
)

// AssessmentOptions configures a single assessment run.
// It is the sole input to Engine.RunAssessment.
type AssessmentOptions struct {
	// Profile is the named AWS profile to use. Empty means the default profile.
	Profile string

	// Regions is an explicit list of AWS regions to assess.
	// When empty the engine discovers and iterates all active regions.
	Regions []string

	// Clusters restricts the assessment to the named clusters.
	// When empty every cluster found in the selected regions is assessed.
	Clusters []string

	// TargetVersion is the Kubernetes version the upgrade is evaluated
	// against, e.g. "1.29".
	TargetVersion string

	// Config carries the loaded assessment configuration. Nil falls back to
	// built-in defaults for every setting.
	Config *policy.Config

	// CacheDir is where fetched addon version tables are cached.
	CacheDir string

	// ReportFormat controls how the CLI renders the returned report.
	ReportFormat ReportFormat
}

// Engine is the central orchestration interface. It coordinates collection,
// the readiness decision layer, and report assembly, returning a fully
// populated ReadinessReport.
//
// Engine must not call the AWS SDK directly; it delegates to the provider
// and collector interfaces it was constructed with.
type Engine interface {
	RunAssessment(ctx context.Context, opts AssessmentOptions) (*models.ReadinessReport, error)
}

package models

// InsightSeverity ranks an EKS upgrade insight. The collector maps the EKS
// insight status to a severity: ERROR → HIGH, WARNING → MEDIUM, everything
// else → LOW.
type InsightSeverity string

const (
	InsightSeverityHigh   InsightSeverity = "HIGH"
	InsightSeverityMedium InsightSeverity = "MEDIUM"
	InsightSeverityLow    InsightSeverity = "LOW"
)

// Insight is one EKS upgrade insight, passed through to the aggregator
// without reclassification.
type Insight struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category,omitempty"`
	Description    string          `json:"description,omitempty"`
	Recommendation string          `json:"recommendation,omitempty"`
	Severity       InsightSeverity `json:"severity"`
}

// NodegroupState is one managed node group's name, Kubernetes version, and
// node instance role.
type NodegroupState struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	NodeRoleARN string `json:"node_role_arn,omitempty"`
}

// EKSClusterState is everything the EKS collector observed about one cluster
// in one pass: control-plane facts, installed addons, node groups, insights.
type EKSClusterState struct {
	ClusterName     string `json:"cluster_name"`
	Region          string `json:"region"`
	Version         string `json:"version"`
	PlatformVersion string `json:"platform_version,omitempty"`
	Status          string `json:"status,omitempty"`

	// Control-plane infrastructure facts, consumed by the resource
	// inventory. All come from the same DescribeCluster response.
	RoleARN          string   `json:"role_arn,omitempty"`
	OIDCIssuer       string   `json:"oidc_issuer,omitempty"`
	VPCID            string   `json:"vpc_id,omitempty"`
	SubnetIDs        []string `json:"subnet_ids,omitempty"`
	SecurityGroupIDs []string `json:"security_group_ids,omitempty"`

	Addons     []AddonObservation `json:"addons,omitempty"`
	Nodegroups []NodegroupState   `json:"nodegroups,omitempty"`
	Insights   []Insight          `json:"insights,omitempty"`
}

// ExternalSignals carries findings produced outside the compatibility
// resolvers: EKS upgrade insights and deprecated-API counts from the
// kubent/pluto scanners and the audit-log check. The aggregator consumes
// these as-is; it never re-runs or reinterprets the underlying checks.
type ExternalSignals struct {
	InsightSeverities []InsightSeverity `json:"insight_severities,omitempty"`

	// DeprecatedAPICounts maps a scanner name ("kubent", "pluto",
	// "audit-logs") to the number of deprecated-API usages it reported.
	DeprecatedAPICounts map[string]int `json:"deprecated_api_counts,omitempty"`
}

// ReadinessStatus is the overall upgrade-readiness classification for a
// cluster.
type ReadinessStatus string

const (
	StatusReady             ReadinessStatus = "READY"
	StatusReadyWithWarnings ReadinessStatus = "READY_WITH_WARNINGS"
	StatusNeedsAttention    ReadinessStatus = "NEEDS_ATTENTION"
)

// ClusterReadiness is the aggregate assessment of one cluster for one target
// version. Built fresh each run from current inputs; never persisted as
// mutable state.
type ClusterReadiness struct {
	ClusterName    string `json:"cluster_name"`
	CurrentVersion string `json:"current_version,omitempty"`
	TargetVersion  string `json:"target_version,omitempty"`

	OverallStatus   ReadinessStatus `json:"overall_status"`
	BlockingIssues  []string        `json:"blocking_issues,omitempty"`
	Warnings        []string        `json:"warnings,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`

	ClusterCompatibility *ClusterCompatibility  `json:"cluster_compatibility,omitempty"`
	AddonVerdicts        []CompatibilityVerdict `json:"addon_verdicts,omitempty"`
	IAMVerdicts          []IAMVerdict           `json:"iam_verdicts,omitempty"`
	Signals              ExternalSignals        `json:"signals,omitempty"`

	// Inventory catalogs the AWS resources behind the cluster. Nil when
	// inventory collection is disabled or the cluster state could not be
	// collected.
	Inventory *ResourceInventory `json:"resource_inventory,omitempty"`

	// NoAddonsFound marks an assessment that evaluated zero addons.
	// A READY status with this flag set means "not evaluated", not
	// "confirmed ready"; renderers must surface the difference.
	NoAddonsFound bool `json:"no_addons_found,omitempty"`

	// CollectionError records a per-cluster collection failure. The cluster
	// is reported NEEDS_ATTENTION with the error as a blocking issue so one
	// broken cluster never aborts the batch.
	CollectionError string `json:"collection_error,omitempty"`
}

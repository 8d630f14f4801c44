package models

// CompatibilityStatus classifies one addon's installed version against the
// version range published for the target Kubernetes version.
type CompatibilityStatus string

const (
	CompatibilityCompatible           CompatibilityStatus = "COMPATIBLE"
	CompatibilityUpgradeRequired      CompatibilityStatus = "UPGRADE_REQUIRED"
	CompatibilityDowngradeRecommended CompatibilityStatus = "DOWNGRADE_RECOMMENDED"
	CompatibilityVerificationNeeded   CompatibilityStatus = "VERIFICATION_NEEDED"
	CompatibilityUnknown              CompatibilityStatus = "UNKNOWN"
)

// AddonCategory groups addons by who publishes and manages them.
type AddonCategory string

const (
	AddonCategoryCore            AddonCategory = "core"
	AddonCategoryPlatformManaged AddonCategory = "platform_managed"
	AddonCategoryThirdParty      AddonCategory = "third_party"
)

// AddonVersionRange is the published version window for one addon on one
// target Kubernetes version. It is reference data fetched once per assessment
// run (see refdata.AddonVersionTable) and read-only everywhere after that,
// so it may be shared across concurrent per-cluster assessments.
type AddonVersionRange struct {
	AddonName      string        `json:"addon_name"`
	TargetVersion  string        `json:"target_version"`
	MinVersion     string        `json:"min_version"`
	MaxVersion     string        `json:"max_version"`
	DefaultVersion string        `json:"default_version"`
	AllVersions    []string      `json:"all_versions,omitempty"`
	Category       AddonCategory `json:"category"`
}

// AddonObservation is one addon as actually installed on one cluster.
// Ephemeral: built per collection pass, consumed by the resolvers, discarded.
type AddonObservation struct {
	AddonName        string `json:"addon_name"`
	InstalledVersion string `json:"installed_version"`
	ClusterName      string `json:"cluster_name"`

	// ServiceAccountRoleARN is the IRSA role bound to the addon, empty when
	// no role is configured. Consumed by the IAM compliance check, not by
	// version classification.
	ServiceAccountRoleARN string `json:"service_account_role_arn,omitempty"`
}

// CompatibilityVerdict is the outcome of classifying a single addon.
type CompatibilityVerdict struct {
	AddonName string              `json:"addon_name"`
	Status    CompatibilityStatus `json:"status"`
	Message   string              `json:"message"`

	// RecommendedVersion is set for UPGRADE_REQUIRED and
	// DOWNGRADE_RECOMMENDED verdicts; empty otherwise.
	RecommendedVersion string `json:"recommended_version,omitempty"`
}

// SkewPolicy bounds how far the control plane may drift ahead of the data
// plane, in minor versions. Constant reference data, never mutated.
type SkewPolicy struct {
	MaxVersionSkew int `json:"max_version_skew" yaml:"max_version_skew"`
}

// DefaultSkewPolicy returns the EKS default: control plane at most two minor
// versions ahead of the data plane.
func DefaultSkewPolicy() SkewPolicy {
	return SkewPolicy{MaxVersionSkew: 2}
}

// UpgradePathResult is the ordered sequence of platform versions a cluster
// must pass through, current and target inclusive.
type UpgradePathResult struct {
	Path  []string `json:"path"`
	Valid bool     `json:"valid"`

	// ViolatedSkewRules lists skew-policy violations discovered alongside
	// path computation. Populated by CheckVersionCompatibility.
	ViolatedSkewRules []string `json:"violated_skew_rules,omitempty"`
}

// ClusterCompatibility is the full control-plane/data-plane compatibility
// result for one cluster and one target version pair.
type ClusterCompatibility struct {
	Compatible      bool     `json:"compatible"`
	Issues          []string `json:"issues,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	UpgradePath     []string `json:"upgrade_path,omitempty"`
}

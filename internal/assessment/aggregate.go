package assessment

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
)

// Aggregate combines the cluster compatibility result, the per-addon
// compatibility and IAM verdicts, and the external signals into a single
// ClusterReadiness. Any input may be nil or empty; a category that is absent
// simply contributes no findings, and a fully empty assessment degenerates to
// READY with empty lists (callers surface that as "not evaluated" via the
// NoAddonsFound marker, which the engine sets).
//
// Status tie-break, strongest first:
//
//   - NEEDS_ATTENTION: cluster incompatible, any addon UPGRADE_REQUIRED, any
//     IAM ERROR, any HIGH insight, or deprecated-API usage corroborated by a
//     HIGH insight
//   - READY_WITH_WARNINGS: any warning-level signal (addon
//     DOWNGRADE_RECOMMENDED / VERIFICATION_NEEDED, IAM WARNING, cluster
//     warnings, MEDIUM insights, uncorroborated deprecated-API usage)
//   - READY otherwise
//
// BlockingIssues keeps a fixed category order (cluster issues, then addon
// upgrade requirements, then IAM errors), de-duplicated preserving first
// occurrence. Recommendations are assembled the same way.
func Aggregate(
	clusterName string,
	compat *models.ClusterCompatibility,
	addonVerdicts []models.CompatibilityVerdict,
	iamVerdicts []models.IAMVerdict,
	signals models.ExternalSignals,
) models.ClusterReadiness {
	readiness := models.ClusterReadiness{
		ClusterName:          clusterName,
		ClusterCompatibility: compat,
		AddonVerdicts:        addonVerdicts,
		IAMVerdicts:          iamVerdicts,
		Signals:              signals,
	}

	highInsight := hasSeverity(signals.InsightSeverities, models.InsightSeverityHigh)
	mediumInsight := hasSeverity(signals.InsightSeverities, models.InsightSeverityMedium)
	deprecatedFound := totalDeprecated(signals.DeprecatedAPICounts) > 0

	var blocking, warnings, recs []string

	// Category 1: cluster-level compatibility.
	if compat != nil {
		if !compat.Compatible {
			blocking = append(blocking, compat.Issues...)
		}
		warnings = append(warnings, compat.Warnings...)
		recs = append(recs, compat.Recommendations...)
	}

	// Category 2: addon version verdicts.
	upgradeRequired := false
	for _, v := range addonVerdicts {
		switch v.Status {
		case models.CompatibilityUpgradeRequired:
			upgradeRequired = true
			blocking = append(blocking, v.Message)
			if v.RecommendedVersion != "" {
				recs = append(recs, fmt.Sprintf("upgrade addon %s to %s before the cluster upgrade",
					v.AddonName, v.RecommendedVersion))
			}
		case models.CompatibilityDowngradeRecommended:
			warnings = append(warnings, v.Message)
			if v.RecommendedVersion != "" {
				recs = append(recs, fmt.Sprintf("move addon %s back to %s for the target version",
					v.AddonName, v.RecommendedVersion))
			}
		case models.CompatibilityVerificationNeeded, models.CompatibilityUnknown:
			warnings = append(warnings, v.Message)
			recs = append(recs, fmt.Sprintf("verify compatibility of addon %s manually", v.AddonName))
		}
	}

	// Category 3: addon IAM verdicts.
	iamError := false
	for _, v := range iamVerdicts {
		switch v.Status {
		case models.IAMStatusError:
			iamError = true
			blocking = append(blocking, v.Issues...)
		case models.IAMStatusWarning:
			warnings = append(warnings, v.Issues...)
		}
		recs = append(recs, v.Recommendations...)
	}

	// Category 4: external signals, passed through without reclassification.
	if highInsight {
		warnings = append(warnings, "high severity upgrade insights reported for this cluster")
		recs = append(recs, "resolve all high severity EKS upgrade insights before upgrading")
	} else if mediumInsight {
		warnings = append(warnings, "medium severity upgrade insights reported for this cluster")
		recs = append(recs, "review medium severity EKS upgrade insights before upgrading")
	}
	if deprecatedFound {
		warnings = append(warnings, "deprecated Kubernetes API usage detected")
		recs = append(recs, "migrate workloads off deprecated API versions before upgrading")
	}

	clusterIncompatible := compat != nil && !compat.Compatible

	switch {
	case clusterIncompatible,
		upgradeRequired,
		iamError,
		highInsight,
		deprecatedFound && highInsight:
		readiness.OverallStatus = models.StatusNeedsAttention
	case len(warnings) > 0:
		readiness.OverallStatus = models.StatusReadyWithWarnings
	default:
		readiness.OverallStatus = models.StatusReady
	}

	readiness.BlockingIssues = dedupe(blocking)
	readiness.Warnings = dedupe(warnings)
	readiness.Recommendations = dedupe(recs)
	return readiness
}

// dedupe removes duplicates while preserving first-seen order.
// Returns nil for empty input so JSON omits the field.
func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func hasSeverity(list []models.InsightSeverity, want models.InsightSeverity) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func totalDeprecated(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

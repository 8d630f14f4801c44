package assessment

import (
	"fmt"
	"strings"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/versions"
)

// ComputeUpgradePath returns the inclusive sequence of platform versions
// from current to target, as ordered by supported (an ascending list of
// version strings supplied by the caller, e.g. ["1.24", ..., "1.33"]).
//
// The path is invalid (empty, Valid=false) when either endpoint is absent
// from supported or target does not come strictly after current. A path
// longer than two entries means the upgrade cannot be done in one hop.
func ComputeUpgradePath(current, target string, supported []string) models.UpgradePathResult {
	curIdx, tgtIdx := -1, -1
	for i, v := range supported {
		if v == current {
			curIdx = i
		}
		if v == target {
			tgtIdx = i
		}
	}
	if curIdx < 0 || tgtIdx < 0 || tgtIdx <= curIdx {
		return models.UpgradePathResult{Valid: false}
	}

	path := make([]string, tgtIdx-curIdx+1)
	copy(path, supported[curIdx:tgtIdx+1])
	return models.UpgradePathResult{Path: path, Valid: true}
}

// CheckSkew verifies the control-plane/data-plane version skew policy for
// the post-upgrade state. One violation string is returned when the minor
// version distance exceeds policy.MaxVersionSkew; distance exactly at the
// limit is allowed. Versions whose minor component cannot be read produce
// no violation; unparsable input is handled upstream as UNKNOWN, not here.
func CheckSkew(targetControlPlane, targetDataPlane string, policy models.SkewPolicy) []string {
	cpMinor, cpOK := versions.Minor(targetControlPlane)
	dpMinor, dpOK := versions.Minor(targetDataPlane)
	if !cpOK || !dpOK {
		return nil
	}

	diff := cpMinor - dpMinor
	if diff < 0 {
		diff = -diff
	}
	if diff <= policy.MaxVersionSkew {
		return nil
	}
	return []string{fmt.Sprintf(
		"control plane version %s is more than %d minor versions apart from data plane version %s (skew %d)",
		targetControlPlane, policy.MaxVersionSkew, targetDataPlane, diff,
	)}
}

// CheckVersionCompatibility runs the full cluster-level compatibility check
// for an upgrade from the current control-plane/data-plane pair to the
// target pair. Compatible is false exactly when at least one issue was
// recorded; warnings never block.
func CheckVersionCompatibility(
	currentCP, targetCP, currentDP, targetDP string,
	supported []string,
	policy models.SkewPolicy,
) models.ClusterCompatibility {
	result := models.ClusterCompatibility{Compatible: true}

	if !contains(supported, targetCP) {
		result.Compatible = false
		result.Issues = append(result.Issues,
			fmt.Sprintf("target control plane version %s is not a supported EKS version", targetCP))
	}
	if !contains(supported, targetDP) {
		result.Compatible = false
		result.Issues = append(result.Issues,
			fmt.Sprintf("target data plane version %s is not a supported EKS version", targetDP))
	}

	path := ComputeUpgradePath(currentCP, targetCP, supported)
	result.UpgradePath = path.Path
	if !path.Valid {
		result.Compatible = false
		result.Issues = append(result.Issues,
			fmt.Sprintf("no valid upgrade path from %s to %s", currentCP, targetCP))
	}

	if violations := CheckSkew(targetCP, targetDP, policy); len(violations) > 0 {
		result.Compatible = false
		result.Issues = append(result.Issues, violations...)
	}

	if len(path.Path) > 2 {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("multi-step upgrade required: %s", strings.Join(path.Path, " -> ")))
	}

	if jump, ok := minorJump(currentCP, targetCP); ok && jump > 1 {
		result.Warnings = append(result.Warnings,
			"upgrading more than one minor version may require additional testing")
	}

	return result
}

// minorJump returns the absolute minor-version distance between two cluster
// versions.
func minorJump(a, b string) (int, bool) {
	am, aok := versions.Minor(a)
	bm, bok := versions.Minor(b)
	if !aok || !bok {
		return 0, false
	}
	d := am - bm
	if d < 0 {
		d = -d
	}
	return d, true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

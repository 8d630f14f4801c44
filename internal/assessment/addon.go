// Package assessment holds the upgrade-readiness decision logic: addon
// version classification, cluster version compatibility, addon IAM
// compliance, and the per-cluster aggregation of all three.
//
// Every function in this package is a pure computation over already-fetched
// data. Nothing here calls the AWS SDK, runs a subprocess, or reads a file;
// the provider packages own all of that. Malformed input degrades to an
// UNKNOWN or WARNING classification so one addon's bad data never aborts a
// batch. All functions are safe to call concurrently across clusters.
package assessment

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/versions"
)

// ClassifyAddon classifies one installed addon against the version range
// published for the target Kubernetes version. The first matching rule wins:
//
//  1. nil range → UNKNOWN (no data for the target version)
//  2. unparsable range bounds → UNKNOWN
//  3. unparsable installed version → UNKNOWN
//  4. installed within [min, max] → COMPATIBLE
//  5. installed below min → UPGRADE_REQUIRED
//  6. installed above max → DOWNGRADE_RECOMMENDED
//  7. anything else → VERIFICATION_NEEDED (guards malformed range data)
//
// The recommended version for rules 5 and 6 is the range default when set,
// otherwise the violated bound itself.
func ClassifyAddon(obs models.AddonObservation, rng *models.AddonVersionRange) models.CompatibilityVerdict {
	if rng == nil {
		return models.CompatibilityVerdict{
			AddonName: obs.AddonName,
			Status:    models.CompatibilityUnknown,
			Message:   fmt.Sprintf("no data for target version addon requirements for %s", obs.AddonName),
		}
	}

	minV, minOK := versions.Parse(rng.MinVersion)
	maxV, maxOK := versions.Parse(rng.MaxVersion)
	if !minOK || !maxOK {
		return models.CompatibilityVerdict{
			AddonName: obs.AddonName,
			Status:    models.CompatibilityUnknown,
			Message: fmt.Sprintf("version range for %s on Kubernetes %s is incomplete (min %q, max %q)",
				obs.AddonName, rng.TargetVersion, rng.MinVersion, rng.MaxVersion),
		}
	}

	installed, ok := versions.Parse(obs.InstalledVersion)
	if !ok {
		return models.CompatibilityVerdict{
			AddonName: obs.AddonName,
			Status:    models.CompatibilityUnknown,
			Message: fmt.Sprintf("installed version %q of %s could not be parsed",
				obs.InstalledVersion, obs.AddonName),
		}
	}

	switch {
	case versions.Compare(installed, minV) >= 0 && versions.Compare(installed, maxV) <= 0:
		return models.CompatibilityVerdict{
			AddonName: obs.AddonName,
			Status:    models.CompatibilityCompatible,
			Message: fmt.Sprintf("%s %s is compatible with Kubernetes %s",
				obs.AddonName, obs.InstalledVersion, rng.TargetVersion),
		}

	case versions.Compare(installed, minV) < 0:
		rec := recommendedVersion(rng, rng.MinVersion)
		return models.CompatibilityVerdict{
			AddonName: obs.AddonName,
			Status:    models.CompatibilityUpgradeRequired,
			Message: fmt.Sprintf("%s %s is below the minimum version %s required for Kubernetes %s",
				obs.AddonName, obs.InstalledVersion, rng.MinVersion, rng.TargetVersion),
			RecommendedVersion: rec,
		}

	case versions.Compare(installed, maxV) > 0:
		rec := recommendedVersion(rng, rng.MaxVersion)
		return models.CompatibilityVerdict{
			AddonName: obs.AddonName,
			Status:    models.CompatibilityDowngradeRecommended,
			Message: fmt.Sprintf("%s %s is above the maximum version %s supported on Kubernetes %s",
				obs.AddonName, obs.InstalledVersion, rng.MaxVersion, rng.TargetVersion),
			RecommendedVersion: rec,
		}
	}

	// Unreachable under a total order; kept so malformed reference data
	// surfaces as a verdict instead of a wrong classification.
	return models.CompatibilityVerdict{
		AddonName: obs.AddonName,
		Status:    models.CompatibilityVerificationNeeded,
		Message: fmt.Sprintf("could not order %s %s against range [%s, %s]; verify manually",
			obs.AddonName, obs.InstalledVersion, rng.MinVersion, rng.MaxVersion),
	}
}

// recommendedVersion prefers the range default when it parses; fallback is
// the violated bound.
func recommendedVersion(rng *models.AddonVersionRange, fallback string) string {
	if _, ok := versions.Parse(rng.DefaultVersion); ok {
		return rng.DefaultVersion
	}
	return fallback
}

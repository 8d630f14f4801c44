package refdata

import (
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
)

// AddonVersionTable holds the published addon version ranges per target
// Kubernetes version: target version → addon name → range.
type AddonVersionTable struct {
	FetchedAt string                                          `json:"fetched_at,omitempty"`
	Region    string                                          `json:"region,omitempty"`
	Ranges    map[string]map[string]models.AddonVersionRange `json:"ranges"`
}

// NewAddonVersionTable returns an empty table ready for Put calls.
func NewAddonVersionTable() *AddonVersionTable {
	return &AddonVersionTable{Ranges: make(map[string]map[string]models.AddonVersionRange)}
}

// Put records the range for one addon on one target version.
func (t *AddonVersionTable) Put(rng models.AddonVersionRange) {
	if t.Ranges == nil {
		t.Ranges = make(map[string]map[string]models.AddonVersionRange)
	}
	byAddon, ok := t.Ranges[rng.TargetVersion]
	if !ok {
		byAddon = make(map[string]models.AddonVersionRange)
		t.Ranges[rng.TargetVersion] = byAddon
	}
	byAddon[rng.AddonName] = rng
}

// Lookup returns the range for an addon on a target version, or nil when no
// data exists. The returned value is a copy.
func (t *AddonVersionTable) Lookup(targetVersion, addonName string) *models.AddonVersionRange {
	if t == nil {
		return nil
	}
	byAddon, ok := t.Ranges[targetVersion]
	if !ok {
		return nil
	}
	rng, ok := byAddon[addonName]
	if !ok {
		return nil
	}
	return &rng
}

package policy

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
)

// defaultSupportedVersions is the ascending list of EKS versions the
// assessment understands, used when the config does not override it.
var defaultSupportedVersions = []string{
	"1.24", "1.25", "1.26", "1.27", "1.28", "1.29", "1.30", "1.31", "1.32", "1.33",
}

const (
	defaultLookbackHours = 24
	defaultOutputFormat  = "table"
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Version != 1 {
		return nil, errors.New("unsupported config version")
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset sections in place. Safe to call on a
// zero-valued Config, which is what commands use when no config file exists.
func (c *Config) ApplyDefaults() {
	if len(c.Upgrade.SupportedVersions) == 0 {
		c.Upgrade.SupportedVersions = append([]string(nil), defaultSupportedVersions...)
	}
	if c.Assessment.AuditLogLookbackHours <= 0 {
		c.Assessment.AuditLogLookbackHours = defaultLookbackHours
	}
	if len(c.Assessment.DeprecatedAPIScanners) == 0 {
		c.Assessment.DeprecatedAPIScanners = []string{"kubent", "pluto"}
	}
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
}

// SkewPolicy resolves the configured skew limit, falling back to the
// built-in default. Safe to call with c == nil.
func (c *Config) SkewPolicy() models.SkewPolicy {
	if c == nil || c.Upgrade.MaxVersionSkew == nil {
		return models.DefaultSkewPolicy()
	}
	return models.SkewPolicy{MaxVersionSkew: *c.Upgrade.MaxVersionSkew}
}

// SupportedVersions returns the ascending version list to assess against.
// Safe to call with c == nil.
func (c *Config) SupportedVersions() []string {
	if c == nil || len(c.Upgrade.SupportedVersions) == 0 {
		return append([]string(nil), defaultSupportedVersions...)
	}
	return c.Upgrade.SupportedVersions
}

// enabled treats an unset toggle as true.
func enabled(v *bool) bool { return v == nil || *v }

func (c *Config) AddonsEnabled() bool {
	return c == nil || enabled(c.Assessment.CheckAddons)
}

func (c *Config) IAMEnabled() bool {
	return c == nil || enabled(c.Assessment.CheckIAM)
}

func (c *Config) InsightsEnabled() bool {
	return c == nil || enabled(c.Assessment.CheckInsights)
}

func (c *Config) DeprecatedAPIsEnabled() bool {
	return c == nil || enabled(c.Assessment.CheckDeprecatedAPIs)
}

func (c *Config) InventoryEnabled() bool {
	return c == nil || enabled(c.Assessment.CheckInventory)
}

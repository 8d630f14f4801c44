package policy

// Config is the top-level assessment configuration, loaded from YAML.
// Every section is optional except version; ApplyDefaults fills the gaps so
// callers never branch on missing sections.
type Config struct {
	Version    int              `yaml:"version"`
	AWS        AWSConfig        `yaml:"aws"`
	Upgrade    UpgradeConfig    `yaml:"upgrade"`
	Assessment AssessmentConfig `yaml:"assessment"`
	Output     OutputConfig     `yaml:"output"`
	CacheDir   string           `yaml:"cache_dir,omitempty"`
}

// AWSConfig selects which account, regions, and clusters to assess. Empty
// Regions means discover active regions; empty Clusters means assess every
// cluster found in the selected regions.
type AWSConfig struct {
	Profile  string   `yaml:"profile,omitempty"`
	Regions  []string `yaml:"regions,omitempty"`
	Clusters []string `yaml:"clusters,omitempty"`
}

// UpgradeConfig pins the upgrade being evaluated. SupportedVersions, when
// set, overrides the built-in ascending list of assessable EKS versions.
type UpgradeConfig struct {
	TargetVersion     string   `yaml:"target_version"`
	SupportedVersions []string `yaml:"supported_versions,omitempty"`
	MaxVersionSkew    *int     `yaml:"max_version_skew,omitempty"`
}

// AssessmentConfig toggles the optional collectors. Unset toggles default to
// enabled; turning one off skips the corresponding AWS or subprocess calls.
type AssessmentConfig struct {
	CheckAddons           *bool    `yaml:"check_addons,omitempty"`
	CheckIAM              *bool    `yaml:"check_iam,omitempty"`
	CheckInsights         *bool    `yaml:"check_insights,omitempty"`
	CheckDeprecatedAPIs   *bool    `yaml:"check_deprecated_apis,omitempty"`
	CheckInventory        *bool    `yaml:"check_inventory,omitempty"`
	AuditLogLookbackHours int      `yaml:"audit_log_lookback_hours,omitempty"`
	DeprecatedAPIScanners []string `yaml:"deprecated_api_scanners,omitempty"`
}

// OutputConfig controls report rendering and optional S3 upload.
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`
	File     string `yaml:"file,omitempty"`
	S3Bucket string `yaml:"s3_bucket,omitempty"`
	S3Prefix string `yaml:"s3_prefix,omitempty"`
}

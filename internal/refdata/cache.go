package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// AddonVersionSource fetches addon version ranges for a target Kubernetes
// version from upstream, normally the EKS DescribeAddonVersions API.
type AddonVersionSource interface {
	FetchAddonVersionRanges(ctx context.Context, targetVersion string) (*AddonVersionTable, error)
}

// cacheFileName keys the on-disk cache by target version.
func cacheFileName(targetVersion string) string {
	return fmt.Sprintf("addon-versions-%s.json", targetVersion)
}

// LoadTable reads a cached table for a target version from cacheDir. A
// missing file is not an error; it returns (nil, nil).
func LoadTable(cacheDir, targetVersion string) (*AddonVersionTable, error) {
	path := filepath.Join(cacheDir, cacheFileName(targetVersion))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading addon version cache: %w", err)
	}

	var table AddonVersionTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing addon version cache %s: %w", path, err)
	}
	return &table, nil
}

// SaveTable writes the table to cacheDir, creating the directory as needed.
func SaveTable(cacheDir, targetVersion string, table *AddonVersionTable) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding addon version table: %w", err)
	}

	path := filepath.Join(cacheDir, cacheFileName(targetVersion))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing addon version cache: %w", err)
	}
	return nil
}

// LoadOrFetch returns the cached table for a target version, fetching from
// src and populating the cache on a miss. A corrupt cache file is treated as
// a miss rather than a failure.
func LoadOrFetch(ctx context.Context, cacheDir, targetVersion string, src AddonVersionSource) (*AddonVersionTable, error) {
	if table, err := LoadTable(cacheDir, targetVersion); err == nil && table != nil {
		return table, nil
	}

	table, err := src.FetchAddonVersionRanges(ctx, targetVersion)
	if err != nil {
		return nil, fmt.Errorf("fetching addon version ranges for %s: %w", targetVersion, err)
	}
	table.FetchedAt = time.Now().UTC().Format(time.RFC3339)

	if err := SaveTable(cacheDir, targetVersion, table); err != nil {
		return nil, err
	}
	return table, nil
}

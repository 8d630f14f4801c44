package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/aws/common"
	awseks "github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/aws/eks"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/refdata"
)

func newRefdataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refdata",
		Short: "Manage cached reference data",
	}
	cmd.AddCommand(newRefdataFetchCmd())
	return cmd
}

func newRefdataFetchCmd() *cobra.Command {
	var (
		profile  string
		region   string
		target   string
		cacheDir string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the addon version table for a target version and cache it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				return fmt.Errorf("a target version is required (--target-version)")
			}
			if cacheDir == "" {
				cacheDir = defaultCacheDir()
			}

			provider := common.NewDefaultAWSClientProvider()
			profileCfg, err := provider.LoadProfile(cmd.Context(), profile)
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}
			if region == "" {
				region = profileCfg.Region
			}

			collector := awseks.NewClusterCollector(provider.ConfigForRegion(profileCfg, region))
			table, err := collector.FetchAddonVersionRanges(cmd.Context(), target)
			if err != nil {
				return fmt.Errorf("fetch addon version ranges: %w", err)
			}
			table.FetchedAt = time.Now().UTC().Format(time.RFC3339)
			table.Region = region

			if err := refdata.SaveTable(cacheDir, target, table); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cached %d addon version ranges for Kubernetes %s in %s\n",
				len(table.Ranges[target]), target, cacheDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "AWS profile name (default: uses environment / default profile)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region to query (default: the profile's home region)")
	cmd.Flags().StringVar(&target, "target-version", "", "Target Kubernetes version, e.g. 1.29")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for cached addon version tables")

	return cmd
}

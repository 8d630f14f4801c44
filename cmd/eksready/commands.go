package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/engine"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/output"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/policy"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/aws/common"
	kube "github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/kubernetes"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/refdata"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/scan"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "eksready",
		Short: "EKS upgrade readiness assessment",
	}
	root.AddCommand(newAssessCmd())
	root.AddCommand(newRefdataCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

// assessFlags carries the assess command's flag values so option resolution
// can be tested without executing cobra.
type assessFlags struct {
	profile       string
	regions       []string
	clusters      []string
	target        string
	cacheDir      string
	reportFmt     string
	outputFile    string
	s3Bucket      string
	s3Prefix      string
	skipInsights  bool
	skipScanners  bool
	skipInventory bool
}

func newAssessCmd() *cobra.Command {
	var (
		flags      assessFlags
		configPath string
		verbose    bool
		colored    bool
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess EKS clusters for upgrade readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAssessConfig(configPath)
			if err != nil {
				return err
			}

			opts, err := buildAssessmentOptions(cfg, flags)
			if err != nil {
				return err
			}

			provider := common.NewDefaultAWSClientProvider()
			eng := engine.NewDefaultEngine(
				provider,
				kube.NewDefaultKubeClientProvider(),
				buildScanners(cfg, flags.skipScanners),
				refdata.DefaultIAMRequirements(),
			)

			report, err := eng.RunAssessment(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("assessment failed: %w", err)
			}

			outputFile := flags.outputFile
			if outputFile == "" {
				outputFile = cfg.Output.File
			}
			if outputFile != "" {
				if err := writeReportToFile(outputFile, report); err != nil {
					return err
				}
			}

			bucket := flags.s3Bucket
			if bucket == "" {
				bucket = cfg.Output.S3Bucket
			}
			if bucket != "" {
				prefix := flags.s3Prefix
				if prefix == "" {
					prefix = cfg.Output.S3Prefix
				}
				if err := uploadReport(cmd.Context(), provider, opts.Profile, bucket, prefix, report); err != nil {
					return err
				}
			}

			return renderReport(cmd.OutOrStdout(), report, opts.ReportFormat, verbose, colored)
		},
	}

	cmd.Flags().StringVar(&flags.profile, "profile", "", "AWS profile name (default: uses environment / default profile)")
	cmd.Flags().StringSliceVar(&flags.regions, "region", nil, "AWS region(s) to assess (default: all active regions)")
	cmd.Flags().StringSliceVar(&flags.clusters, "cluster", nil, "Cluster name(s) to assess (default: all clusters in the selected regions)")
	cmd.Flags().StringVar(&flags.target, "target-version", "", "Target Kubernetes version, e.g. 1.29")
	cmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "Directory for cached addon version tables")
	cmd.Flags().StringVar(&flags.reportFmt, "report", "", "Output format: table, json, or markdown")
	cmd.Flags().StringVar(&flags.outputFile, "output", "", "Write full JSON report to this file path (in addition to stdout output)")
	cmd.Flags().StringVar(&flags.s3Bucket, "s3-bucket", "", "Upload the JSON report to this S3 bucket")
	cmd.Flags().StringVar(&flags.s3Prefix, "s3-prefix", "", "Key prefix for the S3 report upload")
	cmd.Flags().BoolVar(&flags.skipInsights, "skip-insights", false, "Skip the EKS upgrade insights check")
	cmd.Flags().BoolVar(&flags.skipScanners, "skip-scanners", false, "Skip the kubent/pluto deprecated-API scanners")
	cmd.Flags().BoolVar(&flags.skipInventory, "skip-inventory", false, "Skip the per-cluster AWS resource inventory")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to an eksready.yaml configuration file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Print full per-cluster detail in table output")
	cmd.Flags().BoolVar(&colored, "color", false, "Color status labels in table output")

	return cmd
}

// loadAssessConfig loads the YAML config when a path is given, otherwise
// returns a defaulted empty config so downstream code never branches on nil.
func loadAssessConfig(path string) (*policy.Config, error) {
	if path == "" {
		cfg := &policy.Config{}
		cfg.ApplyDefaults()
		return cfg, nil
	}
	cfg, err := policy.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	return cfg, nil
}

// buildAssessmentOptions merges flags over the config. Flags win; the config
// supplies everything the command line leaves unset.
func buildAssessmentOptions(cfg *policy.Config, flags assessFlags) (engine.AssessmentOptions, error) {
	target := flags.target
	if target == "" {
		target = cfg.Upgrade.TargetVersion
	}
	if target == "" {
		return engine.AssessmentOptions{}, fmt.Errorf("a target version is required (--target-version or config)")
	}

	profile := flags.profile
	if profile == "" {
		profile = cfg.AWS.Profile
	}
	regions := flags.regions
	if len(regions) == 0 {
		regions = cfg.AWS.Regions
	}
	clusters := flags.clusters
	if len(clusters) == 0 {
		clusters = cfg.AWS.Clusters
	}
	cacheDir := flags.cacheDir
	if cacheDir == "" {
		cacheDir = cfg.CacheDir
	}
	if cacheDir == "" {
		cacheDir = defaultCacheDir()
	}
	reportFmt := flags.reportFmt
	if reportFmt == "" {
		reportFmt = cfg.Output.Format
	}
	switch engine.ReportFormat(reportFmt) {
	case engine.ReportFormatTable, engine.ReportFormatJSON, engine.ReportFormatMarkdown:
	default:
		return engine.AssessmentOptions{}, fmt.Errorf("unknown report format %q", reportFmt)
	}

	if flags.skipInsights {
		off := false
		cfg.Assessment.CheckInsights = &off
	}
	if flags.skipScanners {
		off := false
		cfg.Assessment.CheckDeprecatedAPIs = &off
	}
	if flags.skipInventory {
		off := false
		cfg.Assessment.CheckInventory = &off
	}

	return engine.AssessmentOptions{
		Profile:       profile,
		Regions:       regions,
		Clusters:      clusters,
		TargetVersion: target,
		Config:        cfg,
		CacheDir:      cacheDir,
		ReportFormat:  engine.ReportFormat(reportFmt),
	}, nil
}

// buildScanners instantiates the configured deprecated-API scanners.
// Unknown names are skipped; a missing binary is reported at scan time.
func buildScanners(cfg *policy.Config, skip bool) []scan.DeprecatedAPIScanner {
	if skip {
		return nil
	}
	names := cfg.Assessment.DeprecatedAPIScanners
	var scanners []scan.DeprecatedAPIScanner
	for _, name := range names {
		switch name {
		case "kubent":
			scanners = append(scanners, scan.NewKubentScanner())
		case "pluto":
			scanners = append(scanners, scan.NewPlutoScanner())
		}
	}
	return scanners
}

// defaultCacheDir returns the per-user cache location for addon version
// tables, falling back to a working-directory cache when the user cache dir
// cannot be resolved.
func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".eksready-cache"
	}
	return filepath.Join(dir, "eksready")
}

// renderReport writes the report to w in the requested format.
func renderReport(w io.Writer, report *models.ReadinessReport, format engine.ReportFormat, verbose, colored bool) error {
	switch format {
	case engine.ReportFormatJSON:
		return output.RenderJSON(w, report)
	case engine.ReportFormatMarkdown:
		return output.RenderMarkdown(w, report)
	default:
		output.RenderTable(w, report, output.TableOptions{Colored: colored, Verbose: verbose})
		return nil
	}
}

// writeReportToFile serialises report as indented JSON and writes it to path,
// creating or overwriting the file. It does not affect stdout output.
func writeReportToFile(path string, report *models.ReadinessReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report file %q: %w", path, err)
	}
	return nil
}

// uploadReport pushes the JSON report to S3 under prefix/<report-id>.json.
func uploadReport(
	ctx context.Context,
	provider common.AWSClientProvider,
	profile, bucket, prefix string,
	report *models.ReadinessReport,
) error {
	profileCfg, err := provider.LoadProfile(ctx, profile)
	if err != nil {
		return fmt.Errorf("load profile for S3 upload: %w", err)
	}
	return putReportObject(ctx, profileCfg.Clients.S3, bucket, prefix, report)
}

// putReportObject writes the serialised report through the narrow S3 client
// interface so tests can inject a fake.
func putReportObject(ctx context.Context, client common.S3Client, bucket, prefix string, report *models.ReadinessReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	key := path.Join(prefix, report.ReportID+".json")
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload report to s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

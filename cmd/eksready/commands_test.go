package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/engine"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/policy"
)

func defaultedConfig() *policy.Config {
	cfg := &policy.Config{}
	cfg.ApplyDefaults()
	return cfg
}

func makeReport() *models.ReadinessReport {
	return &models.ReadinessReport{
		ReportID:      "assessment-42",
		GeneratedAt:   time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Profile:       "default",
		AccountID:     "123456789012",
		Regions:       []string{"eu-west-1"},
		TargetVersion: "1.29",
		Summary:       models.ReadinessSummary{TotalClusters: 1, Ready: 1},
		Clusters: []models.ClusterReadiness{{
			ClusterName:    "prod",
			CurrentVersion: "1.28",
			TargetVersion:  "1.29",
			OverallStatus:  models.StatusReady,
		}},
	}
}

func TestBuildAssessmentOptions_FlagsWin(t *testing.T) {
	cfg := defaultedConfig()
	cfg.AWS.Profile = "config-profile"
	cfg.AWS.Regions = []string{"us-east-1"}
	cfg.AWS.Clusters = []string{"config-cluster"}
	cfg.Upgrade.TargetVersion = "1.28"
	cfg.CacheDir = "/tmp/config-cache"

	opts, err := buildAssessmentOptions(cfg, assessFlags{
		profile:  "flag-profile",
		regions:  []string{"eu-west-1"},
		clusters: []string{"flag-cluster"},
		target:   "1.29",
		cacheDir: "/tmp/flag-cache",
	})
	if err != nil {
		t.Fatalf("buildAssessmentOptions: %v", err)
	}

	if opts.Profile != "flag-profile" {
		t.Errorf("Profile = %q, want flag-profile", opts.Profile)
	}
	if len(opts.Regions) != 1 || opts.Regions[0] != "eu-west-1" {
		t.Errorf("Regions = %v", opts.Regions)
	}
	if len(opts.Clusters) != 1 || opts.Clusters[0] != "flag-cluster" {
		t.Errorf("Clusters = %v", opts.Clusters)
	}
	if opts.TargetVersion != "1.29" {
		t.Errorf("TargetVersion = %q, want 1.29", opts.TargetVersion)
	}
	if opts.CacheDir != "/tmp/flag-cache" {
		t.Errorf("CacheDir = %q", opts.CacheDir)
	}
}

func TestBuildAssessmentOptions_ConfigFallback(t *testing.T) {
	cfg := defaultedConfig()
	cfg.AWS.Profile = "config-profile"
	cfg.Upgrade.TargetVersion = "1.30"
	cfg.Output.Format = "markdown"

	opts, err := buildAssessmentOptions(cfg, assessFlags{})
	if err != nil {
		t.Fatalf("buildAssessmentOptions: %v", err)
	}

	if opts.Profile != "config-profile" {
		t.Errorf("Profile = %q", opts.Profile)
	}
	if opts.TargetVersion != "1.30" {
		t.Errorf("TargetVersion = %q", opts.TargetVersion)
	}
	if opts.ReportFormat != engine.ReportFormatMarkdown {
		t.Errorf("ReportFormat = %q", opts.ReportFormat)
	}
	if opts.CacheDir == "" {
		t.Error("CacheDir empty, want a default location")
	}
}

func TestBuildAssessmentOptions_MissingTarget(t *testing.T) {
	if _, err := buildAssessmentOptions(defaultedConfig(), assessFlags{}); err == nil {
		t.Fatal("expected an error without a target version")
	}
}

func TestBuildAssessmentOptions_UnknownFormat(t *testing.T) {
	_, err := buildAssessmentOptions(defaultedConfig(), assessFlags{target: "1.29", reportFmt: "xml"})
	if err == nil || !strings.Contains(err.Error(), "unknown report format") {
		t.Fatalf("err = %v, want unknown report format", err)
	}
}

func TestBuildAssessmentOptions_SkipFlags(t *testing.T) {
	cfg := defaultedConfig()
	opts, err := buildAssessmentOptions(cfg, assessFlags{
		target:        "1.29",
		skipInsights:  true,
		skipScanners:  true,
		skipInventory: true,
	})
	if err != nil {
		t.Fatalf("buildAssessmentOptions: %v", err)
	}
	if opts.Config.InsightsEnabled() {
		t.Error("insights still enabled after --skip-insights")
	}
	if opts.Config.DeprecatedAPIsEnabled() {
		t.Error("deprecated-API checks still enabled after --skip-scanners")
	}
	if opts.Config.InventoryEnabled() {
		t.Error("inventory still enabled after --skip-inventory")
	}
}

func TestBuildScanners(t *testing.T) {
	cfg := defaultedConfig()
	scanners := buildScanners(cfg, false)
	if len(scanners) != 2 {
		t.Fatalf("got %d scanners, want kubent and pluto", len(scanners))
	}
	if scanners[0].Name() != "kubent" || scanners[1].Name() != "pluto" {
		t.Errorf("scanner names = %s, %s", scanners[0].Name(), scanners[1].Name())
	}

	if got := buildScanners(cfg, true); got != nil {
		t.Errorf("skip=true returned %d scanners, want none", len(got))
	}

	cfg.Assessment.DeprecatedAPIScanners = []string{"pluto", "nonexistent"}
	scanners = buildScanners(cfg, false)
	if len(scanners) != 1 || scanners[0].Name() != "pluto" {
		t.Errorf("subset config produced %v", scanners)
	}
}

func TestRenderReportFormats(t *testing.T) {
	report := makeReport()

	var buf bytes.Buffer
	if err := renderReport(&buf, report, engine.ReportFormatJSON, false, false); err != nil {
		t.Fatalf("json render: %v", err)
	}
	var decoded models.ReadinessReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json output invalid: %v", err)
	}

	buf.Reset()
	if err := renderReport(&buf, report, engine.ReportFormatMarkdown, false, false); err != nil {
		t.Fatalf("markdown render: %v", err)
	}
	if !strings.Contains(buf.String(), "# EKS Upgrade Readiness Report") {
		t.Errorf("markdown output missing title:\n%s", buf.String())
	}

	buf.Reset()
	if err := renderReport(&buf, report, engine.ReportFormatTable, false, false); err != nil {
		t.Fatalf("table render: %v", err)
	}
	if !strings.Contains(buf.String(), "CLUSTER") {
		t.Errorf("table output missing header:\n%s", buf.String())
	}
}

func TestWriteReportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := writeReportToFile(path, makeReport()); err != nil {
		t.Fatalf("writeReportToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var decoded models.ReadinessReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("file is not valid JSON: %v", err)
	}
	if decoded.ReportID != "assessment-42" {
		t.Errorf("ReportID = %q", decoded.ReportID)
	}
}

type fakeS3Client struct {
	bucket string
	key    string
	body   []byte
}

func (c *fakeS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	c.bucket = *params.Bucket
	c.key = *params.Key
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	c.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestPutReportObject(t *testing.T) {
	client := &fakeS3Client{}
	if err := putReportObject(context.Background(), client, "reports-bucket", "eks/readiness", makeReport()); err != nil {
		t.Fatalf("putReportObject: %v", err)
	}

	if client.bucket != "reports-bucket" {
		t.Errorf("bucket = %q", client.bucket)
	}
	if client.key != "eks/readiness/assessment-42.json" {
		t.Errorf("key = %q", client.key)
	}
	var decoded models.ReadinessReport
	if err := json.Unmarshal(client.body, &decoded); err != nil {
		t.Fatalf("uploaded body is not valid JSON: %v", err)
	}
	if decoded.AccountID != "123456789012" {
		t.Errorf("uploaded AccountID = %q", decoded.AccountID)
	}
}

func TestLoadAssessConfig_NoPath(t *testing.T) {
	cfg, err := loadAssessConfig("")
	if err != nil {
		t.Fatalf("loadAssessConfig: %v", err)
	}
	if cfg == nil {
		t.Fatal("got nil config")
	}
	if cfg.Output.Format != "table" {
		t.Errorf("default format = %q, want table", cfg.Output.Format)
	}
}

func TestLoadAssessConfig_MissingFile(t *testing.T) {
	if _, err := loadAssessConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sclient "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/policy"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/aws/common"
	awseks "github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/aws/eks"
	awsiam "github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/aws/iam"
	awslogs "github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/aws/logs"
	kube "github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/kubernetes"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/refdata"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/scan"
)

type fakeProvider struct {
	profile    *common.ProfileConfig
	regions    []string
	regionsErr error
}

func (p *fakeProvider) LoadProfile(ctx context.Context, profile string) (*common.ProfileConfig, error) {
	if p.profile == nil {
		return nil, errors.New("profile not found")
	}
	return p.profile, nil
}

func (p *fakeProvider) LoadAllProfiles(ctx context.Context) ([]*common.ProfileConfig, error) {
	return []*common.ProfileConfig{p.profile}, nil
}

func (p *fakeProvider) GetActiveRegions(ctx context.Context, cfg *common.ProfileConfig) ([]string, error) {
	return p.regions, p.regionsErr
}

func (p *fakeProvider) ConfigForRegion(cfg *common.ProfileConfig, region string) aws.Config {
	return aws.Config{Region: region}
}

type fakeClusterCollector struct {
	clusters  []string
	listErr   error
	listCalls int

	states    map[string]*models.EKSClusterState
	stateErrs map[string]error

	table      *refdata.AddonVersionTable
	fetchCalls int

	fargateRoles []string
}

func (c *fakeClusterCollector) ListClusters(ctx context.Context) ([]string, error) {
	c.listCalls++
	return c.clusters, c.listErr
}

func (c *fakeClusterCollector) CollectClusterState(ctx context.Context, clusterName string) (*models.EKSClusterState, error) {
	if err := c.stateErrs[clusterName]; err != nil {
		return nil, err
	}
	state, ok := c.states[clusterName]
	if !ok {
		return nil, errors.New("cluster not found")
	}
	return state, nil
}

func (c *fakeClusterCollector) ListFargateExecutionRoles(ctx context.Context, clusterName string) ([]string, error) {
	return c.fargateRoles, nil
}

func (c *fakeClusterCollector) FetchAddonVersionRanges(ctx context.Context, targetVersion string) (*refdata.AddonVersionTable, error) {
	c.fetchCalls++
	if c.table == nil {
		return nil, errors.New("no table stubbed")
	}
	return c.table, nil
}

type fakeRoleCollector struct {
	roles map[string]*models.AttachedRoleState
}

func (c *fakeRoleCollector) CollectRoleState(ctx context.Context, roleARN string) (*models.AttachedRoleState, error) {
	role, ok := c.roles[roleARN]
	if !ok {
		return nil, errors.New("role not found")
	}
	return role, nil
}

type fakeAuditScanner struct {
	mu    sync.Mutex
	count int
	err   error
	calls int

	logGroups []string
}

func (s *fakeAuditScanner) CountDeprecatedAPIRequests(ctx context.Context, clusterName string, window time.Duration) (int, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.count, s.err
}

func (s *fakeAuditScanner) ListClusterLogGroups(ctx context.Context, clusterName string) ([]string, error) {
	return s.logGroups, nil
}

type fakeKubeProvider struct {
	clientset   k8sclient.Interface
	contextName string
	err         error
}

func (p *fakeKubeProvider) ClientsetForContext(contextName string) (k8sclient.Interface, kube.ClusterInfo, error) {
	name := p.contextName
	if name == "" {
		name = "test"
	}
	return p.clientset, kube.ClusterInfo{ContextName: name}, p.err
}

type fakeScanner struct {
	name   string
	result scan.Result
}

func (s *fakeScanner) Name() string { return s.name }

func (s *fakeScanner) Scan(ctx context.Context, targetVersion string) scan.Result {
	return s.result
}

func testTable() *refdata.AddonVersionTable {
	table := refdata.NewAddonVersionTable()
	table.Put(models.AddonVersionRange{
		AddonName:      "vpc-cni",
		TargetVersion:  "1.29",
		MinVersion:     "1.16.0",
		MaxVersion:     "1.18.0",
		DefaultVersion: "1.17.0",
		Category:       models.AddonCategoryCore,
	})
	table.Put(models.AddonVersionRange{
		AddonName:      "coredns",
		TargetVersion:  "1.29",
		MinVersion:     "1.10.0",
		MaxVersion:     "1.12.0",
		DefaultVersion: "1.11.1",
		Category:       models.AddonCategoryCore,
	})
	return table
}

func testStates() map[string]*models.EKSClusterState {
	return map[string]*models.EKSClusterState{
		"prod": {
			ClusterName:      "prod",
			Version:          "1.28",
			RoleARN:          "arn:aws:iam::123456789012:role/prod-cluster",
			OIDCIssuer:       "https://oidc.eks.eu-west-1.amazonaws.com/id/EXAMPLE",
			VPCID:            "vpc-0a1b2c3d",
			SubnetIDs:        []string{"subnet-1", "subnet-2"},
			SecurityGroupIDs: []string{"sg-1"},
			Addons: []models.AddonObservation{{
				AddonName:             "vpc-cni",
				InstalledVersion:      "1.15.0",
				ClusterName:           "prod",
				ServiceAccountRoleARN: "arn:aws:iam::123456789012:role/prod-cni",
			}},
			Nodegroups: []models.NodegroupState{
				{Name: "ng-1", Version: "1.28", NodeRoleARN: "arn:aws:iam::123456789012:role/prod-nodes"},
				{Name: "ng-2", Version: "1.28", NodeRoleARN: "arn:aws:iam::123456789012:role/prod-nodes"},
			},
		},
		"staging": {
			ClusterName: "staging",
			Version:     "1.28",
			Addons: []models.AddonObservation{{
				AddonName:        "coredns",
				InstalledVersion: "1.11.1",
				ClusterName:      "staging",
			}},
			Nodegroups: []models.NodegroupState{{Name: "ng-a", Version: "1.28"}},
		},
	}
}

// newTestEngine wires a DefaultEngine to fakes through the collector factory
// seams. The same collector instance serves every region.
func newTestEngine(provider *fakeProvider, collector *fakeClusterCollector, roles *fakeRoleCollector, audit *fakeAuditScanner, scanners ...scan.DeprecatedAPIScanner) *DefaultEngine {
	return &DefaultEngine{
		provider: provider,
		newClusterCollector: func(aws.Config) awseks.ClusterCollector {
			return collector
		},
		newRoleCollector: func(aws.Config) awsiam.RoleCollector {
			return roles
		},
		newAuditScanner: func(aws.Config) awslogs.AuditLogScanner {
			return audit
		},
		scanners: scanners,
		iamTable: refdata.DefaultIAMRequirements(),
	}
}

func clusterByName(t *testing.T, report *models.ReadinessReport, name string) models.ClusterReadiness {
	t.Helper()
	for _, c := range report.Clusters {
		if c.ClusterName == name {
			return c
		}
	}
	t.Fatalf("cluster %q not in report", name)
	return models.ClusterReadiness{}
}

func TestRunAssessmentRequiresTargetVersion(t *testing.T) {
	engine := newTestEngine(&fakeProvider{}, &fakeClusterCollector{}, &fakeRoleCollector{}, &fakeAuditScanner{})

	if _, err := engine.RunAssessment(context.Background(), AssessmentOptions{}); err == nil {
		t.Fatal("expected an error without a target version")
	}
}

func TestRunAssessment(t *testing.T) {
	provider := &fakeProvider{
		profile: &common.ProfileConfig{ProfileName: "default", AccountID: "123456789012"},
		regions: []string{"eu-west-1"},
	}
	collector := &fakeClusterCollector{
		clusters: []string{"prod", "staging"},
		states:   testStates(),
		table:    testTable(),
	}
	roles := &fakeRoleCollector{roles: map[string]*models.AttachedRoleState{
		"arn:aws:iam::123456789012:role/prod-cni": {
			RoleARN:  "arn:aws:iam::123456789012:role/prod-cni",
			RoleName: "prod-cni",
			Policies: []models.AttachedPolicy{{
				ARN:        "arn:aws:iam::aws:policy/AmazonEKS_CNI_Policy",
				Name:       "AmazonEKS_CNI_Policy",
				AWSManaged: true,
			}},
		},
	}}
	kubent := &fakeScanner{name: "kubent", result: scan.Result{Scanner: "kubent", Status: scan.StatusSuccess}}
	engine := newTestEngine(provider, collector, roles, &fakeAuditScanner{}, kubent)

	report, err := engine.RunAssessment(context.Background(), AssessmentOptions{
		TargetVersion: "1.29",
		CacheDir:      t.TempDir(),
	})
	if err != nil {
		t.Fatalf("RunAssessment: %v", err)
	}

	if !strings.HasPrefix(report.ReportID, "assessment-") {
		t.Errorf("ReportID = %q, want assessment- prefix", report.ReportID)
	}
	if report.Profile != "default" || report.AccountID != "123456789012" {
		t.Errorf("profile/account = %q/%q", report.Profile, report.AccountID)
	}
	if len(report.Regions) != 1 || report.Regions[0] != "eu-west-1" {
		t.Errorf("Regions = %v", report.Regions)
	}
	if report.TargetVersion != "1.29" {
		t.Errorf("TargetVersion = %q", report.TargetVersion)
	}
	if collector.listCalls != 1 {
		t.Errorf("listCalls = %d, want 1", collector.listCalls)
	}

	prod := clusterByName(t, report, "prod")
	if prod.OverallStatus != models.StatusNeedsAttention {
		t.Errorf("prod status = %q, want %q", prod.OverallStatus, models.StatusNeedsAttention)
	}
	if prod.CurrentVersion != "1.28" || prod.TargetVersion != "1.29" {
		t.Errorf("prod versions = %q -> %q", prod.CurrentVersion, prod.TargetVersion)
	}
	if len(prod.AddonVerdicts) != 1 || prod.AddonVerdicts[0].Status != models.CompatibilityUpgradeRequired {
		t.Fatalf("prod addon verdicts = %+v", prod.AddonVerdicts)
	}
	if got := prod.AddonVerdicts[0].RecommendedVersion; got != "1.17.0" {
		t.Errorf("recommended version = %q, want 1.17.0", got)
	}
	wantRec := "upgrade addon vpc-cni to 1.17.0 before the cluster upgrade"
	found := false
	for _, rec := range prod.Recommendations {
		if rec == wantRec {
			found = true
		}
	}
	if !found {
		t.Errorf("recommendations %v missing %q", prod.Recommendations, wantRec)
	}
	if len(prod.IAMVerdicts) != 1 || prod.IAMVerdicts[0].Status != models.IAMStatusPass {
		t.Errorf("prod IAM verdicts = %+v", prod.IAMVerdicts)
	}

	staging := clusterByName(t, report, "staging")
	if staging.OverallStatus != models.StatusReady {
		t.Errorf("staging status = %q, want %q (warnings %v, blocking %v)",
			staging.OverallStatus, models.StatusReady, staging.Warnings, staging.BlockingIssues)
	}
	if staging.NoAddonsFound {
		t.Error("staging NoAddonsFound = true, want false")
	}

	want := models.ReadinessSummary{
		TotalClusters:       2,
		Ready:               1,
		NeedsAttention:      1,
		TotalBlockingIssues: len(prod.BlockingIssues),
	}
	if report.Summary != want {
		t.Errorf("Summary = %+v, want %+v", report.Summary, want)
	}
}

func TestRunAssessmentCollectionFailureIsolated(t *testing.T) {
	provider := &fakeProvider{
		profile: &common.ProfileConfig{ProfileName: "default", AccountID: "123456789012"},
		regions: []string{"eu-west-1"},
	}
	collector := &fakeClusterCollector{
		clusters:  []string{"prod", "staging"},
		states:    testStates(),
		stateErrs: map[string]error{"prod": errors.New("access denied")},
		table:     testTable(),
	}
	engine := newTestEngine(provider, collector, &fakeRoleCollector{}, &fakeAuditScanner{})

	report, err := engine.RunAssessment(context.Background(), AssessmentOptions{
		TargetVersion: "1.29",
		CacheDir:      t.TempDir(),
	})
	if err != nil {
		t.Fatalf("RunAssessment: %v", err)
	}
	if len(report.Clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(report.Clusters))
	}

	prod := clusterByName(t, report, "prod")
	if prod.OverallStatus != models.StatusNeedsAttention {
		t.Errorf("prod status = %q, want %q", prod.OverallStatus, models.StatusNeedsAttention)
	}
	if prod.CollectionError != "access denied" {
		t.Errorf("CollectionError = %q", prod.CollectionError)
	}
	wantIssue := "cluster state could not be collected: access denied"
	if len(prod.BlockingIssues) != 1 || prod.BlockingIssues[0] != wantIssue {
		t.Errorf("BlockingIssues = %v, want [%q]", prod.BlockingIssues, wantIssue)
	}

	staging := clusterByName(t, report, "staging")
	if staging.OverallStatus != models.StatusReady {
		t.Errorf("staging status = %q, broken cluster should not taint others", staging.OverallStatus)
	}
}

func TestRunAssessmentExplicitClusters(t *testing.T) {
	provider := &fakeProvider{
		profile: &common.ProfileConfig{ProfileName: "default"},
		regions: []string{"eu-west-1"},
	}
	collector := &fakeClusterCollector{
		clusters: []string{"prod", "staging"},
		states:   testStates(),
		table:    testTable(),
	}
	engine := newTestEngine(provider, collector, &fakeRoleCollector{}, &fakeAuditScanner{})

	report, err := engine.RunAssessment(context.Background(), AssessmentOptions{
		TargetVersion: "1.29",
		Clusters:      []string{"staging"},
		CacheDir:      t.TempDir(),
	})
	if err != nil {
		t.Fatalf("RunAssessment: %v", err)
	}
	if collector.listCalls != 0 {
		t.Errorf("listCalls = %d, discovery should be skipped", collector.listCalls)
	}
	if len(report.Clusters) != 1 || report.Clusters[0].ClusterName != "staging" {
		t.Errorf("Clusters = %+v, want staging only", report.Clusters)
	}
}

func TestRunAssessmentReusesCachedVersionTable(t *testing.T) {
	provider := &fakeProvider{
		profile: &common.ProfileConfig{ProfileName: "default"},
		regions: []string{"eu-west-1"},
	}
	collector := &fakeClusterCollector{
		clusters: []string{"staging"},
		states:   testStates(),
		table:    testTable(),
	}
	engine := newTestEngine(provider, collector, &fakeRoleCollector{}, &fakeAuditScanner{})

	cacheDir := t.TempDir()
	opts := AssessmentOptions{TargetVersion: "1.29", CacheDir: cacheDir}

	for i := 0; i < 2; i++ {
		if _, err := engine.RunAssessment(context.Background(), opts); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if collector.fetchCalls != 1 {
		t.Errorf("fetchCalls = %d, want 1 (second run should hit the cache)", collector.fetchCalls)
	}
}

func TestRunAssessmentDeprecatedAPISignals(t *testing.T) {
	provider := &fakeProvider{
		profile: &common.ProfileConfig{ProfileName: "default"},
		regions: []string{"eu-west-1"},
	}
	collector := &fakeClusterCollector{
		clusters: []string{"staging"},
		states:   testStates(),
		table:    testTable(),
	}
	kubent := &fakeScanner{name: "kubent", result: scan.Result{
		Scanner: "kubent",
		Status:  scan.StatusSuccess,
		Findings: []scan.Finding{
			{Kind: "Ingress", Name: "web", APIVersion: "extensions/v1beta1"},
			{Kind: "CronJob", Name: "sweep", APIVersion: "batch/v1beta1"},
		},
	}}
	broken := &fakeScanner{name: "pluto", result: scan.Result{
		Scanner: "pluto",
		Status:  scan.StatusFailed,
		Error:   "exec format error",
	}}
	audit := &fakeAuditScanner{count: 3}
	engine := newTestEngine(provider, collector, &fakeRoleCollector{}, audit, kubent, broken)

	report, err := engine.RunAssessment(context.Background(), AssessmentOptions{
		TargetVersion: "1.29",
		CacheDir:      t.TempDir(),
	})
	if err != nil {
		t.Fatalf("RunAssessment: %v", err)
	}

	staging := clusterByName(t, report, "staging")
	if staging.OverallStatus != models.StatusReadyWithWarnings {
		t.Errorf("status = %q, want %q", staging.OverallStatus, models.StatusReadyWithWarnings)
	}
	counts := staging.Signals.DeprecatedAPICounts
	if counts["kubent"] != 2 {
		t.Errorf("kubent count = %d, want 2", counts["kubent"])
	}
	if counts["audit-logs"] != 3 {
		t.Errorf("audit-logs count = %d, want 3", counts["audit-logs"])
	}
	if _, ok := counts["pluto"]; ok {
		t.Error("failed scanner should not contribute a count")
	}
	if audit.calls != 1 {
		t.Errorf("audit calls = %d, want 1", audit.calls)
	}
}

func TestRunAssessmentKubeletFallback(t *testing.T) {
	provider := &fakeProvider{
		profile: &common.ProfileConfig{ProfileName: "default"},
		regions: []string{"eu-west-1"},
	}
	// No managed node groups: the data plane version has to come from the
	// kubelets behind the current kubeconfig context.
	collector := &fakeClusterCollector{
		clusters: []string{"selfmanaged"},
		states: map[string]*models.EKSClusterState{
			"selfmanaged": {ClusterName: "selfmanaged", Version: "1.28"},
		},
		table: testTable(),
	}
	node := &corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "node-1"}}
	node.Status.NodeInfo.KubeletVersion = "v1.26.9-eks-5e0fdde"
	engine := newTestEngine(provider, collector, &fakeRoleCollector{}, &fakeAuditScanner{})
	engine.kubeProvider = &fakeKubeProvider{clientset: fake.NewSimpleClientset(node)}

	report, err := engine.RunAssessment(context.Background(), AssessmentOptions{
		TargetVersion: "1.29",
		CacheDir:      t.TempDir(),
	})
	if err != nil {
		t.Fatalf("RunAssessment: %v", err)
	}

	// Control plane at 1.29 against kubelets at 1.26 exceeds the default
	// two-minor skew limit, so the cluster must be blocked.
	c := clusterByName(t, report, "selfmanaged")
	if c.OverallStatus != models.StatusNeedsAttention {
		t.Errorf("status = %q, want %q (issues %v)",
			c.OverallStatus, models.StatusNeedsAttention, c.BlockingIssues)
	}
	if c.ClusterCompatibility == nil || c.ClusterCompatibility.Compatible {
		t.Errorf("skew violation not detected: %+v", c.ClusterCompatibility)
	}
}

func TestRunAssessmentKubeletFallbackWrongCluster(t *testing.T) {
	provider := &fakeProvider{
		profile: &common.ProfileConfig{ProfileName: "default"},
		regions: []string{"eu-west-1"},
	}
	collector := &fakeClusterCollector{
		clusters: []string{"selfmanaged"},
		states: map[string]*models.EKSClusterState{
			"selfmanaged": {ClusterName: "selfmanaged", Version: "1.28"},
		},
		table: testTable(),
	}
	node := &corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "node-1"}}
	node.Status.NodeInfo.KubeletVersion = "v1.26.9-eks-5e0fdde"
	engine := newTestEngine(provider, collector, &fakeRoleCollector{}, &fakeAuditScanner{})
	// The kubeconfig context is an ARN for a different cluster, so its
	// kubelet versions must not be attributed to this one.
	engine.kubeProvider = &fakeKubeProvider{
		clientset:   fake.NewSimpleClientset(node),
		contextName: "arn:aws:eks:eu-west-1:123456789012:cluster/other",
	}

	report, err := engine.RunAssessment(context.Background(), AssessmentOptions{
		TargetVersion: "1.29",
		CacheDir:      t.TempDir(),
	})
	if err != nil {
		t.Fatalf("RunAssessment: %v", err)
	}

	c := clusterByName(t, report, "selfmanaged")
	if c.ClusterCompatibility == nil || !c.ClusterCompatibility.Compatible {
		t.Errorf("foreign context kubelets leaked into the assessment: %+v", c.ClusterCompatibility)
	}
}

func TestRunAssessmentResourceInventory(t *testing.T) {
	provider := &fakeProvider{
		profile: &common.ProfileConfig{ProfileName: "default", AccountID: "123456789012"},
		regions: []string{"eu-west-1"},
	}
	collector := &fakeClusterCollector{
		clusters:     []string{"prod"},
		states:       testStates(),
		table:        testTable(),
		fargateRoles: []string{"arn:aws:iam::123456789012:role/prod-fargate"},
	}
	audit := &fakeAuditScanner{logGroups: []string{"/aws/eks/prod/cluster"}}
	engine := newTestEngine(provider, collector, &fakeRoleCollector{}, audit)

	report, err := engine.RunAssessment(context.Background(), AssessmentOptions{
		TargetVersion: "1.29",
		CacheDir:      t.TempDir(),
	})
	if err != nil {
		t.Fatalf("RunAssessment: %v", err)
	}

	inv := clusterByName(t, report, "prod").Inventory
	if inv == nil {
		t.Fatal("prod Inventory = nil, want populated")
	}
	if inv.ClusterName != "prod" {
		t.Errorf("inventory cluster = %q, want prod", inv.ClusterName)
	}
	if inv.IAM.ClusterServiceRoleARN != "arn:aws:iam::123456789012:role/prod-cluster" {
		t.Errorf("cluster service role = %q", inv.IAM.ClusterServiceRoleARN)
	}
	// ng-1 and ng-2 share one node role; the inventory lists it once.
	if len(inv.IAM.NodeInstanceRoleARNs) != 1 || inv.IAM.NodeInstanceRoleARNs[0] != "arn:aws:iam::123456789012:role/prod-nodes" {
		t.Errorf("node instance roles = %v, want the one deduplicated role", inv.IAM.NodeInstanceRoleARNs)
	}
	if len(inv.IAM.FargateExecutionRoleARNs) != 1 || inv.IAM.FargateExecutionRoleARNs[0] != "arn:aws:iam::123456789012:role/prod-fargate" {
		t.Errorf("fargate roles = %v", inv.IAM.FargateExecutionRoleARNs)
	}
	if inv.IAM.OIDCIssuer == "" {
		t.Error("OIDC issuer not carried into the inventory")
	}
	if inv.Networking.VPCID != "vpc-0a1b2c3d" || len(inv.Networking.SubnetIDs) != 2 {
		t.Errorf("networking = %+v", inv.Networking)
	}
	if len(inv.Monitoring.LogGroups) != 1 || inv.Monitoring.LogGroups[0] != "/aws/eks/prod/cluster" {
		t.Errorf("log groups = %v", inv.Monitoring.LogGroups)
	}
}

func TestRunAssessmentInventoryDisabled(t *testing.T) {
	provider := &fakeProvider{
		profile: &common.ProfileConfig{ProfileName: "default", AccountID: "123456789012"},
		regions: []string{"eu-west-1"},
	}
	collector := &fakeClusterCollector{
		clusters: []string{"prod"},
		states:   testStates(),
		table:    testTable(),
	}
	engine := newTestEngine(provider, collector, &fakeRoleCollector{}, &fakeAuditScanner{})

	off := false
	cfg := &policy.Config{}
	cfg.ApplyDefaults()
	cfg.Assessment.CheckInventory = &off

	report, err := engine.RunAssessment(context.Background(), AssessmentOptions{
		TargetVersion: "1.29",
		CacheDir:      t.TempDir(),
		Config:        cfg,
	})
	if err != nil {
		t.Fatalf("RunAssessment: %v", err)
	}
	if inv := clusterByName(t, report, "prod").Inventory; inv != nil {
		t.Errorf("Inventory = %+v, want nil when disabled", inv)
	}
}

func TestRunAssessmentRegionDiscoveryFailure(t *testing.T) {
	provider := &fakeProvider{
		profile:    &common.ProfileConfig{ProfileName: "default"},
		regionsErr: errors.New("ec2 describe-regions denied"),
	}
	engine := newTestEngine(provider, &fakeClusterCollector{}, &fakeRoleCollector{}, &fakeAuditScanner{})

	_, err := engine.RunAssessment(context.Background(), AssessmentOptions{TargetVersion: "1.29"})
	if err == nil || !strings.Contains(err.Error(), "resolve regions") {
		t.Fatalf("err = %v, want resolve regions failure", err)
	}
}

func TestRunAssessmentListClustersFailure(t *testing.T) {
	provider := &fakeProvider{
		profile: &common.ProfileConfig{ProfileName: "default"},
		regions: []string{"eu-west-1"},
	}
	collector := &fakeClusterCollector{listErr: errors.New("throttled")}
	engine := newTestEngine(provider, collector, &fakeRoleCollector{}, &fakeAuditScanner{})

	_, err := engine.RunAssessment(context.Background(), AssessmentOptions{TargetVersion: "1.29"})
	if err == nil || !strings.Contains(err.Error(), "assess region") {
		t.Fatalf("err = %v, want assess region failure", err)
	}
}

package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/assessment"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/aws/common"
	awseks "github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/aws/eks"
	awsiam "github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/aws/iam"
	awslogs "github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/aws/logs"
	kube "github.com/pankaj-dahiya-devops/eks-readiness/internal/providers/kubernetes"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/refdata"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/scan"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/versions"
)

// DefaultEngine is the production implementation of Engine.
// It coordinates collection, the readiness decision layer, and report
// assembly. It never calls the AWS SDK or any external service directly.
type DefaultEngine struct {
	provider common.AWSClientProvider

	// Region-scoped collector factories. Swapped for fakes in tests.
	newClusterCollector func(aws.Config) awseks.ClusterCollector
	newRoleCollector    func(aws.Config) awsiam.RoleCollector
	newAuditScanner     func(aws.Config) awslogs.AuditLogScanner

	// kubeProvider supplies a clientset for the current kubeconfig context.
	// Nil disables kubelet-level data plane observation.
	kubeProvider kube.KubeClientProvider

	scanners []scan.DeprecatedAPIScanner
	iamTable *refdata.IAMRequirementTable
}

// NewDefaultEngine constructs a DefaultEngine wired to real AWS-backed
// collectors, the given deprecated-API scanners, and the IAM requirement
// table.
func NewDefaultEngine(
	provider common.AWSClientProvider,
	kubeProvider kube.KubeClientProvider,
	scanners []scan.DeprecatedAPIScanner,
	iamTable *refdata.IAMRequirementTable,
) *DefaultEngine {
	return &DefaultEngine{
		provider:     provider,
		kubeProvider: kubeProvider,
		newClusterCollector: func(cfg aws.Config) awseks.ClusterCollector {
			return awseks.NewClusterCollector(cfg)
		},
		newRoleCollector: func(cfg aws.Config) awsiam.RoleCollector {
			return awsiam.NewRoleCollector(cfg)
		},
		newAuditScanner: func(cfg aws.Config) awslogs.AuditLogScanner {
			return awslogs.NewAuditLogScanner(cfg)
		},
		scanners: scanners,
		iamTable: iamTable,
	}
}

// RunAssessment implements Engine. It loads the requested profile, resolves
// regions and clusters, fetches the addon version table once per region, and
// assesses clusters concurrently. A per-cluster collection failure is
// recorded on that cluster's result; it never aborts the batch.
func (e *DefaultEngine) RunAssessment(ctx context.Context, opts AssessmentOptions) (*models.ReadinessReport, error) {
	if opts.TargetVersion == "" {
		return nil, fmt.Errorf("target version is required")
	}

	profile, err := e.provider.LoadProfile(ctx, opts.Profile)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", opts.Profile, err)
	}

	regions, err := e.resolveRegions(ctx, profile, opts.Regions)
	if err != nil {
		return nil, fmt.Errorf("resolve regions for profile %q: %w", profile.ProfileName, err)
	}

	var clusters []models.ClusterReadiness
	for _, region := range regions {
		regional, err := e.assessRegion(ctx, profile, region, opts)
		if err != nil {
			return nil, fmt.Errorf("assess region %q: %w", region, err)
		}
		clusters = append(clusters, regional...)
	}

	return buildReport(profile.ProfileName, profile.AccountID, regions, opts.TargetVersion, clusters), nil
}

// assessRegion assesses every selected cluster in one region. Clusters run
// concurrently; results keep the input order.
func (e *DefaultEngine) assessRegion(
	ctx context.Context,
	profile *common.ProfileConfig,
	region string,
	opts AssessmentOptions,
) ([]models.ClusterReadiness, error) {
	regionalCfg := e.provider.ConfigForRegion(profile, region)
	collector := e.newClusterCollector(regionalCfg)
	roles := e.newRoleCollector(regionalCfg)
	audit := e.newAuditScanner(regionalCfg)

	names := opts.Clusters
	if len(names) == 0 {
		discovered, err := collector.ListClusters(ctx)
		if err != nil {
			return nil, err
		}
		names = discovered
	}
	if len(names) == 0 {
		return nil, nil
	}

	table, err := refdata.LoadOrFetch(ctx, opts.CacheDir, opts.TargetVersion, collector)
	if err != nil {
		return nil, err
	}

	results := make([]models.ClusterReadiness, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			results[i] = e.assessCluster(ctx, collector, roles, audit, table, name, opts)
		}(i, name)
	}
	wg.Wait()

	return results, nil
}

// assessCluster runs the full readiness decision for one cluster. All
// failures below cluster-state collection degrade to partial signals.
func (e *DefaultEngine) assessCluster(
	ctx context.Context,
	collector awseks.ClusterCollector,
	roles awsiam.RoleCollector,
	audit awslogs.AuditLogScanner,
	table *refdata.AddonVersionTable,
	clusterName string,
	opts AssessmentOptions,
) models.ClusterReadiness {
	state, err := collector.CollectClusterState(ctx, clusterName)
	if err != nil {
		return models.ClusterReadiness{
			ClusterName:     clusterName,
			TargetVersion:   opts.TargetVersion,
			OverallStatus:   models.StatusNeedsAttention,
			CollectionError: err.Error(),
			BlockingIssues:  []string{fmt.Sprintf("cluster state could not be collected: %v", err)},
			Recommendations: []string{"verify AWS permissions and retry the assessment"},
		}
	}

	cfg := opts.Config
	supported := cfg.SupportedVersions()
	skew := cfg.SkewPolicy()

	// Node groups upgrade after the control plane, so the data plane is
	// assessed at its current version. The oldest node group is the
	// reference: a single lagging group decides the skew.
	dataPlane := lowestNodegroupVersion(state.Nodegroups)
	if dataPlane == "" {
		// Self-managed and Karpenter nodes are invisible to the EKS node
		// group API. Observe kubelet versions through the current
		// kubeconfig context when one is available.
		dataPlane = e.observedKubeletVersion(ctx, clusterName)
	}
	if dataPlane == "" {
		dataPlane = state.Version
	}
	// Kubelet versions carry patch and build parts ("v1.26.9-eks-..."); the
	// compatibility check works on cluster-version granularity.
	if mm, ok := versions.MajorMinor(dataPlane); ok {
		dataPlane = mm
	}

	compat := assessment.CheckVersionCompatibility(
		state.Version, opts.TargetVersion, dataPlane, dataPlane, supported, skew)

	var addonVerdicts []models.CompatibilityVerdict
	var iamVerdicts []models.IAMVerdict
	if cfg.AddonsEnabled() {
		for _, obs := range state.Addons {
			addonVerdicts = append(addonVerdicts,
				assessment.ClassifyAddon(obs, table.Lookup(opts.TargetVersion, obs.AddonName)))
		}
	}
	if cfg.IAMEnabled() {
		for _, obs := range state.Addons {
			iamVerdicts = append(iamVerdicts, e.classifyAddonIAM(ctx, roles, obs))
		}
	}

	signals := e.collectSignals(ctx, audit, state, clusterName, opts)

	readiness := assessment.Aggregate(clusterName, &compat, addonVerdicts, iamVerdicts, signals)
	readiness.CurrentVersion = state.Version
	readiness.TargetVersion = opts.TargetVersion
	readiness.NoAddonsFound = len(state.Addons) == 0
	if cfg.InventoryEnabled() {
		readiness.Inventory = e.collectInventory(ctx, collector, audit, state)
	}
	return readiness
}

// collectInventory catalogs the AWS resources behind a cluster from the
// already-collected state plus the Fargate profile and log group lookups.
// A lookup failure only shrinks the inventory.
func (e *DefaultEngine) collectInventory(
	ctx context.Context,
	collector awseks.ClusterCollector,
	audit awslogs.AuditLogScanner,
	state *models.EKSClusterState,
) *models.ResourceInventory {
	inv := &models.ResourceInventory{
		ClusterName: state.ClusterName,
		IAM: models.InventoryIAM{
			ClusterServiceRoleARN: state.RoleARN,
			OIDCIssuer:            state.OIDCIssuer,
		},
		Networking: models.InventoryNetworking{
			VPCID:            state.VPCID,
			SubnetIDs:        state.SubnetIDs,
			SecurityGroupIDs: state.SecurityGroupIDs,
		},
	}

	seen := make(map[string]bool)
	for _, ng := range state.Nodegroups {
		if ng.NodeRoleARN == "" || seen[ng.NodeRoleARN] {
			continue
		}
		seen[ng.NodeRoleARN] = true
		inv.IAM.NodeInstanceRoleARNs = append(inv.IAM.NodeInstanceRoleARNs, ng.NodeRoleARN)
	}

	if roles, err := collector.ListFargateExecutionRoles(ctx, state.ClusterName); err == nil {
		inv.IAM.FargateExecutionRoleARNs = roles
	}
	if audit != nil {
		if groups, err := audit.ListClusterLogGroups(ctx, state.ClusterName); err == nil {
			inv.Monitoring.LogGroups = groups
		}
	}
	return inv
}

// observedKubeletVersion reads the oldest kubelet version from the cluster
// behind the current kubeconfig context. When the context name is an EKS
// cluster ARN for a different cluster the observation is discarded. Any
// failure means no observation.
func (e *DefaultEngine) observedKubeletVersion(ctx context.Context, clusterName string) string {
	if e.kubeProvider == nil {
		return ""
	}
	clientset, info, err := e.kubeProvider.ClientsetForContext("")
	if err != nil {
		return ""
	}
	if name, ok := info.EKSClusterName(); ok && name != clusterName {
		return ""
	}
	state, err := kube.CollectDataPlaneState(ctx, clientset, info)
	if err != nil {
		return ""
	}
	return state.ObservedVersion
}

// classifyAddonIAM resolves the addon's IRSA role, when one is configured,
// and classifies it against the requirement table. An unreadable role
// degrades to the no-role branch, which classifies as a warning or error
// depending on the requirement.
func (e *DefaultEngine) classifyAddonIAM(
	ctx context.Context,
	roles awsiam.RoleCollector,
	obs models.AddonObservation,
) models.IAMVerdict {
	var req *models.IAMRequirement
	if e.iamTable != nil {
		req = e.iamTable.Lookup(obs.AddonName)
	}

	var role *models.AttachedRoleState
	if obs.ServiceAccountRoleARN != "" {
		if collected, err := roles.CollectRoleState(ctx, obs.ServiceAccountRoleARN); err == nil {
			role = collected
		}
	}

	return assessment.ClassifyAddonIAM(obs.AddonName, req, role)
}

// collectSignals gathers the external inputs the aggregator passes through:
// insight severities, scanner findings, and the audit-log deprecated-API
// count. Every failure here is silent; a missing signal simply contributes
// nothing.
func (e *DefaultEngine) collectSignals(
	ctx context.Context,
	audit awslogs.AuditLogScanner,
	state *models.EKSClusterState,
	clusterName string,
	opts AssessmentOptions,
) models.ExternalSignals {
	cfg := opts.Config
	signals := models.ExternalSignals{}

	if cfg.InsightsEnabled() {
		for _, insight := range state.Insights {
			signals.InsightSeverities = append(signals.InsightSeverities, insight.Severity)
		}
	}

	if !cfg.DeprecatedAPIsEnabled() {
		return signals
	}

	counts := make(map[string]int)
	for _, scanner := range e.scanners {
		result := scanner.Scan(ctx, opts.TargetVersion)
		if result.Status == scan.StatusSuccess {
			counts[scanner.Name()] = len(result.Findings)
		}
	}

	if audit != nil {
		window := 24 * time.Hour
		if cfg != nil && cfg.Assessment.AuditLogLookbackHours > 0 {
			window = time.Duration(cfg.Assessment.AuditLogLookbackHours) * time.Hour
		}
		if n, err := audit.CountDeprecatedAPIRequests(ctx, clusterName, window); err == nil {
			counts["audit-logs"] = n
		}
	}

	if len(counts) > 0 {
		signals.DeprecatedAPICounts = counts
	}
	return signals
}

// resolveRegions returns the explicit region list when provided, then the
// config's regions, otherwise discovers opted-in regions for the profile.
func (e *DefaultEngine) resolveRegions(
	ctx context.Context,
	profile *common.ProfileConfig,
	explicit []string,
) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	return e.provider.GetActiveRegions(ctx, profile)
}

// lowestNodegroupVersion returns the oldest version among node groups, empty
// when there are none.
func lowestNodegroupVersion(nodegroups []models.NodegroupState) string {
	lowest := ""
	for _, ng := range nodegroups {
		if ng.Version == "" {
			continue
		}
		if lowest == "" {
			lowest = ng.Version
			continue
		}
		if cmp, ok := versions.CompareRaw(ng.Version, lowest); ok && cmp < 0 {
			lowest = ng.Version
		}
	}
	return lowest
}

// buildReport assembles the final ReadinessReport from per-cluster results.
func buildReport(
	profile, accountID string,
	regions []string,
	targetVersion string,
	clusters []models.ClusterReadiness,
) *models.ReadinessReport {
	return &models.ReadinessReport{
		ReportID:      fmt.Sprintf("assessment-%d", time.Now().UnixNano()),
		GeneratedAt:   time.Now().UTC(),
		Profile:       profile,
		AccountID:     accountID,
		Regions:       regions,
		TargetVersion: targetVersion,
		Summary:       computeSummary(clusters),
		Clusters:      clusters,
	}
}

// computeSummary aggregates per-cluster statuses and finding counts.
func computeSummary(clusters []models.ClusterReadiness) models.ReadinessSummary {
	var s models.ReadinessSummary
	s.TotalClusters = len(clusters)
	for _, c := range clusters {
		switch c.OverallStatus {
		case models.StatusReady:
			s.Ready++
		case models.StatusReadyWithWarnings:
			s.ReadyWithWarnings++
		case models.StatusNeedsAttention:
			s.NeedsAttention++
		}
		s.TotalBlockingIssues += len(c.BlockingIssues)
		s.TotalWarnings += len(c.Warnings)
	}
	return s
}

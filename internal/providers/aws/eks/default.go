package eks

import (
	"context"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseks "github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/eks/types"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/refdata"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/versions"
)

// coreAddons are the cluster-critical addons AWS publishes and supports.
var coreAddons = map[string]bool{
	"vpc-cni":            true,
	"coredns":            true,
	"kube-proxy":         true,
	"aws-ebs-csi-driver": true,
	"aws-efs-csi-driver": true,
	"aws-fsx-csi-driver": true,
}

// platformManagedAddons are AWS-managed but not cluster-critical.
var platformManagedAddons = map[string]bool{
	"aws-load-balancer-controller": true,
	"aws-for-fluent-bit":           true,
	"aws-cloudwatch-metrics":       true,
	"aws-node-termination-handler": true,
	"cluster-autoscaler":           true,
	"adot":                         true,
	"metrics-server":               true,
	"snapshot-controller":          true,
	"eks-pod-identity-agent":       true,
	"aws-guardduty-agent":          true,
}

// DefaultClusterCollector implements ClusterCollector using the AWS SDK v2.
// Construct one per region from a region-scoped aws.Config.
type DefaultClusterCollector struct {
	client eksAPIClient
	region string
}

// NewClusterCollector returns a ClusterCollector backed by the real EKS API.
func NewClusterCollector(cfg aws.Config) *DefaultClusterCollector {
	return &DefaultClusterCollector{client: awseks.NewFromConfig(cfg), region: cfg.Region}
}

// newCollectorWithClient is the test seam.
func newCollectorWithClient(client eksAPIClient, region string) *DefaultClusterCollector {
	return &DefaultClusterCollector{client: client, region: region}
}

// ListClusters returns every cluster name in the collector's region.
func (c *DefaultClusterCollector) ListClusters(ctx context.Context) ([]string, error) {
	var names []string
	var next *string
	for {
		out, err := c.client.ListClusters(ctx, &awseks.ListClustersInput{NextToken: next})
		if err != nil {
			return nil, fmt.Errorf("list EKS clusters in %s: %w", c.region, err)
		}
		names = append(names, out.Clusters...)
		if out.NextToken == nil {
			break
		}
		next = out.NextToken
	}
	return names, nil
}

// CollectClusterState gathers one cluster's control-plane facts, addons,
// node groups, and upgrade insights. Secondary call failures (addons, node
// groups, insights) degrade to partial state rather than failing the pass;
// only DescribeCluster is fatal.
func (c *DefaultClusterCollector) CollectClusterState(ctx context.Context, clusterName string) (*models.EKSClusterState, error) {
	out, err := c.client.DescribeCluster(ctx, &awseks.DescribeClusterInput{
		Name: aws.String(clusterName),
	})
	if err != nil {
		return nil, fmt.Errorf("describe EKS cluster %q: %w", clusterName, err)
	}
	if out.Cluster == nil {
		return nil, fmt.Errorf("describe EKS cluster %q: empty response", clusterName)
	}

	state := &models.EKSClusterState{
		ClusterName:     clusterName,
		Region:          c.region,
		Version:         aws.ToString(out.Cluster.Version),
		PlatformVersion: aws.ToString(out.Cluster.PlatformVersion),
		Status:          string(out.Cluster.Status),
		RoleARN:         aws.ToString(out.Cluster.RoleArn),
	}
	if out.Cluster.Identity != nil && out.Cluster.Identity.Oidc != nil {
		state.OIDCIssuer = aws.ToString(out.Cluster.Identity.Oidc.Issuer)
	}
	if vpc := out.Cluster.ResourcesVpcConfig; vpc != nil {
		state.VPCID = aws.ToString(vpc.VpcId)
		state.SubnetIDs = vpc.SubnetIds
		state.SecurityGroupIDs = vpc.SecurityGroupIds
		// The cluster security group is reported separately from the
		// configured ones.
		if sg := aws.ToString(vpc.ClusterSecurityGroupId); sg != "" && !slices.Contains(state.SecurityGroupIDs, sg) {
			state.SecurityGroupIDs = append(state.SecurityGroupIDs, sg)
		}
	}

	if addons, err := c.collectAddons(ctx, clusterName); err == nil {
		state.Addons = addons
	}
	if nodegroups, err := c.collectNodegroups(ctx, clusterName); err == nil {
		state.Nodegroups = nodegroups
	}
	if insights, err := c.collectInsights(ctx, clusterName); err == nil {
		state.Insights = insights
	}

	return state, nil
}

func (c *DefaultClusterCollector) collectAddons(ctx context.Context, clusterName string) ([]models.AddonObservation, error) {
	var names []string
	var next *string
	for {
		out, err := c.client.ListAddons(ctx, &awseks.ListAddonsInput{
			ClusterName: aws.String(clusterName),
			NextToken:   next,
		})
		if err != nil {
			return nil, fmt.Errorf("list addons for %q: %w", clusterName, err)
		}
		names = append(names, out.Addons...)
		if out.NextToken == nil {
			break
		}
		next = out.NextToken
	}

	observations := make([]models.AddonObservation, 0, len(names))
	for _, name := range names {
		out, err := c.client.DescribeAddon(ctx, &awseks.DescribeAddonInput{
			ClusterName: aws.String(clusterName),
			AddonName:   aws.String(name),
		})
		if err != nil || out.Addon == nil {
			// One unreadable addon must not drop the rest.
			continue
		}
		observations = append(observations, models.AddonObservation{
			AddonName:             name,
			InstalledVersion:      aws.ToString(out.Addon.AddonVersion),
			ClusterName:           clusterName,
			ServiceAccountRoleARN: aws.ToString(out.Addon.ServiceAccountRoleArn),
		})
	}
	return observations, nil
}

func (c *DefaultClusterCollector) collectNodegroups(ctx context.Context, clusterName string) ([]models.NodegroupState, error) {
	var names []string
	var next *string
	for {
		out, err := c.client.ListNodegroups(ctx, &awseks.ListNodegroupsInput{
			ClusterName: aws.String(clusterName),
			NextToken:   next,
		})
		if err != nil {
			return nil, fmt.Errorf("list nodegroups for %q: %w", clusterName, err)
		}
		names = append(names, out.Nodegroups...)
		if out.NextToken == nil {
			break
		}
		next = out.NextToken
	}

	nodegroups := make([]models.NodegroupState, 0, len(names))
	for _, name := range names {
		out, err := c.client.DescribeNodegroup(ctx, &awseks.DescribeNodegroupInput{
			ClusterName:   aws.String(clusterName),
			NodegroupName: aws.String(name),
		})
		if err != nil || out.Nodegroup == nil {
			continue
		}
		nodegroups = append(nodegroups, models.NodegroupState{
			Name:        name,
			Version:     aws.ToString(out.Nodegroup.Version),
			NodeRoleARN: aws.ToString(out.Nodegroup.NodeRole),
		})
	}
	return nodegroups, nil
}

// ListFargateExecutionRoles returns the distinct pod execution role ARNs
// across the cluster's Fargate profiles, in discovery order.
func (c *DefaultClusterCollector) ListFargateExecutionRoles(ctx context.Context, clusterName string) ([]string, error) {
	var names []string
	var next *string
	for {
		out, err := c.client.ListFargateProfiles(ctx, &awseks.ListFargateProfilesInput{
			ClusterName: aws.String(clusterName),
			NextToken:   next,
		})
		if err != nil {
			return nil, fmt.Errorf("list fargate profiles for %q: %w", clusterName, err)
		}
		names = append(names, out.FargateProfileNames...)
		if out.NextToken == nil {
			break
		}
		next = out.NextToken
	}

	var roles []string
	seen := make(map[string]bool)
	for _, name := range names {
		out, err := c.client.DescribeFargateProfile(ctx, &awseks.DescribeFargateProfileInput{
			ClusterName:        aws.String(clusterName),
			FargateProfileName: aws.String(name),
		})
		if err != nil || out.FargateProfile == nil {
			continue
		}
		arn := aws.ToString(out.FargateProfile.PodExecutionRoleArn)
		if arn == "" || seen[arn] {
			continue
		}
		seen[arn] = true
		roles = append(roles, arn)
	}
	return roles, nil
}

func (c *DefaultClusterCollector) collectInsights(ctx context.Context, clusterName string) ([]models.Insight, error) {
	var insights []models.Insight
	var next *string
	for {
		out, err := c.client.ListInsights(ctx, &awseks.ListInsightsInput{
			ClusterName: aws.String(clusterName),
			NextToken:   next,
		})
		if err != nil {
			return nil, fmt.Errorf("list insights for %q: %w", clusterName, err)
		}
		for _, summary := range out.Insights {
			insight := models.Insight{
				ID:       aws.ToString(summary.Id),
				Name:     aws.ToString(summary.Name),
				Category: string(summary.Category),
				Severity: insightSeverity(summary.InsightStatus),
			}
			if summary.InsightStatus != nil {
				insight.Description = aws.ToString(summary.InsightStatus.Reason)
			}
			insights = append(insights, insight)
		}
		if out.NextToken == nil {
			break
		}
		next = out.NextToken
	}
	return insights, nil
}

// insightSeverity maps the EKS insight status to the severity the aggregator
// consumes: ERROR → HIGH, WARNING → MEDIUM, everything else → LOW.
func insightSeverity(status *types.InsightStatus) models.InsightSeverity {
	if status == nil {
		return models.InsightSeverityLow
	}
	switch status.Status {
	case types.InsightStatusValueError:
		return models.InsightSeverityHigh
	case types.InsightStatusValueWarning:
		return models.InsightSeverityMedium
	default:
		return models.InsightSeverityLow
	}
}

// FetchAddonVersionRanges builds the addon version range table for one
// target Kubernetes version from DescribeAddonVersions.
func (c *DefaultClusterCollector) FetchAddonVersionRanges(ctx context.Context, targetVersion string) (*refdata.AddonVersionTable, error) {
	table := refdata.NewAddonVersionTable()
	table.Region = c.region

	var next *string
	for {
		out, err := c.client.DescribeAddonVersions(ctx, &awseks.DescribeAddonVersionsInput{
			KubernetesVersion: aws.String(targetVersion),
			NextToken:         next,
		})
		if err != nil {
			return nil, fmt.Errorf("describe addon versions for %s: %w", targetVersion, err)
		}
		for _, info := range out.Addons {
			rng, ok := buildRange(info, targetVersion)
			if !ok {
				continue
			}
			table.Put(rng)
		}
		if out.NextToken == nil {
			break
		}
		next = out.NextToken
	}
	return table, nil
}

// buildRange converts one DescribeAddonVersions entry into a version range.
// Reports false when the addon has no published versions for the target.
func buildRange(info types.AddonInfo, targetVersion string) (models.AddonVersionRange, bool) {
	name := aws.ToString(info.AddonName)
	if name == "" || len(info.AddonVersions) == 0 {
		return models.AddonVersionRange{}, false
	}

	all := make([]string, 0, len(info.AddonVersions))
	defaultVersion := ""
	for _, av := range info.AddonVersions {
		v := aws.ToString(av.AddonVersion)
		// Only parsable versions may feed the range bounds.
		if _, ok := versions.Parse(v); !ok {
			continue
		}
		all = append(all, v)
		for _, compat := range av.Compatibilities {
			if compat.DefaultVersion && aws.ToString(compat.ClusterVersion) == targetVersion {
				defaultVersion = v
			}
		}
	}
	if len(all) == 0 {
		return models.AddonVersionRange{}, false
	}

	sorted := versions.Sort(all)
	if defaultVersion == "" {
		// The API returns the newest version first; use it when no
		// compatibility entry is flagged as the default.
		defaultVersion = all[0]
	}

	return models.AddonVersionRange{
		AddonName:      name,
		TargetVersion:  targetVersion,
		MinVersion:     sorted[0],
		MaxVersion:     sorted[len(sorted)-1],
		DefaultVersion: defaultVersion,
		AllVersions:    sorted,
		Category:       addonCategory(name, aws.ToString(info.Owner)),
	}, true
}

// addonCategory classifies an addon by name, falling back to the owner field
// for addons outside the known sets.
func addonCategory(name, owner string) models.AddonCategory {
	switch {
	case coreAddons[name]:
		return models.AddonCategoryCore
	case platformManagedAddons[name], owner == "aws":
		return models.AddonCategoryPlatformManaged
	default:
		return models.AddonCategoryThirdParty
	}
}

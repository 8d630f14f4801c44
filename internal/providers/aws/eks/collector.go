package eks

import (
	"context"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
	"github.com/pankaj-dahiya-devops/eks-readiness/internal/refdata"
)

// ClusterCollector fetches cluster state and addon reference data from the
// AWS EKS API. Implementations must be stateless and safe to call
// concurrently. They observe only; classification happens in the assessment
// package.
type ClusterCollector interface {
	// ListClusters returns the names of all EKS clusters in the region.
	ListClusters(ctx context.Context) ([]string, error)

	// CollectClusterState gathers control-plane facts, installed addons,
	// node groups, and upgrade insights for one cluster.
	// Returns a non-nil error only when the DescribeCluster call itself
	// fails; failures on secondary calls degrade to partial state.
	CollectClusterState(ctx context.Context, clusterName string) (*models.EKSClusterState, error)

	// ListFargateExecutionRoles returns the distinct pod execution role ARNs
	// across the cluster's Fargate profiles. Consumed by the resource
	// inventory.
	ListFargateExecutionRoles(ctx context.Context, clusterName string) ([]string, error)

	// FetchAddonVersionRanges queries DescribeAddonVersions for every addon
	// available on the target Kubernetes version and builds the version
	// range table the addon compatibility check runs against.
	FetchAddonVersionRanges(ctx context.Context, targetVersion string) (*refdata.AddonVersionTable, error)
}

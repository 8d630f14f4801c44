package eks

import (
	"context"

	awseks "github.com/aws/aws-sdk-go-v2/service/eks"
)

// eksAPIClient is the subset of EKS API operations used by the collector.
// Using a narrow interface instead of the full SDK client makes unit testing
// trivial: create a struct that satisfies the interface and return canned data.
type eksAPIClient interface {
	ListClusters(
		ctx context.Context,
		params *awseks.ListClustersInput,
		optFns ...func(*awseks.Options),
	) (*awseks.ListClustersOutput, error)

	DescribeCluster(
		ctx context.Context,
		params *awseks.DescribeClusterInput,
		optFns ...func(*awseks.Options),
	) (*awseks.DescribeClusterOutput, error)

	ListAddons(
		ctx context.Context,
		params *awseks.ListAddonsInput,
		optFns ...func(*awseks.Options),
	) (*awseks.ListAddonsOutput, error)

	DescribeAddon(
		ctx context.Context,
		params *awseks.DescribeAddonInput,
		optFns ...func(*awseks.Options),
	) (*awseks.DescribeAddonOutput, error)

	ListNodegroups(
		ctx context.Context,
		params *awseks.ListNodegroupsInput,
		optFns ...func(*awseks.Options),
	) (*awseks.ListNodegroupsOutput, error)

	DescribeNodegroup(
		ctx context.Context,
		params *awseks.DescribeNodegroupInput,
		optFns ...func(*awseks.Options),
	) (*awseks.DescribeNodegroupOutput, error)

	ListFargateProfiles(
		ctx context.Context,
		params *awseks.ListFargateProfilesInput,
		optFns ...func(*awseks.Options),
	) (*awseks.ListFargateProfilesOutput, error)

	DescribeFargateProfile(
		ctx context.Context,
		params *awseks.DescribeFargateProfileInput,
		optFns ...func(*awseks.Options),
	) (*awseks.DescribeFargateProfileOutput, error)

	ListInsights(
		ctx context.Context,
		params *awseks.ListInsightsInput,
		optFns ...func(*awseks.Options),
	) (*awseks.ListInsightsOutput, error)

	DescribeAddonVersions(
		ctx context.Context,
		params *awseks.DescribeAddonVersionsInput,
		optFns ...func(*awseks.Options),
	) (*awseks.DescribeAddonVersionsOutput, error)
}
